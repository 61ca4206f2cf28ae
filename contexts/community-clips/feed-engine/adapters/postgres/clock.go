package postgresadapter

import "time"

// SystemClock stamps submissions, reviews and likes in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
