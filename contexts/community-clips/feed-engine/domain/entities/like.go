package entities

import "time"

// Like records that a user liked a clip. At most one exists per (ClipID, UserID).
type Like struct {
	ClipID    string
	UserID    string
	CreatedAt time.Time
}
