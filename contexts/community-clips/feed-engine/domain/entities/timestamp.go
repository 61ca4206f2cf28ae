package entities

import "time"

type TimestampKind int

const (
	TimestampMissing TimestampKind = iota
	TimestampServer
	TimestampClient
)

// Timestamp captures where a stored time value came from. Stores resolve it once
// into a concrete time.Time before clips reach ranking code.
type Timestamp struct {
	Kind  TimestampKind
	Value time.Time
}

func ServerTimestamp(value time.Time) Timestamp {
	return Timestamp{Kind: TimestampServer, Value: value}
}

func ClientDate(value time.Time) Timestamp {
	return Timestamp{Kind: TimestampClient, Value: value}
}

func MissingTimestamp() Timestamp {
	return Timestamp{Kind: TimestampMissing}
}

// TimestampFromPtr treats nil and the zero time as missing.
func TimestampFromPtr(value *time.Time) Timestamp {
	if value == nil || value.IsZero() {
		return MissingTimestamp()
	}
	return ServerTimestamp(*value)
}

// Resolve maps a missing timestamp to the Unix epoch so it ranks as the oldest possible clip.
func (t Timestamp) Resolve() time.Time {
	switch t.Kind {
	case TimestampServer, TimestampClient:
		if t.Value.IsZero() {
			return time.Unix(0, 0).UTC()
		}
		return t.Value.UTC()
	default:
		return time.Unix(0, 0).UTC()
	}
}
