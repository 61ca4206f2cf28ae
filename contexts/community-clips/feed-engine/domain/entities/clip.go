package entities

import "time"

type ClipStatus string

const (
	ClipStatusPending  ClipStatus = "pending"
	ClipStatusApproved ClipStatus = "approved"
	ClipStatusRejected ClipStatus = "rejected"
)

func (s ClipStatus) IsValid() bool {
	switch s {
	case ClipStatusPending, ClipStatusApproved, ClipStatusRejected:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether a moderator decision has been recorded.
func (s ClipStatus) IsTerminal() bool {
	return s == ClipStatusApproved || s == ClipStatusRejected
}

type Clip struct {
	ClipID                  string
	ClipURL                 string
	Title                   string
	Game                    string
	Description             string
	Streamer                string
	SubmittedBy             string
	Status                  ClipStatus
	SubmittedAt             time.Time
	ReviewedBy              string
	ReviewedAt              *time.Time
	RejectionReason         string
	Likes                   int64
	Views                   int64
	Comments                int64
	StreamerProfileImageURL string
	GameBoxArtURL           string
}

// CanTransitionTo allows exactly one move out of pending.
func (c Clip) CanTransitionTo(next ClipStatus) bool {
	return c.Status == ClipStatusPending && next.IsTerminal()
}

func (c Clip) IsVisibleInFeed() bool {
	return c.Status == ClipStatusApproved
}
