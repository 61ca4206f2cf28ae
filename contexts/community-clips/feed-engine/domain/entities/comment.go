package entities

import "time"

type Comment struct {
	CommentID       string
	ClipID          string
	UserID          string
	UserDisplayName string
	Content         string
	CreatedAt       time.Time
}
