package errors

import "errors"

var (
	ErrInvalidFeedQuery        = errors.New("invalid feed query")
	ErrInvalidClipInput        = errors.New("invalid clip input")
	ErrInvalidClipURL          = errors.New("clip url must be a twitch clip or youtube video")
	ErrInvalidComment          = errors.New("invalid comment")
	ErrInvalidStatusTransition = errors.New("clip status transition is not allowed")
	ErrClipNotFound            = errors.New("clip not found")
	ErrUnauthorizedActor       = errors.New("actor is required")
	ErrStoreUnavailable        = errors.New("clip store unavailable")
	ErrConcurrentModification  = errors.New("concurrent modification in progress")
)
