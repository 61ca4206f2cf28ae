package ports

import (
	"context"
	"time"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
)

// StatusChange is a moderator decision on a pending clip.
type StatusChange struct {
	ClipID          string
	Status          entities.ClipStatus
	ReviewedBy      string
	RejectionReason string
	ReviewedAt      time.Time
}

// ClipStore persists clips. Counter columns are only ever changed through
// dedicated atomic operations.
type ClipStore interface {
	ListClips(ctx context.Context, status entities.ClipStatus) ([]entities.Clip, error)
	GetClip(ctx context.Context, clipID string) (entities.Clip, error)
	CreateClip(ctx context.Context, clip entities.Clip) error
	// SetStatus applies the change only while the clip is still pending.
	SetStatus(ctx context.Context, change StatusChange) (entities.Clip, error)
	DeleteClip(ctx context.Context, clipID string) error
	IncrementViewCount(ctx context.Context, clipID string) error
}

// LikeStore pairs like records with the clip like counter in one atomic unit.
type LikeStore interface {
	// CreateLike inserts the record and increments likes unless the pair already exists.
	// Both like operations return ErrClipNotFound when the clip does not exist.
	CreateLike(ctx context.Context, like entities.Like) (bool, error)
	// DeleteLike removes the record and decrements likes, floored at zero.
	DeleteLike(ctx context.Context, clipID string, userID string) (bool, error)
	HasLike(ctx context.Context, clipID string, userID string) (bool, error)
	LikedClipIDs(ctx context.Context, userID string, clipIDs []string) (map[string]bool, error)
	// ReconcileLikeCounts resets likes to the record count wherever they drifted.
	ReconcileLikeCounts(ctx context.Context) (int, error)
}

type CommentStore interface {
	// AddComment inserts the comment and increments the clip comment counter atomically.
	AddComment(ctx context.Context, comment entities.Comment) error
	ListComments(ctx context.Context, clipID string) ([]entities.Comment, error)
}

// ClickGuard serialises repeated clicks from one user on one clip.
type ClickGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), acquired bool, err error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
