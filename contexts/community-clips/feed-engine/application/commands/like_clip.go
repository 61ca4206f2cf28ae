package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ripclips/contexts/community-clips/feed-engine/application"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"

	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultLikeGuardTTL   = 2 * time.Second
	defaultLikeRetryDelay = 50 * time.Millisecond
)

type LikeClipCommand struct {
	ClipID string
	UserID string
}

// LikeResult reports the state after the mutation. Changed is false when the
// call was a no-op because the like already existed (or was already absent).
type LikeResult struct {
	ClipID  string
	Liked   bool
	Changed bool
	Likes   int64
}

// LikeClipUseCase applies like/unlike clicks. The record write and the counter
// change happen inside one LikeStore call so a double click can never count twice.
type LikeClipUseCase struct {
	Clips      ports.ClipStore
	Likes      ports.LikeStore
	Guard      ports.ClickGuard
	Clock      ports.Clock
	GuardTTL   time.Duration
	RetryDelay time.Duration
	Logger     *slog.Logger
}

func (uc LikeClipUseCase) Like(ctx context.Context, cmd LikeClipCommand) (LikeResult, error) {
	return uc.mutate(ctx, "like", cmd, func(ctx context.Context, clip entities.Clip, userID string) (bool, error) {
		if !clip.IsVisibleInFeed() {
			return false, domainerrors.ErrClipNotFound
		}
		return uc.Likes.CreateLike(ctx, entities.Like{
			ClipID:    clip.ClipID,
			UserID:    userID,
			CreatedAt: uc.now(),
		})
	})
}

func (uc LikeClipUseCase) Unlike(ctx context.Context, cmd LikeClipCommand) (LikeResult, error) {
	return uc.mutate(ctx, "unlike", cmd, func(ctx context.Context, clip entities.Clip, userID string) (bool, error) {
		return uc.Likes.DeleteLike(ctx, clip.ClipID, userID)
	})
}

func (uc LikeClipUseCase) mutate(
	ctx context.Context,
	action string,
	cmd LikeClipCommand,
	apply func(ctx context.Context, clip entities.Clip, userID string) (bool, error),
) (result LikeResult, err error) {
	logger := application.ResolveLogger(uc.Logger)
	clipID := strings.TrimSpace(cmd.ClipID)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" {
		logger.Warn("like mutation without actor",
			"event", "feed_"+action+"_clip_actor_missing",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
		)
		return LikeResult{}, domainerrors.ErrUnauthorizedActor
	}
	if clipID == "" {
		return LikeResult{}, domainerrors.ErrClipNotFound
	}

	ctx, span := application.StartSpan(ctx, "feed."+action+"_clip",
		attribute.String("clip.id", clipID),
	)
	defer func() { application.EndSpan(span, err) }()

	clip, err := uc.Clips.GetClip(ctx, clipID)
	if err != nil {
		return LikeResult{}, err
	}

	release, err := uc.acquireGuard(ctx, "like:"+clipID+":"+userID)
	if err != nil {
		logger.Warn("like click rejected while another is in flight",
			"event", "feed_"+action+"_clip_guard_busy",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"user_id", userID,
		)
		return LikeResult{}, err
	}
	defer release()

	changed, err := apply(ctx, clip, userID)
	if err != nil {
		logger.Error("like mutation failed",
			"event", "feed_"+action+"_clip_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"user_id", userID,
			"error", err.Error(),
		)
		return LikeResult{}, err
	}

	updated, err := uc.Clips.GetClip(ctx, clipID)
	if err != nil {
		return LikeResult{}, err
	}

	logger.Info("like mutation applied",
		"event", "feed_"+action+"_clip_completed",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"clip_id", clipID,
		"user_id", userID,
		"changed", changed,
		"likes", updated.Likes,
	)
	return LikeResult{
		ClipID:  clipID,
		Liked:   action == "like",
		Changed: changed,
		Likes:   updated.Likes,
	}, nil
}

// acquireGuard tries the click guard twice with a short pause. Guard backend
// failures are logged and the mutation proceeds on store atomicity alone.
func (uc LikeClipUseCase) acquireGuard(ctx context.Context, key string) (func(), error) {
	if uc.Guard == nil {
		return func() {}, nil
	}
	ttl := uc.GuardTTL
	if ttl <= 0 {
		ttl = defaultLikeGuardTTL
	}
	delay := uc.RetryDelay
	if delay <= 0 {
		delay = defaultLikeRetryDelay
	}

	for attempt := 0; attempt < 2; attempt++ {
		release, acquired, err := uc.Guard.Acquire(ctx, key, ttl)
		if err != nil {
			application.ResolveLogger(uc.Logger).Warn("like click guard unavailable",
				"event", "feed_like_guard_unavailable",
				"module", "community-clips/feed-engine",
				"layer", "application",
				"key", key,
				"error", err.Error(),
			)
			return func() {}, nil
		}
		if acquired {
			return release, nil
		}
		if attempt == 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return nil, domainerrors.ErrConcurrentModification
}

func (uc LikeClipUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
