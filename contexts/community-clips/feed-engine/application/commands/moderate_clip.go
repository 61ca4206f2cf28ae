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
)

type ReviewClipCommand struct {
	ClipID     string
	ReviewerID string
	Reason     string
}

// ModerateClipUseCase drives the clip status machine. Pending clips move once
// to approved or rejected; decided clips never move again.
type ModerateClipUseCase struct {
	Clips  ports.ClipStore
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc ModerateClipUseCase) Approve(ctx context.Context, cmd ReviewClipCommand) (entities.Clip, error) {
	return uc.transition(ctx, entities.ClipStatusApproved, cmd)
}

func (uc ModerateClipUseCase) Reject(ctx context.Context, cmd ReviewClipCommand) (entities.Clip, error) {
	return uc.transition(ctx, entities.ClipStatusRejected, cmd)
}

func (uc ModerateClipUseCase) Delete(ctx context.Context, clipID string, reviewerID string) error {
	logger := application.ResolveLogger(uc.Logger)
	clipID = strings.TrimSpace(clipID)
	reviewerID = strings.TrimSpace(reviewerID)
	if reviewerID == "" {
		return domainerrors.ErrUnauthorizedActor
	}
	if clipID == "" {
		return domainerrors.ErrClipNotFound
	}
	if err := uc.Clips.DeleteClip(ctx, clipID); err != nil {
		logger.Error("clip delete failed",
			"event", "feed_delete_clip_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"reviewer_id", reviewerID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("clip deleted",
		"event", "feed_delete_clip_completed",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"clip_id", clipID,
		"reviewer_id", reviewerID,
	)
	return nil
}

func (uc ModerateClipUseCase) transition(
	ctx context.Context,
	next entities.ClipStatus,
	cmd ReviewClipCommand,
) (entities.Clip, error) {
	logger := application.ResolveLogger(uc.Logger)
	clipID := strings.TrimSpace(cmd.ClipID)
	reviewerID := strings.TrimSpace(cmd.ReviewerID)
	if reviewerID == "" {
		return entities.Clip{}, domainerrors.ErrUnauthorizedActor
	}
	if clipID == "" {
		return entities.Clip{}, domainerrors.ErrClipNotFound
	}

	current, err := uc.Clips.GetClip(ctx, clipID)
	if err != nil {
		return entities.Clip{}, err
	}
	if !current.CanTransitionTo(next) {
		logger.Warn("clip status transition refused",
			"event", "feed_review_clip_transition_refused",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"from_status", string(current.Status),
			"to_status", string(next),
		)
		return entities.Clip{}, domainerrors.ErrInvalidStatusTransition
	}

	reason := ""
	if next == entities.ClipStatusRejected {
		reason = strings.TrimSpace(cmd.Reason)
	}
	updated, err := uc.Clips.SetStatus(ctx, ports.StatusChange{
		ClipID:          clipID,
		Status:          next,
		ReviewedBy:      reviewerID,
		RejectionReason: reason,
		ReviewedAt:      uc.now(),
	})
	if err != nil {
		logger.Error("clip status update failed",
			"event", "feed_review_clip_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"to_status", string(next),
			"error", err.Error(),
		)
		return entities.Clip{}, err
	}

	logger.Info("clip reviewed",
		"event", "feed_review_clip_completed",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"clip_id", clipID,
		"status", string(updated.Status),
		"reviewer_id", reviewerID,
	)
	return updated, nil
}

func (uc ModerateClipUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
