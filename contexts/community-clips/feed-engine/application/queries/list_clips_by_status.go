package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	application "ripclips/contexts/community-clips/feed-engine/application"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

// ListClipsByStatusUseCase backs the moderation queue. Newest submissions come first.
type ListClipsByStatusUseCase struct {
	Clips  ports.ClipStore
	Logger *slog.Logger
}

func (uc ListClipsByStatusUseCase) Execute(ctx context.Context, rawStatus string) ([]entities.Clip, error) {
	logger := application.ResolveLogger(uc.Logger)
	status := entities.ClipStatus(strings.ToLower(strings.TrimSpace(rawStatus)))
	if status == "" {
		status = entities.ClipStatusPending
	}
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidFeedQuery
	}

	clips, err := uc.Clips.ListClips(ctx, status)
	if err != nil {
		logger.Error("moderation queue load failed",
			"event", "feed_list_clips_by_status_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"status", string(status),
			"error", err.Error(),
		)
		return nil, err
	}
	sort.SliceStable(clips, func(i, j int) bool {
		return clips[i].SubmittedAt.After(clips[j].SubmittedAt)
	})
	return clips, nil
}
