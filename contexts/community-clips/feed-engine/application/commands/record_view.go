package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "ripclips/contexts/community-clips/feed-engine/application"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

// RecordViewUseCase counts player renders. View counts are best effort:
// failures are logged and never reach the caller.
type RecordViewUseCase struct {
	Clips  ports.ClipStore
	Logger *slog.Logger
}

func (uc RecordViewUseCase) Execute(ctx context.Context, clipID string) {
	logger := application.ResolveLogger(uc.Logger)
	clipID = strings.TrimSpace(clipID)
	if clipID == "" {
		return
	}

	err := uc.Clips.IncrementViewCount(ctx, clipID)
	if errors.Is(err, domainerrors.ErrStoreUnavailable) {
		err = uc.Clips.IncrementViewCount(ctx, clipID)
	}
	if err == nil {
		return
	}

	level := slog.LevelWarn
	if errors.Is(err, domainerrors.ErrClipNotFound) {
		level = slog.LevelInfo
	}
	logger.Log(ctx, level, "view increment dropped",
		"event", "feed_increment_views_dropped",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"clip_id", clipID,
		"error", err.Error(),
	)
}
