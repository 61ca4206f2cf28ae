package queries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ripclips/contexts/community-clips/feed-engine/application"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/domain/services"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

type GetClipQuery struct {
	ClipID      string
	UserID      string
	EmbedParent string
}

// GetClipUseCase serves a single public clip. Clips that are not approved are
// reported as missing.
type GetClipUseCase struct {
	Clips  ports.ClipStore
	Likes  ports.LikeStore
	Clock  ports.Clock
	Logger *slog.Logger
}

func (uc GetClipUseCase) Execute(ctx context.Context, query GetClipQuery) (entities.FeedItem, error) {
	logger := application.ResolveLogger(uc.Logger)
	clipID := strings.TrimSpace(query.ClipID)
	if clipID == "" {
		return entities.FeedItem{}, domainerrors.ErrClipNotFound
	}

	clip, err := uc.Clips.GetClip(ctx, clipID)
	if err != nil {
		return entities.FeedItem{}, err
	}
	if !clip.IsVisibleInFeed() {
		logger.Info("hidden clip requested",
			"event", "feed_get_clip_hidden",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"status", string(clip.Status),
		)
		return entities.FeedItem{}, domainerrors.ErrClipNotFound
	}

	liked := false
	if userID := strings.TrimSpace(query.UserID); userID != "" && uc.Likes != nil {
		liked, err = uc.Likes.HasLike(ctx, clipID, userID)
		if err != nil {
			return entities.FeedItem{}, err
		}
	}

	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return entities.FeedItem{
		Clip:         clip,
		HotScore:     services.HotScore(clip, now),
		EmbedURL:     services.EmbedURL(clip.ClipURL, query.EmbedParent),
		UserHasLiked: liked,
	}, nil
}
