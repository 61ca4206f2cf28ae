package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	application "ripclips/contexts/community-clips/feed-engine/application"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/domain/services"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
	anonymousSubmitter   = "Anonymous"
)

type SubmitClipCommand struct {
	ClipURL                 string
	Title                   string
	Game                    string
	Description             string
	Streamer                string
	SubmittedBy             string
	StreamerProfileImageURL string
	GameBoxArtURL           string
}

// SubmitClipUseCase creates clips in the pending state with zeroed counters.
type SubmitClipUseCase struct {
	Clips  ports.ClipStore
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc SubmitClipUseCase) Execute(ctx context.Context, cmd SubmitClipCommand) (entities.Clip, error) {
	logger := application.ResolveLogger(uc.Logger)
	clipURL := strings.TrimSpace(cmd.ClipURL)
	title := strings.TrimSpace(cmd.Title)
	game := services.NormalizeGameName(cmd.Game)
	streamer := strings.TrimSpace(cmd.Streamer)
	description := strings.TrimSpace(cmd.Description)

	if clipURL == "" || title == "" || game == "" || streamer == "" ||
		utf8.RuneCountInString(title) > maxTitleLength ||
		utf8.RuneCountInString(description) > maxDescriptionLength {
		logger.Warn("clip submission validation failed",
			"event", "feed_submit_clip_validation_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_url", clipURL,
		)
		return entities.Clip{}, domainerrors.ErrInvalidClipInput
	}
	platform, err := services.DetectPlatform(clipURL)
	if err != nil {
		logger.Warn("clip submission url rejected",
			"event", "feed_submit_clip_url_rejected",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_url", clipURL,
		)
		return entities.Clip{}, err
	}

	clipID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Clip{}, err
	}
	submittedBy := strings.TrimSpace(cmd.SubmittedBy)
	if submittedBy == "" {
		submittedBy = anonymousSubmitter
	}

	clip := entities.Clip{
		ClipID:                  clipID,
		ClipURL:                 clipURL,
		Title:                   title,
		Game:                    game,
		Description:             description,
		Streamer:                streamer,
		SubmittedBy:             submittedBy,
		Status:                  entities.ClipStatusPending,
		SubmittedAt:             uc.now(),
		StreamerProfileImageURL: strings.TrimSpace(cmd.StreamerProfileImageURL),
		GameBoxArtURL:           strings.TrimSpace(cmd.GameBoxArtURL),
	}
	if err := uc.Clips.CreateClip(ctx, clip); err != nil {
		logger.Error("clip submission persist failed",
			"event", "feed_submit_clip_persist_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clipID,
			"error", err.Error(),
		)
		return entities.Clip{}, err
	}

	logger.Info("clip submitted for review",
		"event", "feed_submit_clip_completed",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"clip_id", clipID,
		"platform", string(platform),
		"game", game,
	)
	return clip, nil
}

func (uc SubmitClipUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
