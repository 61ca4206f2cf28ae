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
	"ripclips/contexts/community-clips/feed-engine/ports"
)

const maxCommentLength = 1000

type AddCommentCommand struct {
	ClipID          string
	UserID          string
	UserDisplayName string
	Content         string
}

type AddCommentUseCase struct {
	Clips    ports.ClipStore
	Comments ports.CommentStore
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

func (uc AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (entities.Comment, error) {
	logger := application.ResolveLogger(uc.Logger)
	clipID := strings.TrimSpace(cmd.ClipID)
	userID := strings.TrimSpace(cmd.UserID)
	content := strings.TrimSpace(cmd.Content)
	if userID == "" {
		return entities.Comment{}, domainerrors.ErrUnauthorizedActor
	}
	if content == "" || utf8.RuneCountInString(content) > maxCommentLength {
		return entities.Comment{}, domainerrors.ErrInvalidComment
	}

	clip, err := uc.Clips.GetClip(ctx, clipID)
	if err != nil {
		return entities.Comment{}, err
	}
	if !clip.IsVisibleInFeed() {
		return entities.Comment{}, domainerrors.ErrClipNotFound
	}

	commentID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Comment{}, err
	}
	displayName := strings.TrimSpace(cmd.UserDisplayName)
	if displayName == "" {
		displayName = anonymousSubmitter
	}
	comment := entities.Comment{
		CommentID:       commentID,
		ClipID:          clip.ClipID,
		UserID:          userID,
		UserDisplayName: displayName,
		Content:         content,
		CreatedAt:       uc.now(),
	}
	if err := uc.Comments.AddComment(ctx, comment); err != nil {
		logger.Error("comment persist failed",
			"event", "feed_add_comment_failed",
			"module", "community-clips/feed-engine",
			"layer", "application",
			"clip_id", clip.ClipID,
			"user_id", userID,
			"error", err.Error(),
		)
		return entities.Comment{}, err
	}

	logger.Info("comment added",
		"event", "feed_add_comment_completed",
		"module", "community-clips/feed-engine",
		"layer", "application",
		"clip_id", clip.ClipID,
		"comment_id", commentID,
	)
	return comment, nil
}

func (uc AddCommentUseCase) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}
