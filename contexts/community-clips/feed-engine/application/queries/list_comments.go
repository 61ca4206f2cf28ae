package queries

import (
	"context"
	"sort"
	"strings"

	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	domainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

type ListCommentsUseCase struct {
	Clips    ports.ClipStore
	Comments ports.CommentStore
}

func (uc ListCommentsUseCase) Execute(ctx context.Context, clipID string) ([]entities.Comment, error) {
	clip, err := uc.Clips.GetClip(ctx, strings.TrimSpace(clipID))
	if err != nil {
		return nil, err
	}
	if !clip.IsVisibleInFeed() {
		return nil, domainerrors.ErrClipNotFound
	}
	comments, err := uc.Comments.ListComments(ctx, clip.ClipID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}
