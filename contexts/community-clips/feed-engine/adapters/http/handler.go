package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"ripclips/contexts/community-clips/feed-engine/application/commands"
	"ripclips/contexts/community-clips/feed-engine/application/queries"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	httptransport "ripclips/contexts/community-clips/feed-engine/transport/http"
)

type Handler struct {
	Feed       queries.GetFeedUseCase
	Clip       queries.GetClipUseCase
	Queue      queries.ListClipsByStatusUseCase
	Comments   queries.ListCommentsUseCase
	Submit     commands.SubmitClipUseCase
	Likes      commands.LikeClipUseCase
	Views      commands.RecordViewUseCase
	Moderation commands.ModerateClipUseCase
	AddComment commands.AddCommentUseCase
	Logger     *slog.Logger
}

func (h Handler) GetFeedHandler(ctx context.Context, userID string, req httptransport.FeedRequest) (httptransport.FeedResponse, error) {
	view, err := h.Feed.Execute(ctx, queries.GetFeedQuery{
		GameFilter:  req.Game,
		SortMode:    req.Sort,
		PageIndex:   req.Page,
		PageSize:    req.PageSize,
		UserID:      userID,
		EmbedParent: req.EmbedParent,
	})
	if err != nil {
		return httptransport.FeedResponse{}, err
	}
	items := make([]httptransport.ClipResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, mapFeedItem(item))
	}
	return httptransport.FeedResponse{
		Items:      items,
		Game:       view.GameFilter,
		Sort:       string(view.SortMode),
		Page:       view.PageIndex,
		PageSize:   view.PageSize,
		TotalCount: view.TotalCount,
		HasMore:    view.HasMore,
	}, nil
}

func (h Handler) GetClipHandler(ctx context.Context, clipID string, userID string, embedParent string) (httptransport.ClipResponse, error) {
	item, err := h.Clip.Execute(ctx, queries.GetClipQuery{
		ClipID:      clipID,
		UserID:      userID,
		EmbedParent: embedParent,
	})
	if err != nil {
		return httptransport.ClipResponse{}, err
	}
	return mapFeedItem(item), nil
}

func (h Handler) SubmitClipHandler(ctx context.Context, req httptransport.SubmitClipRequest) (httptransport.ClipResponse, error) {
	clip, err := h.Submit.Execute(ctx, commands.SubmitClipCommand{
		ClipURL:                 req.ClipURL,
		Title:                   req.Title,
		Game:                    req.Game,
		Description:             req.Description,
		Streamer:                req.Streamer,
		SubmittedBy:             req.SubmittedBy,
		StreamerProfileImageURL: req.StreamerProfileImageURL,
		GameBoxArtURL:           req.GameBoxArtURL,
	})
	if err != nil {
		return httptransport.ClipResponse{}, err
	}
	return mapClip(clip), nil
}

func (h Handler) LikeClipHandler(ctx context.Context, clipID string, userID string) (httptransport.LikeResponse, error) {
	result, err := h.Likes.Like(ctx, commands.LikeClipCommand{ClipID: clipID, UserID: userID})
	if err != nil {
		return httptransport.LikeResponse{}, err
	}
	return mapLikeResult(result), nil
}

func (h Handler) UnlikeClipHandler(ctx context.Context, clipID string, userID string) (httptransport.LikeResponse, error) {
	result, err := h.Likes.Unlike(ctx, commands.LikeClipCommand{ClipID: clipID, UserID: userID})
	if err != nil {
		return httptransport.LikeResponse{}, err
	}
	return mapLikeResult(result), nil
}

func (h Handler) RecordViewHandler(ctx context.Context, clipID string) {
	h.Views.Execute(ctx, clipID)
}

func (h Handler) ModerationQueueHandler(ctx context.Context, status string) (httptransport.ClipListResponse, error) {
	clips, err := h.Queue.Execute(ctx, status)
	if err != nil {
		return httptransport.ClipListResponse{}, err
	}
	items := make([]httptransport.ClipResponse, 0, len(clips))
	for _, clip := range clips {
		items = append(items, mapClip(clip))
	}
	return httptransport.ClipListResponse{Items: items}, nil
}

func (h Handler) ApproveClipHandler(ctx context.Context, clipID string, reviewerID string) (httptransport.ClipResponse, error) {
	clip, err := h.Moderation.Approve(ctx, commands.ReviewClipCommand{
		ClipID:     clipID,
		ReviewerID: reviewerID,
	})
	if err != nil {
		return httptransport.ClipResponse{}, err
	}
	return mapClip(clip), nil
}

func (h Handler) RejectClipHandler(
	ctx context.Context,
	clipID string,
	reviewerID string,
	req httptransport.ReviewClipRequest,
) (httptransport.ClipResponse, error) {
	clip, err := h.Moderation.Reject(ctx, commands.ReviewClipCommand{
		ClipID:     clipID,
		ReviewerID: reviewerID,
		Reason:     req.Reason,
	})
	if err != nil {
		return httptransport.ClipResponse{}, err
	}
	return mapClip(clip), nil
}

func (h Handler) DeleteClipHandler(ctx context.Context, clipID string, reviewerID string) error {
	return h.Moderation.Delete(ctx, clipID, reviewerID)
}

func (h Handler) ListCommentsHandler(ctx context.Context, clipID string) (httptransport.CommentListResponse, error) {
	comments, err := h.Comments.Execute(ctx, clipID)
	if err != nil {
		return httptransport.CommentListResponse{}, err
	}
	items := make([]httptransport.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, mapComment(comment))
	}
	return httptransport.CommentListResponse{Items: items}, nil
}

func (h Handler) AddCommentHandler(
	ctx context.Context,
	clipID string,
	userID string,
	req httptransport.AddCommentRequest,
) (httptransport.CommentResponse, error) {
	comment, err := h.AddComment.Execute(ctx, commands.AddCommentCommand{
		ClipID:          clipID,
		UserID:          userID,
		UserDisplayName: req.UserDisplayName,
		Content:         req.Content,
	})
	if err != nil {
		return httptransport.CommentResponse{}, err
	}
	return mapComment(comment), nil
}

func mapFeedItem(item entities.FeedItem) httptransport.ClipResponse {
	resp := mapClip(item.Clip)
	resp.EmbedURL = item.EmbedURL
	resp.HotScore = item.HotScore
	resp.UserHasLiked = item.UserHasLiked
	return resp
}

func mapClip(clip entities.Clip) httptransport.ClipResponse {
	resp := httptransport.ClipResponse{
		ClipID:                  clip.ClipID,
		ClipURL:                 clip.ClipURL,
		Title:                   clip.Title,
		Game:                    clip.Game,
		Description:             clip.Description,
		Streamer:                clip.Streamer,
		SubmittedBy:             clip.SubmittedBy,
		Status:                  string(clip.Status),
		SubmittedAt:             clip.SubmittedAt.UTC().Format(time.RFC3339),
		ReviewedBy:              clip.ReviewedBy,
		RejectionReason:         clip.RejectionReason,
		Likes:                   clip.Likes,
		Views:                   clip.Views,
		Comments:                clip.Comments,
		StreamerProfileImageURL: clip.StreamerProfileImageURL,
		GameBoxArtURL:           clip.GameBoxArtURL,
	}
	if clip.ReviewedAt != nil {
		resp.ReviewedAt = clip.ReviewedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapLikeResult(result commands.LikeResult) httptransport.LikeResponse {
	return httptransport.LikeResponse{
		ClipID:  result.ClipID,
		Liked:   result.Liked,
		Changed: result.Changed,
		Likes:   result.Likes,
	}
}

func mapComment(comment entities.Comment) httptransport.CommentResponse {
	return httptransport.CommentResponse{
		CommentID:       comment.CommentID,
		ClipID:          comment.ClipID,
		UserID:          comment.UserID,
		UserDisplayName: comment.UserDisplayName,
		Content:         comment.Content,
		CreatedAt:       comment.CreatedAt.UTC().Format(time.RFC3339),
	}
}
