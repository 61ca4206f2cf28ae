package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	feeddomainerrors "ripclips/contexts/community-clips/feed-engine/domain/errors"
	feedhttp "ripclips/contexts/community-clips/feed-engine/transport/http"
)

func (s *Server) handleGetFeed(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := feedhttp.FeedRequest{
		Game:        query.Get("game"),
		Sort:        query.Get("sort"),
		EmbedParent: embedParent(r),
	}
	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			writeFeedError(w, http.StatusBadRequest, "invalid_page", "page must be a non-negative integer")
			return
		}
		req.Page = page
	}
	if raw := query.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			writeFeedError(w, http.StatusBadRequest, "invalid_page_size", "page_size must be a positive integer")
			return
		}
		req.PageSize = size
	}

	resp, err := s.feed.Handler.GetFeedHandler(r.Context(), userIDFromRequest(r), req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetClip(w http.ResponseWriter, r *http.Request) {
	resp, err := s.feed.Handler.GetClipHandler(
		r.Context(),
		r.PathValue("clip_id"),
		userIDFromRequest(r),
		embedParent(r),
	)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSubmitClip(w http.ResponseWriter, r *http.Request) {
	var req feedhttp.SubmitClipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFeedError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.feed.Handler.SubmitClipHandler(r.Context(), req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleLikeClip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireFeedUser(w, r)
	if !ok {
		return
	}
	resp, err := s.feed.Handler.LikeClipHandler(r.Context(), r.PathValue("clip_id"), userID)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnlikeClip(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireFeedUser(w, r)
	if !ok {
		return
	}
	resp, err := s.feed.Handler.UnlikeClipHandler(r.Context(), r.PathValue("clip_id"), userID)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecordView(w http.ResponseWriter, r *http.Request) {
	s.feed.Handler.RecordViewHandler(r.Context(), r.PathValue("clip_id"))
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	resp, err := s.feed.Handler.ListCommentsHandler(r.Context(), r.PathValue("clip_id"))
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireFeedUser(w, r)
	if !ok {
		return
	}
	var req feedhttp.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFeedError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.feed.Handler.AddCommentHandler(r.Context(), r.PathValue("clip_id"), userID, req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func requireFeedUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := userIDFromRequest(r)
	if userID == "" {
		writeFeedError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return userID, true
}

func writeFeedDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feeddomainerrors.ErrInvalidFeedQuery):
		writeFeedError(w, http.StatusBadRequest, "invalid_feed_query", err.Error())
	case errors.Is(err, feeddomainerrors.ErrInvalidClipInput):
		writeFeedError(w, http.StatusBadRequest, "invalid_clip_input", err.Error())
	case errors.Is(err, feeddomainerrors.ErrInvalidClipURL):
		writeFeedError(w, http.StatusBadRequest, "invalid_clip_url", err.Error())
	case errors.Is(err, feeddomainerrors.ErrInvalidComment):
		writeFeedError(w, http.StatusBadRequest, "invalid_comment", err.Error())
	case errors.Is(err, feeddomainerrors.ErrClipNotFound):
		writeFeedError(w, http.StatusNotFound, "clip_not_found", err.Error())
	case errors.Is(err, feeddomainerrors.ErrInvalidStatusTransition):
		writeFeedError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, feeddomainerrors.ErrConcurrentModification):
		writeFeedError(w, http.StatusConflict, "concurrent_modification", err.Error())
	case errors.Is(err, feeddomainerrors.ErrUnauthorizedActor):
		writeFeedError(w, http.StatusUnauthorized, "missing_user", err.Error())
	case errors.Is(err, feeddomainerrors.ErrStoreUnavailable):
		writeFeedError(w, http.StatusServiceUnavailable, "store_unavailable", "clip store is temporarily unavailable")
	default:
		writeFeedError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeFeedError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, feedhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
