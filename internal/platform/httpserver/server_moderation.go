package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	feedhttp "ripclips/contexts/community-clips/feed-engine/transport/http"
)

// requireModerator checks the moderator credentials are present. Token
// verification belongs to the identity provider in front of this service.
func requireModerator(w http.ResponseWriter, r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		writeFeedError(w, http.StatusUnauthorized, "unauthorized", "Authorization bearer token is required")
		return "", false
	}
	reviewerID := userIDFromRequest(r)
	if reviewerID == "" {
		writeFeedError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return reviewerID, true
}

func (s *Server) handleModerationQueue(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireModerator(w, r); !ok {
		return
	}
	resp, err := s.feed.Handler.ModerationQueueHandler(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationApprove(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := requireModerator(w, r)
	if !ok {
		return
	}
	resp, err := s.feed.Handler.ApproveClipHandler(r.Context(), r.PathValue("clip_id"), reviewerID)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationReject(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := requireModerator(w, r)
	if !ok {
		return
	}
	var req feedhttp.ReviewClipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeFeedError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.feed.Handler.RejectClipHandler(r.Context(), r.PathValue("clip_id"), reviewerID, req)
	if err != nil {
		writeFeedDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleModerationDelete(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := requireModerator(w, r)
	if !ok {
		return
	}
	if err := s.feed.Handler.DeleteClipHandler(r.Context(), r.PathValue("clip_id"), reviewerID); err != nil {
		writeFeedDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
