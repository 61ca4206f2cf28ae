package httpserver

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	feedengine "ripclips/contexts/community-clips/feed-engine"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	feedhttp "ripclips/contexts/community-clips/feed-engine/transport/http"
)

func newTestServer() *Server {
	now := time.Now().UTC()
	return New(
		feedengine.NewInMemoryModule([]entities.Clip{
			{ClipID: "clip-1", ClipURL: "https://clips.twitch.tv/FirstClip", Title: "First", Game: "Last Epoch", Streamer: "a", Status: entities.ClipStatusApproved, Likes: 3, SubmittedAt: now.Add(-time.Hour)},
			{ClipID: "clip-2", ClipURL: "https://youtu.be/dQw4w9WgXcQ", Title: "Second", Game: "Diablo 4", Streamer: "b", Status: entities.ClipStatusApproved, SubmittedAt: now.Add(-2 * time.Hour)},
			{ClipID: "clip-3", ClipURL: "https://clips.twitch.tv/Pending", Title: "Pending", Game: "Last Epoch", Streamer: "c", Status: entities.ClipStatusPending, SubmittedAt: now},
		}, slog.Default()),
		slog.Default(),
		":0",
		Options{RateLimitRPS: 100, RateLimitBurst: 100},
	)
}

func serve(server *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	server.mux.ServeHTTP(rr, req)
	return rr
}

func TestGetFeedReturnsApprovedClips(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/v1/feed?game=last+epoch&sort=hot", nil)
	req.Host = "ripclips.gg"

	rr := serve(server, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp feedhttp.FeedResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ClipID != "clip-1" {
		t.Fatalf("expected only clip-1, got %+v", resp.Items)
	}
	if resp.Items[0].EmbedURL != "https://clips.twitch.tv/embed?clip=FirstClip&parent=ripclips.gg" {
		t.Fatalf("unexpected embed url %s", resp.Items[0].EmbedURL)
	}
	if resp.Sort != "hot" || resp.HasMore {
		t.Fatalf("unexpected feed metadata %+v", resp)
	}
}

func TestGetFeedRejectsBadParameters(t *testing.T) {
	server := newTestServer()
	for _, target := range []string{
		"/v1/feed?sort=trending",
		"/v1/feed?page=-1",
		"/v1/feed?page=abc",
		"/v1/feed?page_size=0",
	} {
		rr := serve(server, httptest.NewRequest(http.MethodGet, target, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d body=%s", target, rr.Code, rr.Body.String())
		}
	}
}

func TestGetClipHidesPending(t *testing.T) {
	server := newTestServer()
	rr := serve(server, httptest.NewRequest(http.MethodGet, "/v1/clips/clip-3", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/clips/clip-2", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLikeRequiresUser(t *testing.T) {
	server := newTestServer()
	rr := serve(server, httptest.NewRequest(http.MethodPost, "/v1/clips/clip-1/like", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLikeAndUnlikeRoundTrip(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/clips/clip-1/like", nil)
	req.Header.Set("X-User-Id", "user-1")
	rr := serve(server, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var liked feedhttp.LikeResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &liked)
	if !liked.Liked || liked.Likes != 4 {
		t.Fatalf("unexpected like response %+v", liked)
	}

	feedReq := httptest.NewRequest(http.MethodGet, "/v1/feed", nil)
	feedReq.Header.Set("X-User-Id", "user-1")
	var feed feedhttp.FeedResponse
	_ = json.Unmarshal(serve(server, feedReq).Body.Bytes(), &feed)
	if len(feed.Items) == 0 || feed.Items[0].ClipID != "clip-1" || !feed.Items[0].UserHasLiked {
		t.Fatalf("expected clip-1 to be flagged as liked, got %+v", feed.Items)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/clips/clip-1/like", nil)
	req.Header.Set("X-User-Id", "user-1")
	rr = serve(server, req)
	var unliked feedhttp.LikeResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &unliked)
	if rr.Code != http.StatusOK || unliked.Likes != 3 {
		t.Fatalf("expected likes restored to 3, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLikeUnknownClipReturnsNotFound(t *testing.T) {
	server := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/clips/nope/like", nil)
	req.Header.Set("X-User-Id", "user-1")
	rr := serve(server, req)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRecordViewAlwaysAccepted(t *testing.T) {
	server := newTestServer()
	for _, clipID := range []string{"clip-2", "missing"} {
		rr := serve(server, httptest.NewRequest(http.MethodPost, "/v1/clips/"+clipID+"/views", nil))
		if rr.Code != http.StatusAccepted {
			t.Fatalf("expected 202 for %s, got %d", clipID, rr.Code)
		}
	}
	clip, _ := server.feed.Store.GetClip(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "clip-2")
	if clip.Views != 1 {
		t.Fatalf("expected views=1, got %d", clip.Views)
	}
}

func TestSubmitClipCreatesPendingClip(t *testing.T) {
	server := newTestServer()
	body := []byte(`{"clip_url":"https://www.twitch.tv/someone/clip/NewSlug","title":"Boss melt","game":"last epoch","streamer":"someone"}`)
	rr := serve(server, httptest.NewRequest(http.MethodPost, "/v1/clips", bytes.NewReader(body)))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created feedhttp.ClipResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &created)
	if created.Status != "pending" || created.Game != "Last Epoch" {
		t.Fatalf("unexpected created clip %+v", created)
	}

	bad := []byte(`{"clip_url":"https://vimeo.com/1","title":"x","game":"y","streamer":"z"}`)
	rr = serve(server, httptest.NewRequest(http.MethodPost, "/v1/clips", bytes.NewReader(bad)))
	if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "invalid_clip_url") {
		t.Fatalf("expected invalid_clip_url 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCommentsFlow(t *testing.T) {
	server := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/v1/clips/clip-1/comments", bytes.NewReader([]byte(`{"content":"huge"}`)))
	rr := serve(server, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/clips/clip-1/comments", bytes.NewReader([]byte(`{"content":"huge","user_display_name":"Viewer"}`)))
	req.Header.Set("X-User-Id", "user-1")
	rr = serve(server, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = serve(server, httptest.NewRequest(http.MethodGet, "/v1/clips/clip-1/comments", nil))
	var list feedhttp.CommentListResponse
	_ = json.Unmarshal(rr.Body.Bytes(), &list)
	if rr.Code != http.StatusOK || len(list.Items) != 1 {
		t.Fatalf("expected one comment, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	rr := serve(newTestServer(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}
