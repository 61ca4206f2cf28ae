package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	feedengine "ripclips/contexts/community-clips/feed-engine"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "ripclips/internal/platform/httpserver/docs"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
)

// Options tune the request limiter applied to mutating routes.
type Options struct {
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	feed       feedengine.Module
	limiter    *clientRateLimiter
	httpServer *http.Server
}

func New(feed feedengine.Module, logger *slog.Logger, addr string, opts Options) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:     http.NewServeMux(),
		logger:  logger,
		addr:    addr,
		feed:    feed,
		limiter: newClientRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}
	s.registerRoutes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
	return s
}

// Start serves until Shutdown is called or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	go s.limiter.run(ctx)

	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server stopping",
		"event", "http_server_stopping",
		"module", "internal/platform/httpserver",
		"layer", "platform",
	)
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	s.mux.HandleFunc("GET /v1/feed", s.handleGetFeed)
	s.mux.HandleFunc("POST /v1/clips", s.limit(s.handleSubmitClip))
	s.mux.HandleFunc("GET /v1/clips/{clip_id}", s.handleGetClip)
	s.mux.HandleFunc("POST /v1/clips/{clip_id}/like", s.limit(s.handleLikeClip))
	s.mux.HandleFunc("DELETE /v1/clips/{clip_id}/like", s.limit(s.handleUnlikeClip))
	// View pings are best-effort telemetry and stay off the per-client bucket.
	s.mux.HandleFunc("POST /v1/clips/{clip_id}/views", s.handleRecordView)
	s.mux.HandleFunc("GET /v1/clips/{clip_id}/comments", s.handleListComments)
	s.mux.HandleFunc("POST /v1/clips/{clip_id}/comments", s.limit(s.handleAddComment))

	s.mux.HandleFunc("GET /v1/moderation/clips", s.handleModerationQueue)
	s.mux.HandleFunc("POST /v1/moderation/clips/{clip_id}/approve", s.limit(s.handleModerationApprove))
	s.mux.HandleFunc("POST /v1/moderation/clips/{clip_id}/reject", s.limit(s.handleModerationReject))
	s.mux.HandleFunc("DELETE /v1/moderation/clips/{clip_id}", s.limit(s.handleModerationDelete))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func userIDFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func resolveClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// embedParent is the bare hostname Twitch expects in its parent parameter.
func embedParent(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}
	return r.Host
}
