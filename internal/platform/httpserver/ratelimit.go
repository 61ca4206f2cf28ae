package httpserver

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	rateLimiterIdleTTL    = 3 * time.Minute
	rateLimiterSweepEvery = time.Minute
	defaultRateLimitRPS   = 10
	defaultRateLimitBurst = 20
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientRateLimiter hands out one token bucket per client key and forgets
// clients that stay idle longer than rateLimiterIdleTTL.
type clientRateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
	now     func() time.Time
}

func newClientRateLimiter(rps float64, burst int) *clientRateLimiter {
	if rps <= 0 {
		rps = defaultRateLimitRPS
	}
	if burst <= 0 {
		burst = defaultRateLimitBurst
	}
	return &clientRateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
	}
}

func (l *clientRateLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	client, ok := l.clients[key]
	if !ok {
		client = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.clients[key] = client
	}
	client.lastSeen = l.now()
	return client.limiter.Allow()
}

func (l *clientRateLimiter) sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	cutoff := l.now().Add(-rateLimiterIdleTTL)
	for key, client := range l.clients {
		if client.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// run sweeps idle clients until ctx is cancelled.
func (l *clientRateLimiter) run(ctx context.Context) {
	ticker := time.NewTicker(rateLimiterSweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// limit wraps user-initiated mutating routes. Authenticated callers are keyed by user id,
// anonymous ones by client address.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := "user:" + userIDFromRequest(r)
		if key == "user:" {
			key = "ip:" + resolveClientIP(r)
		}
		if !s.limiter.allow(key) {
			s.logger.Warn("request rate limited",
				"event", "http_request_rate_limited",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"path", r.URL.Path,
			)
			w.Header().Set("Retry-After", "1")
			writeFeedError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next(w, r)
	}
}
