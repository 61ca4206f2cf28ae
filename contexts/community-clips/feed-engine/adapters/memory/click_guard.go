package memory

import (
	"context"
	"strings"
	"sync"
	"time"
)

type guardEntry struct {
	token     uint64
	expiresAt time.Time
}

// ClickGuard is a process-local ports.ClickGuard. Entries expire after their
// TTL even if the holder never releases them.
type ClickGuard struct {
	mu      sync.Mutex
	entries map[string]guardEntry
	next    uint64
	now     func() time.Time
}

func NewClickGuard() *ClickGuard {
	return &ClickGuard{
		entries: make(map[string]guardEntry),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (g *ClickGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	key = strings.TrimSpace(key)

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if entry, held := g.entries[key]; held && now.Before(entry.expiresAt) {
		return nil, false, nil
	}
	g.next++
	token := g.next
	g.entries[key] = guardEntry{token: token, expiresAt: now.Add(ttl)}

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		if entry, held := g.entries[key]; held && entry.token == token {
			delete(g.entries, key)
		}
	}, true, nil
}
