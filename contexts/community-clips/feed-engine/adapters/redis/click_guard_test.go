package redisadapter

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestNewClickGuardDefaultsPrefix(t *testing.T) {
	guard := NewClickGuard(nil, "  ")
	if guard.prefix != "ripclips:guard" {
		t.Fatalf("expected default prefix, got %q", guard.prefix)
	}
}

func TestAcquireSurfacesBackendErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	guard := NewClickGuard(client, "test")
	release, acquired, err := guard.Acquire(context.Background(), "like:clip-a:user-1", time.Second)
	if err == nil {
		t.Fatalf("expected unreachable redis to return an error")
	}
	if acquired || release != nil {
		t.Fatalf("expected no guard when redis is unreachable")
	}
}
