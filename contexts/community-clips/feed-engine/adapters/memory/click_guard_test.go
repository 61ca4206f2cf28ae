package memory

import (
	"context"
	"testing"
	"time"
)

func TestClickGuardExclusiveUntilReleased(t *testing.T) {
	guard := NewClickGuard()
	ctx := context.Background()

	release, acquired, err := guard.Acquire(ctx, "like:clip-a:user-1", time.Minute)
	if err != nil || !acquired {
		t.Fatalf("expected first acquire, acquired=%v err=%v", acquired, err)
	}
	if _, acquired, _ := guard.Acquire(ctx, "like:clip-a:user-1", time.Minute); acquired {
		t.Fatalf("expected second acquire to be refused")
	}
	if _, acquired, _ := guard.Acquire(ctx, "like:clip-a:user-2", time.Minute); !acquired {
		t.Fatalf("expected other keys to be independent")
	}

	release()
	if _, acquired, _ := guard.Acquire(ctx, "like:clip-a:user-1", time.Minute); !acquired {
		t.Fatalf("expected acquire after release")
	}
}

func TestClickGuardEntriesExpire(t *testing.T) {
	guard := NewClickGuard()
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }

	staleRelease, acquired, _ := guard.Acquire(context.Background(), "k", time.Second)
	if !acquired {
		t.Fatalf("expected first acquire")
	}
	now = now.Add(2 * time.Second)
	if _, acquired, _ := guard.Acquire(context.Background(), "k", time.Second); !acquired {
		t.Fatalf("expected expired entry to be reclaimable")
	}

	// The stale holder must not release the new holder's entry.
	staleRelease()
	if _, acquired, _ := guard.Acquire(context.Background(), "k", time.Second); acquired {
		t.Fatalf("expected new holder to keep the guard")
	}
}
