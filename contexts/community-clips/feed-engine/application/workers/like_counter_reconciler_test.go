package workers_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"ripclips/contexts/community-clips/feed-engine/adapters/memory"
	"ripclips/contexts/community-clips/feed-engine/application/workers"
	"ripclips/contexts/community-clips/feed-engine/domain/entities"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

func TestLikeCounterReconcilerRepairsDrift(t *testing.T) {
	store := memory.NewStore([]entities.Clip{
		{ClipID: "clip-a", Status: entities.ClipStatusApproved, Likes: 7},
	})
	var logs bytes.Buffer
	reconciler := workers.LikeCounterReconciler{
		Likes:  store,
		Logger: slog.New(slog.NewJSONHandler(&logs, nil)),
	}

	if err := reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	clip, _ := store.GetClip(context.Background(), "clip-a")
	if clip.Likes != 0 {
		t.Fatalf("expected likes=0 after reconcile, got %d", clip.Likes)
	}
	if !strings.Contains(logs.String(), "feed_like_counter_reconcile_repaired") {
		t.Fatalf("expected repair to be logged, got %s", logs.String())
	}
}

type failingLikes struct{ ports.LikeStore }

func (failingLikes) ReconcileLikeCounts(context.Context) (int, error) {
	return 0, errors.New("db down")
}

func TestLikeCounterReconcilerReturnsStoreError(t *testing.T) {
	err := workers.LikeCounterReconciler{Likes: failingLikes{}}.RunOnce(context.Background())
	if err == nil {
		t.Fatalf("expected store error to surface")
	}
}
