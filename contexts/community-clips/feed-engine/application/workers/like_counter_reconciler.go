package workers

import (
	"context"
	"log/slog"

	application "ripclips/contexts/community-clips/feed-engine/application"
	"ripclips/contexts/community-clips/feed-engine/ports"
)

// LikeCounterReconciler repairs clips whose likes counter no longer matches
// their like records.
type LikeCounterReconciler struct {
	Likes  ports.LikeStore
	Logger *slog.Logger
}

func (r LikeCounterReconciler) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)

	repaired, err := r.Likes.ReconcileLikeCounts(ctx)
	if err != nil {
		logger.Error("like counter reconcile failed",
			"event", "feed_like_counter_reconcile_failed",
			"module", "community-clips/feed-engine",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if repaired > 0 {
		logger.Warn("like counters repaired",
			"event", "feed_like_counter_reconcile_repaired",
			"module", "community-clips/feed-engine",
			"layer", "worker",
			"repaired_count", repaired,
		)
	}
	return nil
}
