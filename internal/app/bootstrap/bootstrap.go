package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	feedengine "ripclips/contexts/community-clips/feed-engine"
	"ripclips/contexts/community-clips/feed-engine/adapters/memory"
	postgresadapter "ripclips/contexts/community-clips/feed-engine/adapters/postgres"
	redisadapter "ripclips/contexts/community-clips/feed-engine/adapters/redis"
	"ripclips/contexts/community-clips/feed-engine/application/workers"
	"ripclips/contexts/community-clips/feed-engine/ports"
	"ripclips/internal/platform/cache"
	"ripclips/internal/platform/config"
	"ripclips/internal/platform/db"
	"ripclips/internal/platform/httpserver"
	"ripclips/internal/platform/telemetry"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server          *httpserver.Server
	postgres        *db.Postgres
	redis           *cache.Redis
	shutdownTracing func(context.Context) error
	logger          *slog.Logger
}

type WorkerApp struct {
	postgres        *db.Postgres
	reconciler      workers.LikeCounterReconciler
	interval        time.Duration
	shutdownTracing func(context.Context) error
	logger          *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		return nil, err
	}
	app := &APIApp{shutdownTracing: shutdownTracing, logger: logger}

	deps := feedengine.Dependencies{
		DefaultPageSize: cfg.FeedDefaultPageSize,
		MaxPageSize:     cfg.FeedMaxPageSize,
		LikeGuardTTL:    cfg.LikeGuardTTL,
		Logger:          logger,
	}
	if cfg.UseInMemoryStore() {
		logger.Warn("POSTGRES_DSN not set, clips are kept in memory",
			"event", "bootstrap_in_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		store := memory.NewStore(nil)
		deps.Clips, deps.Likes, deps.Comments = store, store, store
		deps.Clock, deps.IDGen = store, store
	} else {
		pg, repo, err := openRepository(ctx, cfg, logger)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.postgres = pg
		deps.Clips, deps.Likes, deps.Comments = repo, repo, repo
		deps.Clock, deps.IDGen = postgresadapter.SystemClock{}, postgresadapter.UUIDGenerator{}
	}

	guard, redisClient, err := buildClickGuard(cfg, logger)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.redis = redisClient
	deps.Guard = guard

	module := feedengine.NewModule(deps)
	app.server = httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort), httpserver.Options{
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	})
	return app, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if cfg.UseInMemoryStore() {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint)
	if err != nil {
		return nil, err
	}
	pg, repo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		_ = shutdownTracing(ctx)
		return nil, err
	}
	module := feedengine.NewModule(feedengine.Dependencies{
		Clips:    repo,
		Likes:    repo,
		Comments: repo,
		Clock:    postgresadapter.SystemClock{},
		IDGen:    postgresadapter.UUIDGenerator{},
		Logger:   logger,
	})
	return &WorkerApp{
		postgres:        pg,
		reconciler:      module.Reconciler,
		interval:        cfg.ReconcileInterval,
		shutdownTracing: shutdownTracing,
		logger:          logger,
	}, nil
}

func openRepository(ctx context.Context, cfg config.Config, logger *slog.Logger) (*db.Postgres, *postgresadapter.Repository, error) {
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	repo := postgresadapter.NewRepository(pg.DB, logger)
	if cfg.PostgresAutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
	}
	return pg, repo, nil
}

func buildClickGuard(cfg config.Config, logger *slog.Logger) (ports.ClickGuard, *cache.Redis, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return memory.NewClickGuard(), nil, nil
	}
	client, err := cache.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("like click guard backed by redis",
		"event", "bootstrap_redis_guard",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"addr", cfg.RedisAddr,
	)
	return redisadapter.NewClickGuard(client.Client, ""), client, nil
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *APIApp) Close() error {
	var errs []error
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if a.postgres != nil {
		errs = append(errs, a.postgres.Close())
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errs = append(errs, a.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"reconcile_interval", w.interval.String(),
	)

	for {
		if err := w.reconciler.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.Error("like counter reconcile failed",
				"event", "bootstrap_worker_reconcile_failed",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	var errs []error
	if w.postgres != nil {
		errs = append(errs, w.postgres.Close())
	}
	if w.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		errs = append(errs, w.shutdownTracing(ctx))
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
