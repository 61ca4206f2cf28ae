package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"ripclips"`
	HTTPPort    string `env:"HTTP_PORT"    envDefault:"8080"`

	PostgresDSN         string `env:"POSTGRES_DSN"`
	PostgresAutoMigrate bool   `env:"POSTGRES_AUTO_MIGRATE" envDefault:"true"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	FeedDefaultPageSize int           `env:"FEED_DEFAULT_PAGE_SIZE" envDefault:"5"`
	FeedMaxPageSize     int           `env:"FEED_MAX_PAGE_SIZE"     envDefault:"50"`
	LikeGuardTTL        time.Duration `env:"LIKE_GUARD_TTL"         envDefault:"2s"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"10"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	ReconcileInterval time.Duration `env:"WORKER_RECONCILE_INTERVAL" envDefault:"5m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.ServiceName = strings.TrimSpace(cfg.ServiceName)
	if cfg.ServiceName == "" {
		cfg.ServiceName = "ripclips"
	}
	if cfg.FeedDefaultPageSize <= 0 || cfg.FeedMaxPageSize <= 0 {
		return Config{}, fmt.Errorf("feed page sizes must be positive")
	}
	if cfg.FeedDefaultPageSize > cfg.FeedMaxPageSize {
		cfg.FeedDefaultPageSize = cfg.FeedMaxPageSize
	}
	if cfg.ReconcileInterval <= 0 {
		return Config{}, fmt.Errorf("WORKER_RECONCILE_INTERVAL must be positive")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// UseInMemoryStore reports whether the process runs without Postgres.
func (c Config) UseInMemoryStore() bool {
	return strings.TrimSpace(c.PostgresDSN) == ""
}
