// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// SubmitRatePerSecond limits feedback submissions per client IP.
	SubmitRatePerSecond float64 `env:"SUBMIT_RATE_PER_SECOND" default:"2"`
	SubmitRateBurst     int     `env:"SUBMIT_RATE_BURST" default:"5"`

	// RollupInterval is how often the background scheduler recomputes the
	// current and previous day's aggregates.
	RollupInterval time.Duration `env:"ROLLUP_INTERVAL" default:"1h"`

	// InsightsCacheTTL bounds staleness of cached insights summaries.
	InsightsCacheTTL time.Duration `env:"INSIGHTS_CACHE_TTL" default:"60s"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"REDIS_URL":    cfg.RedisURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.SubmitRatePerSecond <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_SECOND must be positive")
	}
	if cfg.RollupInterval < time.Minute {
		return fmt.Errorf("ROLLUP_INTERVAL must be at least one minute")
	}

	return nil
}
