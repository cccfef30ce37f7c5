package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/peoplepulse/peoplepulse/internal/adapter/httpserver"
	"github.com/peoplepulse/peoplepulse/internal/adapter/postgres"
	"github.com/peoplepulse/peoplepulse/internal/adapter/redis"
	"github.com/peoplepulse/peoplepulse/internal/analytics"
	"github.com/peoplepulse/peoplepulse/internal/app"
	"github.com/peoplepulse/peoplepulse/internal/lexicon"
	"github.com/peoplepulse/peoplepulse/internal/moderation"
	"github.com/peoplepulse/peoplepulse/internal/platform/config"
	"github.com/peoplepulse/peoplepulse/internal/platform/logging"
	"github.com/peoplepulse/peoplepulse/internal/sentiment"
	"github.com/peoplepulse/peoplepulse/internal/textproc"
	goredis "github.com/redis/go-redis/v9"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrationsWithLock(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *httpserver.Server, scheduler *app.RollupScheduler) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		scheduler.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	// Analysis core
	lex := lexicon.Default()
	extractor := textproc.NewExtractor(lex)
	gate := moderation.NewGate(lex)
	classifier := sentiment.NewClassifier(lex, extractor)

	// Repositories
	feedbackRepo := postgres.NewFeedbackRepo(pool)
	aggregateRepo := postgres.NewAggregateRepo(pool)
	keywordRepo := postgres.NewKeywordRepo(pool)

	// Application services
	tracker := analytics.NewKeywordTracker(keywordRepo, extractor, clock)
	aggregator := analytics.NewAggregator(feedbackRepo, aggregateRepo)
	reporter := analytics.NewReporter(aggregateRepo, tracker, clock)
	ingest := analytics.NewService(gate, classifier, tracker, feedbackRepo, clock)

	cache := redis.NewInsightsCache(redisClient, cfg.InsightsCacheTTL)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	instanceID := fmt.Sprintf("%s-%d", hostname, os.Getpid())
	elector := app.NewLeaderElector(redisClient, instanceID, cfg.RollupInterval)

	scheduler := app.NewRollupScheduler(aggregator, clock, cfg.RollupInterval, elector)
	scheduler.Start()

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: func(ctx context.Context) error { return pool.Ping(ctx) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }},
	}

	srv := httpserver.NewServer(cfg, ingest, reporter, tracker, aggregator, cache, healthChecks)

	done := runGracefulShutdown(srv, scheduler)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
