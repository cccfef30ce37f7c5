// Package httpserver exposes the analytics engine over HTTP with Echo.
package httpserver

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/peoplepulse/peoplepulse/internal/analytics"
	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/platform/config"
)

type ingestService interface {
	Submit(ctx context.Context, req analytics.SubmitRequest) (*domain.FeedbackRecord, error)
}

type reportService interface {
	ForecastData(ctx context.Context, metric domain.Metric, windowDays, forecastWeeks int) (*domain.ForecastResult, error)
	InsightsSummary(ctx context.Context, windowDays int) (*domain.InsightsSummary, error)
}

type keywordService interface {
	TopKeywords(ctx context.Context, windowDays, topN int, label domain.Sentiment, department string) ([]domain.KeywordRecord, error)
}

type aggregateService interface {
	ComputeRange(ctx context.Context, start, end time.Time) ([]domain.DailyAggregate, error)
}

type insightsCache interface {
	Get(ctx context.Context, windowDays int) (*domain.InsightsSummary, error)
	Set(ctx context.Context, windowDays int, summary *domain.InsightsSummary) error
}

// HealthCheck is one named readiness probe (database, cache, ...).
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	ingest     ingestService
	reports    reportService
	keywords   keywordService
	aggregates aggregateService
	cache      insightsCache

	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, ingest ingestService, reports reportService, keywords keywordService, aggregates aggregateService, cache insightsCache, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		ingest:       ingest,
		reports:      reports,
		keywords:     keywords,
		aggregates:   aggregates,
		cache:        cache,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
