package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/peoplepulse/peoplepulse/internal/analytics"
	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/metrics"
	apperrors "github.com/peoplepulse/peoplepulse/internal/platform/errors"
)

const (
	defaultWindowDays    = 30
	defaultTopN          = 10
	defaultForecastWeeks = 4
	maxWindowDays        = 365
)

type submitFeedbackRequest struct {
	Content     string `json:"content"`
	Department  string `json:"department"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (s *Server) handleSubmitFeedback(c echo.Context) error {
	ctx := c.Request().Context()

	var req submitFeedbackRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	record, err := s.ingest.Submit(ctx, analytics.SubmitRequest{
		Content:     req.Content,
		Department:  req.Department,
		IsAnonymous: req.IsAnonymous,
	})

	var modErr *analytics.ModerationError
	switch {
	case errors.As(err, &modErr):
		// Expected outcome, not a failure: surface the generic reason.
		response := map[string]any{"accepted": false, "reason": modErr.Reason}
		if err := c.JSON(http.StatusUnprocessableEntity, response); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	case errors.Is(err, domain.ErrEmptyContent):
		return apperrors.ValidationError("feedback content must not be empty")
	case err != nil:
		return apperrors.ExternalError("failed to store feedback", err)
	}

	response := map[string]any{
		"accepted":        true,
		"id":              record.ID.String(),
		"sentiment_label": record.SentimentLabel,
		"sentiment_score": record.SentimentScore,
		"keywords":        record.Keywords,
		"created_at":      record.CreatedAt,
	}
	if err := c.JSON(http.StatusCreated, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleTopKeywords(c echo.Context) error {
	ctx := c.Request().Context()

	windowDays, err := queryInt(c, "window_days", defaultWindowDays)
	if err != nil {
		return err
	}
	topN, err := queryInt(c, "top_n", defaultTopN)
	if err != nil {
		return err
	}

	var label domain.Sentiment
	if raw := c.QueryParam("sentiment"); raw != "" {
		label, err = domain.ParseSentiment(raw)
		if err != nil {
			return apperrors.ValidationError("invalid sentiment filter").WithContext("sentiment", raw)
		}
	}

	records, err := s.keywords.TopKeywords(ctx, windowDays, topN, label, c.QueryParam("department"))
	if err != nil {
		return apperrors.ExternalError("failed to load top keywords", err)
	}

	if err := c.JSON(http.StatusOK, map[string]any{"keywords": keywordEntries(records)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleForecast(c echo.Context) error {
	ctx := c.Request().Context()

	metric := domain.MetricFeedbackCount
	if raw := c.QueryParam("metric"); raw != "" {
		var err error
		metric, err = domain.ParseMetric(raw)
		if err != nil {
			return apperrors.ValidationError("invalid forecast metric").WithContext("metric", raw)
		}
	}

	windowDays, err := queryInt(c, "window_days", defaultWindowDays)
	if err != nil {
		return err
	}
	weeks, err := queryInt(c, "weeks", defaultForecastWeeks)
	if err != nil {
		return err
	}

	result, err := s.reports.ForecastData(ctx, metric, windowDays, weeks)
	if err != nil {
		return apperrors.ExternalError("failed to compute forecast", err)
	}

	metrics.ForecastRequestsTotal.WithLabelValues(string(metric)).Inc()

	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleInsights(c echo.Context) error {
	ctx := c.Request().Context()

	windowDays, err := queryInt(c, "window_days", defaultWindowDays)
	if err != nil {
		return err
	}

	// Cache reads are best-effort: a cache failure falls through to a
	// recompute from aggregate state.
	if cached, err := s.cache.Get(ctx, windowDays); err != nil {
		slog.Warn("Insights cache read failed", "error", err)
	} else if cached != nil {
		if err := c.JSON(http.StatusOK, cached); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	summary, err := s.reports.InsightsSummary(ctx, windowDays)
	if err != nil {
		return apperrors.ExternalError("failed to compute insights", err)
	}

	if err := s.cache.Set(ctx, windowDays, summary); err != nil {
		slog.Warn("Insights cache write failed", "error", err)
	}

	if err := c.JSON(http.StatusOK, summary); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type recomputeRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (s *Server) handleRecomputeAggregates(c echo.Context) error {
	ctx := c.Request().Context()

	var req recomputeRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return apperrors.ValidationError("start_date must be YYYY-MM-DD").WithContext("start_date", req.StartDate)
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return apperrors.ValidationError("end_date must be YYYY-MM-DD").WithContext("end_date", req.EndDate)
	}

	aggs, err := s.aggregates.ComputeRange(ctx, start, end)
	if errors.Is(err, domain.ErrInvalidDateRange) {
		return apperrors.ValidationError("end_date is before start_date")
	}
	if err != nil {
		metrics.AggregateRecomputesTotal.WithLabelValues("error").Inc()
		return apperrors.ExternalError("failed to recompute aggregates", err)
	}
	metrics.AggregateRecomputesTotal.WithLabelValues("ok").Inc()

	if err := c.JSON(http.StatusOK, map[string]any{"aggregates": aggs, "days": len(aggs)}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// keywordEntry is the wire shape of one tracked keyword.
type keywordEntry struct {
	Keyword    string `json:"keyword"`
	Frequency  int    `json:"frequency"`
	Sentiment  string `json:"sentiment"`
	Department string `json:"department,omitempty"`
	FirstSeen  string `json:"first_seen"`
	LastSeen   string `json:"last_seen"`
}

func keywordEntries(records []domain.KeywordRecord) []keywordEntry {
	entries := make([]keywordEntry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, keywordEntry{
			Keyword:    rec.Keyword,
			Frequency:  rec.Frequency,
			Sentiment:  string(rec.Sentiment),
			Department: rec.Department,
			FirstSeen:  rec.FirstSeen.Format(time.DateOnly),
			LastSeen:   rec.LastSeen.Format(time.DateOnly),
		})
	}
	return entries
}

func queryInt(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 || v > maxWindowDays {
		return 0, apperrors.ValidationError(name + " must be a positive integer").WithContext(name, raw)
	}
	return v, nil
}
