package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/peoplepulse/peoplepulse/internal/domain"
)

// Reporter answers the windowed analytics queries. It reads only from the
// aggregate and keyword stores, never from raw feedback records, keeping
// every query O(window length) instead of O(record count).
type Reporter struct {
	aggregates domain.AggregateRepository
	tracker    *KeywordTracker
	clock      clockwork.Clock
}

func NewReporter(aggregates domain.AggregateRepository, tracker *KeywordTracker, clock clockwork.Clock) *Reporter {
	return &Reporter{aggregates: aggregates, tracker: tracker, clock: clock}
}

// window returns the [from, to] day range covering the last windowDays
// calendar days, ending today.
func (r *Reporter) window(windowDays int) (time.Time, time.Time) {
	to := DateOnly(r.clock.Now())
	return to.AddDate(0, 0, -(windowDays - 1)), to
}

// ForecastData projects the selected aggregate metric forward. An empty
// window yields an empty result with a stable trend, not an error.
func (r *Reporter) ForecastData(ctx context.Context, metric domain.Metric, windowDays, forecastWeeks int) (*domain.ForecastResult, error) {
	from, to := r.window(windowDays)
	aggs, err := r.aggregates.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregates: %w", err)
	}

	dates := make([]time.Time, 0, len(aggs))
	values := make([]float64, 0, len(aggs))
	for _, agg := range aggs {
		dates = append(dates, agg.Date)
		switch metric {
		case domain.MetricSentimentAvg:
			values = append(values, agg.SentimentAvg)
		default:
			values = append(values, float64(agg.FeedbackCount))
		}
	}

	result := ForecastWithConfidence(dates, values, forecastWeeks, DefaultAlpha, Z95)
	return &result, nil
}

// InsightsSummary composes the aggregate window, the keyword tracker, and
// the trend analysis into one report. Empty windows return zeroed values.
func (r *Reporter) InsightsSummary(ctx context.Context, windowDays int) (*domain.InsightsSummary, error) {
	from, to := r.window(windowDays)
	aggs, err := r.aggregates.ListRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load aggregates: %w", err)
	}

	summary := &domain.InsightsSummary{
		SentimentDistribution: map[domain.Sentiment]int{
			domain.SentimentPositive: 0,
			domain.SentimentNeutral:  0,
			domain.SentimentNegative: 0,
		},
		Trend: domain.TrendSummary{Direction: domain.TrendStable},
	}

	topKeywords, err := r.tracker.TopKeywords(ctx, windowDays, defaultTopKeywords, "", "")
	if err != nil {
		return nil, err
	}
	summary.TopKeywords = topKeywords

	if len(aggs) == 0 {
		return summary, nil
	}

	var scoreSum float64
	var anonymous int
	counts := make([]float64, 0, len(aggs))
	for _, agg := range aggs {
		summary.TotalFeedback += agg.FeedbackCount
		summary.SentimentDistribution[domain.SentimentPositive] += agg.PositiveCount
		summary.SentimentDistribution[domain.SentimentNeutral] += agg.NeutralCount
		summary.SentimentDistribution[domain.SentimentNegative] += agg.NegativeCount
		anonymous += agg.AnonymousCount
		// Weight each day's average by its record count so empty days do
		// not drag the window average toward zero.
		scoreSum += agg.SentimentAvg * float64(agg.FeedbackCount)
		counts = append(counts, float64(agg.FeedbackCount))
	}

	summary.AvgDailyFeedback = float64(summary.TotalFeedback) / float64(len(aggs))
	if summary.TotalFeedback > 0 {
		summary.AvgSentimentScore = scoreSum / float64(summary.TotalFeedback)
		summary.AnonymousPercentage = float64(anonymous) / float64(summary.TotalFeedback) * 100
	}
	summary.Trend = AnalyzeTrend(counts)

	return summary, nil
}
