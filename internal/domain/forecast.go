package domain

import (
	"fmt"
	"time"
)

// Metric selects which daily aggregate series a forecast runs over.
type Metric string

const (
	MetricFeedbackCount Metric = "feedback_count"
	MetricSentimentAvg  Metric = "sentiment_avg"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricFeedbackCount, MetricSentimentAvg:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("invalid forecast metric %q", s)
	}
}

// TrendDirection classifies how a series moved across its window.
type TrendDirection string

const (
	TrendStable     TrendDirection = "stable"
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
)

// TrendSummary is the result of a midpoint-split trend analysis.
type TrendSummary struct {
	Direction TrendDirection `json:"direction"`
	Slope     float64        `json:"slope"`
	ChangePct float64        `json:"change_pct"`
}

// HistoricalPoint is one observed (date, value) pair.
type HistoricalPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ForecastPoint is one projected value with its confidence band.
type ForecastPoint struct {
	Date       time.Time `json:"date"`
	Value      float64   `json:"value"`
	LowerBound float64   `json:"lower_bound"`
	UpperBound float64   `json:"upper_bound"`
}

// ForecastResult is computed on demand from the current aggregate window and
// never persisted.
type ForecastResult struct {
	Historical []HistoricalPoint `json:"historical"`
	Forecast   []ForecastPoint   `json:"forecast"`
	Trend      TrendSummary      `json:"trend"`
	Method     string            `json:"method"`
}

// InsightsSummary composes aggregate, keyword, and trend state for a window.
// An empty window yields the zero value, not an error.
type InsightsSummary struct {
	TotalFeedback         int               `json:"total_feedback"`
	AvgDailyFeedback      float64           `json:"avg_daily_feedback"`
	SentimentDistribution map[Sentiment]int `json:"sentiment_distribution"`
	AvgSentimentScore     float64           `json:"avg_sentiment_score"`
	AnonymousPercentage   float64           `json:"anonymous_percentage"`
	TopKeywords           []KeywordRecord   `json:"top_keywords"`
	Trend                 TrendSummary      `json:"trend"`
}
