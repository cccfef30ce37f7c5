// Package metrics defines the Prometheus instruments for the analytics
// engine. Instruments register on the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ingestion metrics
var (
	// SubmissionsTotal tracks accepted feedback submissions by sentiment label
	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_submissions_total",
			Help: "Accepted feedback submissions by sentiment label",
		},
		[]string{"sentiment"},
	)

	// ModerationBlocksTotal tracks submissions rejected by the moderation gate
	ModerationBlocksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feedback_moderation_blocks_total",
			Help: "Submissions rejected by the moderation gate",
		},
	)
)

// Rollup and reporting metrics
var (
	// AggregateRecomputesTotal tracks daily rollup computations by outcome
	AggregateRecomputesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "daily_aggregate_recomputes_total",
			Help: "Daily aggregate recomputations by status",
		},
		[]string{"status"},
	)

	// ForecastRequestsTotal tracks forecast computations by metric
	ForecastRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_requests_total",
			Help: "Forecast computations by metric",
		},
		[]string{"metric"},
	)

	// InsightsCacheOps tracks insights cache lookups by result (hit/miss/error)
	InsightsCacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_cache_operations_total",
			Help: "Insights cache lookups by result",
		},
		[]string{"result"},
	)
)

// Redis metrics
var (
	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)
