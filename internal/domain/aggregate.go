package domain

import (
	"context"
	"time"
)

// DailyAggregate is the pre-computed rollup for one calendar day. Rows are
// recomputed and fully replaced, never incrementally patched, so recomputing
// a day is always idempotent.
type DailyAggregate struct {
	Date                time.Time
	FeedbackCount       int
	SentimentAvg        float64
	PositiveCount       int
	NeutralCount        int
	NegativeCount       int
	AnonymousCount      int
	FlaggedCount        int
	DepartmentBreakdown map[string]int
}

type AggregateRepository interface {
	// Replace overwrites the rollup row for agg.Date, creating it if absent.
	Replace(ctx context.Context, agg *DailyAggregate) error
	// ListRange returns rollups for days in [from, to] inclusive, ordered by
	// date ascending. Days without a row are simply absent from the result.
	ListRange(ctx context.Context, from, to time.Time) ([]DailyAggregate, error)
}
