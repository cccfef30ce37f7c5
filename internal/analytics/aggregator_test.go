package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

func seedDay(repo *fakeFeedbackRepo, day time.Time, records ...domain.FeedbackRecord) {
	for i := range records {
		records[i].ID = uuid.New()
		records[i].CreatedAt = day.Add(time.Duration(i) * time.Hour)
	}
	repo.byDay[day] = append(repo.byDay[day], records...)
}

func TestComputeDaily_CountsAndAverages(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	aggregates := newFakeAggregateRepo()
	seedDay(feedback, testDay,
		domain.FeedbackRecord{SentimentLabel: domain.SentimentPositive, SentimentScore: 0.8, Department: "engineering"},
		domain.FeedbackRecord{SentimentLabel: domain.SentimentNegative, SentimentScore: 0.2, Department: "engineering", IsAnonymous: true},
		domain.FeedbackRecord{SentimentLabel: domain.SentimentNeutral, SentimentScore: 0.5, IsFlagged: true},
	)

	agg, err := NewAggregator(feedback, aggregates).ComputeDaily(context.Background(), testDay)
	require.NoError(t, err)

	assert.Equal(t, testDay, agg.Date)
	assert.Equal(t, 3, agg.FeedbackCount)
	assert.InDelta(t, 0.5, agg.SentimentAvg, 1e-9)
	assert.Equal(t, 1, agg.PositiveCount)
	assert.Equal(t, 1, agg.NeutralCount)
	assert.Equal(t, 1, agg.NegativeCount)
	assert.Equal(t, 1, agg.AnonymousCount)
	assert.Equal(t, 1, agg.FlaggedCount)
	assert.Equal(t, map[string]int{"engineering": 2}, agg.DepartmentBreakdown)
}

func TestComputeDaily_EmptyDayWritesZeroRow(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	aggregates := newFakeAggregateRepo()

	agg, err := NewAggregator(feedback, aggregates).ComputeDaily(context.Background(), testDay)
	require.NoError(t, err)

	assert.Equal(t, 0, agg.FeedbackCount)
	assert.Equal(t, 0.0, agg.SentimentAvg)
	assert.Empty(t, agg.DepartmentBreakdown)

	// The zero row must actually be persisted, not skipped.
	assert.Equal(t, 1, aggregates.replaceCalls)
	_, ok := aggregates.rows[testDay]
	assert.True(t, ok)
}

func TestComputeDaily_Idempotent(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	aggregates := newFakeAggregateRepo()
	seedDay(feedback, testDay,
		domain.FeedbackRecord{SentimentLabel: domain.SentimentPositive, SentimentScore: 0.7, Department: "sales"},
		domain.FeedbackRecord{SentimentLabel: domain.SentimentPositive, SentimentScore: 0.9, Department: "sales"},
	)

	aggregator := NewAggregator(feedback, aggregates)
	first, err := aggregator.ComputeDaily(context.Background(), testDay)
	require.NoError(t, err)
	second, err := aggregator.ComputeDaily(context.Background(), testDay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, aggregates.replaceCalls)
	assert.Equal(t, *first, aggregates.rows[testDay])
}

func TestComputeDaily_TruncatesTimestampToDay(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	aggregates := newFakeAggregateRepo()
	seedDay(feedback, testDay, domain.FeedbackRecord{SentimentLabel: domain.SentimentNeutral, SentimentScore: 0.5})

	agg, err := NewAggregator(feedback, aggregates).ComputeDaily(context.Background(), testDay.Add(15*time.Hour+30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, testDay, agg.Date)
	assert.Equal(t, 1, agg.FeedbackCount)
}

func TestComputeRange_InclusiveBounds(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	aggregates := newFakeAggregateRepo()
	seedDay(feedback, testDay, domain.FeedbackRecord{SentimentLabel: domain.SentimentNeutral, SentimentScore: 0.5})
	seedDay(feedback, testDay.AddDate(0, 0, 2), domain.FeedbackRecord{SentimentLabel: domain.SentimentPositive, SentimentScore: 0.6})

	aggs, err := NewAggregator(feedback, aggregates).ComputeRange(context.Background(), testDay, testDay.AddDate(0, 0, 2))
	require.NoError(t, err)

	require.Len(t, aggs, 3)
	assert.Equal(t, 1, aggs[0].FeedbackCount)
	assert.Equal(t, 0, aggs[1].FeedbackCount, "gap day still gets a zero row")
	assert.Equal(t, 1, aggs[2].FeedbackCount)
	assert.Equal(t, 3, aggregates.replaceCalls)
}

func TestComputeRange_SingleDay(t *testing.T) {
	aggregator := NewAggregator(newFakeFeedbackRepo(), newFakeAggregateRepo())
	aggs, err := aggregator.ComputeRange(context.Background(), testDay, testDay)
	require.NoError(t, err)
	assert.Len(t, aggs, 1)
}

func TestComputeRange_ReversedRangeRejected(t *testing.T) {
	aggregator := NewAggregator(newFakeFeedbackRepo(), newFakeAggregateRepo())
	_, err := aggregator.ComputeRange(context.Background(), testDay, testDay.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestDateOnly_NormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	ts := time.Date(2025, 6, 10, 0, 30, 0, 0, loc) // 2025-06-09 23:30 UTC
	assert.Equal(t, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), DateOnly(ts))
}
