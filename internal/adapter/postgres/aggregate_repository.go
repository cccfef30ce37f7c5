package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peoplepulse/peoplepulse/internal/domain"
)

// AggregateRepo implements domain.AggregateRepository. Rows are keyed by
// calendar date and fully replaced on every write.
type AggregateRepo struct {
	pool *pgxpool.Pool
}

func NewAggregateRepo(pool *pgxpool.Pool) *AggregateRepo {
	return &AggregateRepo{pool: pool}
}

func (r *AggregateRepo) Replace(ctx context.Context, agg *domain.DailyAggregate) error {
	breakdown, err := json.Marshal(agg.DepartmentBreakdown)
	if err != nil {
		return fmt.Errorf("failed to encode department breakdown: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO daily_aggregates (date, feedback_count, sentiment_avg, positive_count, neutral_count, negative_count, anonymous_count, flagged_count, department_breakdown, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (date) DO UPDATE SET
			feedback_count = EXCLUDED.feedback_count,
			sentiment_avg = EXCLUDED.sentiment_avg,
			positive_count = EXCLUDED.positive_count,
			neutral_count = EXCLUDED.neutral_count,
			negative_count = EXCLUDED.negative_count,
			anonymous_count = EXCLUDED.anonymous_count,
			flagged_count = EXCLUDED.flagged_count,
			department_breakdown = EXCLUDED.department_breakdown,
			computed_at = NOW()
	`, agg.Date, agg.FeedbackCount, agg.SentimentAvg, agg.PositiveCount, agg.NeutralCount,
		agg.NegativeCount, agg.AnonymousCount, agg.FlaggedCount, breakdown)
	if err != nil {
		return fmt.Errorf("failed to replace aggregate for %s: %w", agg.Date.Format(time.DateOnly), err)
	}
	return nil
}

func (r *AggregateRepo) ListRange(ctx context.Context, from, to time.Time) ([]domain.DailyAggregate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT date, feedback_count, sentiment_avg, positive_count, neutral_count, negative_count, anonymous_count, flagged_count, department_breakdown
		FROM daily_aggregates
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query aggregates: %w", err)
	}
	defer rows.Close()

	var aggs []domain.DailyAggregate
	for rows.Next() {
		var agg domain.DailyAggregate
		var breakdown []byte

		err := rows.Scan(&agg.Date, &agg.FeedbackCount, &agg.SentimentAvg, &agg.PositiveCount,
			&agg.NeutralCount, &agg.NegativeCount, &agg.AnonymousCount, &agg.FlaggedCount, &breakdown)
		if err != nil {
			return nil, fmt.Errorf("failed to scan aggregate row: %w", err)
		}

		if err := json.Unmarshal(breakdown, &agg.DepartmentBreakdown); err != nil {
			return nil, fmt.Errorf("failed to decode department breakdown: %w", err)
		}
		agg.Date = agg.Date.UTC()

		aggs = append(aggs, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read aggregate rows: %w", err)
	}
	return aggs, nil
}
