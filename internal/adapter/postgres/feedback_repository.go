package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peoplepulse/peoplepulse/internal/domain"
)

// FeedbackRepo implements domain.FeedbackRepository backed by PostgreSQL.
type FeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepo(pool *pgxpool.Pool) *FeedbackRepo {
	return &FeedbackRepo{pool: pool}
}

func (r *FeedbackRepo) Insert(ctx context.Context, record *domain.FeedbackRecord) error {
	var department *string
	if record.Department != "" {
		department = &record.Department
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO feedback (id, content, sentiment_label, sentiment_score, keywords, is_anonymous, department, is_flagged, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, record.ID, record.Content, string(record.SentimentLabel), record.SentimentScore,
		record.Keywords, record.IsAnonymous, department, record.IsFlagged, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepo) ListByDate(ctx context.Context, day time.Time) ([]domain.FeedbackRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, sentiment_label, sentiment_score, keywords, is_anonymous, department, is_flagged, created_at
		FROM feedback
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
	`, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback for %s: %w", day.Format(time.DateOnly), err)
	}
	defer rows.Close()

	return scanFeedbackRows(rows)
}

func scanFeedbackRows(rows pgx.Rows) ([]domain.FeedbackRecord, error) {
	var records []domain.FeedbackRecord
	for rows.Next() {
		var rec domain.FeedbackRecord
		var label, department *string
		var score *float64

		err := rows.Scan(&rec.ID, &rec.Content, &label, &score, &rec.Keywords,
			&rec.IsAnonymous, &department, &rec.IsFlagged, &rec.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}

		if label != nil {
			rec.SentimentLabel = domain.Sentiment(*label)
		}
		if score != nil {
			rec.SentimentScore = *score
		}
		if department != nil {
			rec.Department = *department
		}

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback rows: %w", err)
	}
	return records, nil
}
