package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peoplepulse/peoplepulse/internal/domain"
)

// KeywordRepo implements domain.KeywordRepository. Rows are unique per
// (keyword, sentiment, department); a missing department is stored as the
// empty string so the composite key stays total.
type KeywordRepo struct {
	pool *pgxpool.Pool
}

func NewKeywordRepo(pool *pgxpool.Pool) *KeywordRepo {
	return &KeywordRepo{pool: pool}
}

func (r *KeywordRepo) Touch(ctx context.Context, keyword string, sentiment domain.Sentiment, department string, day time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO keyword_stats (keyword, sentiment, department, frequency, first_seen, last_seen)
		VALUES ($1, $2, $3, 1, $4, $4)
		ON CONFLICT (keyword, sentiment, department) DO UPDATE SET
			frequency = keyword_stats.frequency + 1,
			last_seen = GREATEST(keyword_stats.last_seen, EXCLUDED.last_seen)
	`, keyword, string(sentiment), department, day)
	if err != nil {
		return fmt.Errorf("failed to touch keyword %q: %w", keyword, err)
	}
	return nil
}

func (r *KeywordRepo) TopKeywords(ctx context.Context, q domain.KeywordQuery) ([]domain.KeywordRecord, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT keyword, sentiment, department, frequency, first_seen, last_seen
		FROM keyword_stats
		WHERE last_seen >= $1`)

	args := []any{q.Since}
	if q.Sentiment != "" {
		args = append(args, string(q.Sentiment))
		sb.WriteString(" AND sentiment = $" + strconv.Itoa(len(args)))
	}
	if q.Department != "" {
		args = append(args, q.Department)
		sb.WriteString(" AND department = $" + strconv.Itoa(len(args)))
	}

	args = append(args, q.Limit)
	sb.WriteString(" ORDER BY frequency DESC, keyword LIMIT $" + strconv.Itoa(len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top keywords: %w", err)
	}
	defer rows.Close()

	var records []domain.KeywordRecord
	for rows.Next() {
		var rec domain.KeywordRecord
		var label string

		err := rows.Scan(&rec.Keyword, &label, &rec.Department, &rec.Frequency, &rec.FirstSeen, &rec.LastSeen)
		if err != nil {
			return nil, fmt.Errorf("failed to scan keyword row: %w", err)
		}
		rec.Sentiment = domain.Sentiment(label)
		rec.FirstSeen = rec.FirstSeen.UTC()
		rec.LastSeen = rec.LastSeen.UTC()

		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read keyword rows: %w", err)
	}
	return records, nil
}
