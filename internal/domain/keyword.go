package domain

import (
	"context"
	"time"
)

// KeywordRecord tracks how often a keyword appeared in one sentiment and
// department context. The same literal keyword is tracked separately per
// (keyword, sentiment, department) triple and never merged across contexts.
// Frequency only increases and FirstSeen <= LastSeen always holds.
type KeywordRecord struct {
	Keyword    string
	Sentiment  Sentiment
	Department string
	Frequency  int
	FirstSeen  time.Time
	LastSeen   time.Time
}

// KeywordQuery filters and bounds a top-keywords read. Sentiment and
// Department are optional; empty means no filter.
type KeywordQuery struct {
	Since      time.Time
	Limit      int
	Sentiment  Sentiment
	Department string
}

type KeywordRepository interface {
	// Touch upserts the row for (keyword, sentiment, department): a new row
	// starts at frequency 1 with first_seen = last_seen = day, an existing
	// row gets frequency+1 and last_seen advanced to day.
	Touch(ctx context.Context, keyword string, sentiment Sentiment, department string, day time.Time) error
	// TopKeywords returns rows with last_seen >= q.Since matching the
	// optional filters, sorted by frequency descending, capped at q.Limit.
	TopKeywords(ctx context.Context, q KeywordQuery) ([]KeywordRecord, error)
}
