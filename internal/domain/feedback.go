package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sentiment is the closed set of sentiment labels. Invalid labels are
// unrepresentable outside of ParseSentiment.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment converts a stored label into a Sentiment.
func ParseSentiment(s string) (Sentiment, error) {
	switch Sentiment(s) {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return Sentiment(s), nil
	default:
		return "", fmt.Errorf("invalid sentiment label %q", s)
	}
}

// FeedbackRecord is a persisted feedback submission. SentimentLabel,
// SentimentScore and Keywords are set exactly once at creation by the
// analytics engine and never mutated afterwards.
type FeedbackRecord struct {
	ID             uuid.UUID
	Content        string
	SentimentLabel Sentiment
	SentimentScore float64
	Keywords       []string
	IsAnonymous    bool
	Department     string
	IsFlagged      bool
	CreatedAt      time.Time
}

// AnalysisResult is the sentiment classifier's output for one text.
type AnalysisResult struct {
	Label    Sentiment
	Score    float64
	Keywords []string
}

type FeedbackRepository interface {
	Insert(ctx context.Context, record *FeedbackRecord) error
	// ListByDate returns every record whose created_at falls on the given
	// calendar day (UTC).
	ListByDate(ctx context.Context, day time.Time) ([]FeedbackRecord, error)
}
