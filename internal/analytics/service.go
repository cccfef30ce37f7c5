package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/metrics"
	"github.com/peoplepulse/peoplepulse/internal/moderation"
	"github.com/peoplepulse/peoplepulse/internal/sentiment"
)

// ModerationError carries the gate's generic reason for a rejected
// submission. It unwraps to domain.ErrModerationRejected.
type ModerationError struct {
	Reason string
}

func (e *ModerationError) Error() string {
	return fmt.Sprintf("moderation rejected: %s", e.Reason)
}

func (e *ModerationError) Unwrap() error { return domain.ErrModerationRejected }

// SubmitRequest is one incoming feedback submission.
type SubmitRequest struct {
	Content     string
	Department  string
	IsAnonymous bool
}

// Service is the ingestion path: moderation gate, sentiment classification,
// persistence, and keyword tracking, in that order. Content that fails
// moderation is never persisted, not even in a flagged state.
type Service struct {
	gate       *moderation.Gate
	classifier *sentiment.Classifier
	tracker    *KeywordTracker
	feedback   domain.FeedbackRepository
	clock      clockwork.Clock
}

func NewService(gate *moderation.Gate, classifier *sentiment.Classifier, tracker *KeywordTracker, feedback domain.FeedbackRepository, clock clockwork.Clock) *Service {
	return &Service{
		gate:       gate,
		classifier: classifier,
		tracker:    tracker,
		feedback:   feedback,
		clock:      clock,
	}
}

// Submit runs one submission through the full ingestion pipeline and returns
// the persisted record. A moderation block returns a *ModerationError; the
// reason never names the vocabulary that triggered it.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*domain.FeedbackRecord, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, domain.ErrEmptyContent
	}

	if verdict := s.gate.Check(content); verdict.Blocked {
		metrics.ModerationBlocksTotal.Inc()
		return nil, &ModerationError{Reason: verdict.Reason}
	}

	analysis := s.classifier.Analyze(content)

	record := &domain.FeedbackRecord{
		ID:             uuid.New(),
		Content:        content,
		SentimentLabel: analysis.Label,
		SentimentScore: analysis.Score,
		Keywords:       analysis.Keywords,
		IsAnonymous:    req.IsAnonymous,
		Department:     req.Department,
		CreatedAt:      s.clock.Now().UTC(),
	}

	if err := s.feedback.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist feedback: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(string(analysis.Label)).Inc()

	// Keyword tracking is best-effort: the record is already committed and
	// a tracker hiccup must not fail the submission.
	if err := s.tracker.Track(ctx, content, analysis.Label, req.Department); err != nil {
		slog.Error("Keyword tracking failed", "feedback_id", record.ID, "error", err)
	}

	return record, nil
}
