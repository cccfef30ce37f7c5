package analytics

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/textproc"
)

const defaultTopKeywords = 10

// KeywordTracker maintains per-(keyword, sentiment, department) frequency
// rows. Frequencies only increase; deletion of source feedback is out of
// scope and never decrements a counter.
type KeywordTracker struct {
	repo      domain.KeywordRepository
	extractor *textproc.Extractor
	clock     clockwork.Clock
}

func NewKeywordTracker(repo domain.KeywordRepository, extractor *textproc.Extractor, clock clockwork.Clock) *KeywordTracker {
	return &KeywordTracker{repo: repo, extractor: extractor, clock: clock}
}

// Track extracts keywords from the content and upserts one row per
// occurrence under the given sentiment and department context.
func (t *KeywordTracker) Track(ctx context.Context, content string, label domain.Sentiment, department string) error {
	keywords := t.extractor.ExtractKeywords(content, textproc.Options{Bigrams: true})
	today := DateOnly(t.clock.Now())

	for _, kw := range keywords {
		if err := t.repo.Touch(ctx, kw, label, department, today); err != nil {
			return fmt.Errorf("failed to track keyword %q: %w", kw, err)
		}
	}
	return nil
}

// TopKeywords returns the most frequent keywords seen within the window,
// optionally filtered by sentiment and department. Frequency ties keep the
// store's stable order; callers must not assume a further tie-break.
func (t *KeywordTracker) TopKeywords(ctx context.Context, windowDays, topN int, label domain.Sentiment, department string) ([]domain.KeywordRecord, error) {
	if topN <= 0 {
		topN = defaultTopKeywords
	}

	q := domain.KeywordQuery{
		Since:      DateOnly(t.clock.Now()).AddDate(0, 0, -windowDays),
		Limit:      topN,
		Sentiment:  label,
		Department: department,
	}

	records, err := t.repo.TopKeywords(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query top keywords: %w", err)
	}
	return records, nil
}
