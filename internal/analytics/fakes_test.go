package analytics

import (
	"context"
	"time"

	"github.com/peoplepulse/peoplepulse/internal/domain"
)

// In-memory repository fakes shared by the tests in this package.

type fakeFeedbackRepo struct {
	byDay     map[time.Time][]domain.FeedbackRecord
	inserted  []*domain.FeedbackRecord
	insertErr error
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{byDay: make(map[time.Time][]domain.FeedbackRecord)}
}

func (f *fakeFeedbackRepo) Insert(_ context.Context, record *domain.FeedbackRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, record)
	day := DateOnly(record.CreatedAt)
	f.byDay[day] = append(f.byDay[day], *record)
	return nil
}

func (f *fakeFeedbackRepo) ListByDate(_ context.Context, day time.Time) ([]domain.FeedbackRecord, error) {
	return f.byDay[DateOnly(day)], nil
}

type fakeAggregateRepo struct {
	rows         map[time.Time]domain.DailyAggregate
	replaceCalls int
}

func newFakeAggregateRepo() *fakeAggregateRepo {
	return &fakeAggregateRepo{rows: make(map[time.Time]domain.DailyAggregate)}
}

func (f *fakeAggregateRepo) Replace(_ context.Context, agg *domain.DailyAggregate) error {
	f.replaceCalls++
	f.rows[agg.Date] = *agg
	return nil
}

func (f *fakeAggregateRepo) ListRange(_ context.Context, from, to time.Time) ([]domain.DailyAggregate, error) {
	var out []domain.DailyAggregate
	for day := DateOnly(from); !day.After(DateOnly(to)); day = day.AddDate(0, 0, 1) {
		if row, ok := f.rows[day]; ok {
			out = append(out, row)
		}
	}
	return out, nil
}

type keywordTouch struct {
	keyword    string
	sentiment  domain.Sentiment
	department string
	day        time.Time
}

type fakeKeywordRepo struct {
	touches   []keywordTouch
	rows      []domain.KeywordRecord
	lastQuery domain.KeywordQuery
	err       error
}

func (f *fakeKeywordRepo) Touch(_ context.Context, keyword string, sentiment domain.Sentiment, department string, day time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.touches = append(f.touches, keywordTouch{keyword, sentiment, department, day})
	return nil
}

func (f *fakeKeywordRepo) TopKeywords(_ context.Context, q domain.KeywordQuery) ([]domain.KeywordRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastQuery = q
	return f.rows, nil
}

func (f *fakeKeywordRepo) touchCount(keyword string) int {
	n := 0
	for _, t := range f.touches {
		if t.keyword == keyword {
			n++
		}
	}
	return n
}
