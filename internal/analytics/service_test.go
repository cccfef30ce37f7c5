package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/lexicon"
	"github.com/peoplepulse/peoplepulse/internal/moderation"
	"github.com/peoplepulse/peoplepulse/internal/sentiment"
	"github.com/peoplepulse/peoplepulse/internal/textproc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serviceNow = time.Date(2025, 6, 10, 11, 0, 0, 0, time.UTC)

func newTestService(feedback *fakeFeedbackRepo, keywords *fakeKeywordRepo) *Service {
	lex := lexicon.Default()
	extractor := textproc.NewExtractor(lex)
	clock := clockwork.NewFakeClockAt(serviceNow)
	tracker := NewKeywordTracker(keywords, extractor, clock)
	return NewService(moderation.NewGate(lex), sentiment.NewClassifier(lex, extractor), tracker, feedback, clock)
}

func TestSubmit_PersistsAnalyzedRecord(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	keywords := &fakeKeywordRepo{}
	svc := newTestService(feedback, keywords)

	record, err := svc.Submit(context.Background(), SubmitRequest{
		Content:     "The onboarding support was great",
		Department:  "engineering",
		IsAnonymous: true,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, "The onboarding support was great", record.Content)
	assert.Equal(t, domain.SentimentPositive, record.SentimentLabel)
	assert.InDelta(t, 0.6, record.SentimentScore, 1e-9)
	assert.NotEmpty(t, record.Keywords)
	assert.True(t, record.IsAnonymous)
	assert.Equal(t, "engineering", record.Department)
	assert.Equal(t, serviceNow, record.CreatedAt)

	require.Len(t, feedback.inserted, 1)
	assert.Equal(t, record, feedback.inserted[0])
	assert.NotEmpty(t, keywords.touches, "accepted feedback must feed the keyword tracker")
}

func TestSubmit_TrimsContent(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	svc := newTestService(feedback, &fakeKeywordRepo{})

	record, err := svc.Submit(context.Background(), SubmitRequest{Content: "  solid planning  "})
	require.NoError(t, err)
	assert.Equal(t, "solid planning", record.Content)
}

func TestSubmit_EmptyContentRejected(t *testing.T) {
	svc := newTestService(newFakeFeedbackRepo(), &fakeKeywordRepo{})

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := svc.Submit(context.Background(), SubmitRequest{Content: content})
		assert.ErrorIs(t, err, domain.ErrEmptyContent)
	}
}

func TestSubmit_BlockedContentNeverPersisted(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	keywords := &fakeKeywordRepo{}
	svc := newTestService(feedback, keywords)

	_, err := svc.Submit(context.Background(), SubmitRequest{Content: "I will kill this project"})

	var modErr *ModerationError
	require.ErrorAs(t, err, &modErr)
	assert.ErrorIs(t, err, domain.ErrModerationRejected)
	assert.Equal(t, "Severe violation: contains inappropriate content", modErr.Reason)
	assert.NotContains(t, modErr.Reason, "kill")

	assert.Empty(t, feedback.inserted, "blocked content must not reach storage")
	assert.Empty(t, keywords.touches, "blocked content must not feed the keyword tracker")
}

func TestSubmit_ProfanityReasonIncludesCount(t *testing.T) {
	svc := newTestService(newFakeFeedbackRepo(), &fakeKeywordRepo{})

	_, err := svc.Submit(context.Background(), SubmitRequest{Content: "the damn printer again"})

	var modErr *ModerationError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, "Contains inappropriate language (1 violations)", modErr.Reason)
}

func TestSubmit_InsertFailurePropagates(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	feedback.insertErr = errors.New("connection reset")
	keywords := &fakeKeywordRepo{}
	svc := newTestService(feedback, keywords)

	_, err := svc.Submit(context.Background(), SubmitRequest{Content: "decent offsite"})
	require.Error(t, err)
	assert.Empty(t, keywords.touches, "failed inserts must not feed the keyword tracker")
}

func TestSubmit_TrackerFailureDoesNotFailSubmission(t *testing.T) {
	feedback := newFakeFeedbackRepo()
	keywords := &fakeKeywordRepo{err: errors.New("keyword store down")}
	svc := newTestService(feedback, keywords)

	record, err := svc.Submit(context.Background(), SubmitRequest{Content: "decent offsite"})
	require.NoError(t, err)
	assert.NotNil(t, record)
	assert.Len(t, feedback.inserted, 1)
}
