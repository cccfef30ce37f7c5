// Package sentiment scores feedback text against fixed polarity word lists.
// The score is a saturating function of lexicon hits, not a calibrated
// probability; callers should treat it as an ordinal strength indicator.
package sentiment

import (
	"strings"

	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/lexicon"
	"github.com/peoplepulse/peoplepulse/internal/textproc"
)

const (
	neutralScore  = 0.5
	scorePerHit   = 0.1
	maxKeywords   = 10
	minWordLength = textproc.DefaultMinWordLength
)

// Classifier labels text as positive, neutral, or negative and mines its
// keyword candidates. Stateless, safe for concurrent use.
type Classifier struct {
	lex       *lexicon.Lexicon
	extractor *textproc.Extractor
}

func NewClassifier(lex *lexicon.Lexicon, extractor *textproc.Extractor) *Classifier {
	return &Classifier{lex: lex, extractor: extractor}
}

// Analyze classifies the text and returns its label, score, and up to ten
// keyword candidates (bigrams included).
func (c *Classifier) Analyze(text string) domain.AnalysisResult {
	lower := strings.ToLower(text)

	positive := countOccurrences(lower, c.lex.PositiveWords())
	negative := countOccurrences(lower, c.lex.NegativeWords())

	var label domain.Sentiment
	var score float64
	switch {
	case positive > negative:
		label = domain.SentimentPositive
		score = min(1.0, neutralScore+scorePerHit*float64(positive))
	case negative > positive:
		label = domain.SentimentNegative
		score = max(0.0, neutralScore-scorePerHit*float64(negative))
	default:
		label = domain.SentimentNeutral
		score = neutralScore
	}

	keywords := c.extractor.ExtractKeywords(text, textproc.Options{
		Bigrams:       true,
		MinWordLength: minWordLength,
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}

	return domain.AnalysisResult{Label: label, Score: score, Keywords: keywords}
}

// countOccurrences sums substring occurrences of every term. Deliberately
// not word-boundary matching: stems hit their inflections.
func countOccurrences(lowerText string, terms []string) int {
	total := 0
	for _, term := range terms {
		total += strings.Count(lowerText, term)
	}
	return total
}
