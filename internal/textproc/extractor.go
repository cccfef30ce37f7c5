// Package textproc normalizes free text and extracts n-gram keyword
// candidates for the keyword tracker and sentiment classifier.
package textproc

import (
	"strings"
	"unicode"

	"github.com/peoplepulse/peoplepulse/internal/lexicon"
)

// DefaultMinWordLength is the shortest unigram kept during extraction.
const DefaultMinWordLength = 3

// Options controls one extraction call.
type Options struct {
	Bigrams       bool
	Trigrams      bool
	MinWordLength int
}

// Extractor turns raw text into keyword candidates. It is stateless apart
// from the shared lexicon and safe for concurrent use.
type Extractor struct {
	lex *lexicon.Lexicon
}

func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// Normalize lowercases the text, strips everything but ASCII letters and
// digits, collapses runs of whitespace (any Unicode whitespace) to a single
// space, and trims.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastSpace := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
		// every other rune is dropped
	}

	return strings.TrimSpace(b.String())
}

// ExtractKeywords returns unigram (and optionally bigram/trigram) keyword
// candidates in first-occurrence order. The output is not deduplicated;
// frequency counting is the caller's concern. N-grams are built from the
// already-filtered unigram sequence, so they never contain a stopword.
func (e *Extractor) ExtractKeywords(text string, opts Options) []string {
	minLen := opts.MinWordLength
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}

	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	var tokens []string
	for _, tok := range strings.Fields(normalized) {
		if len(tok) < minLen || e.lex.IsStopword(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}

	keywords := make([]string, 0, len(tokens))
	keywords = append(keywords, tokens...)

	if opts.Bigrams {
		keywords = append(keywords, ngrams(tokens, 2)...)
	}
	if opts.Trigrams {
		keywords = append(keywords, ngrams(tokens, 3)...)
	}

	return keywords
}

func ngrams(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}
