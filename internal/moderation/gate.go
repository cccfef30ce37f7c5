// Package moderation decides whether submitted feedback text is acceptable.
// A block verdict is a hard rejection: blocked content is never persisted,
// not even in a flagged state.
package moderation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/peoplepulse/peoplepulse/internal/domain"
	"github.com/peoplepulse/peoplepulse/internal/lexicon"
)

const (
	// severeReason deliberately never reveals which words matched.
	severeReason = "Severe violation: contains inappropriate content"

	maxUppercaseLength = 20
	maxPunctuationRuns = 5
)

// Gate screens text against the severe and profanity blocklists plus a few
// shouting heuristics. It is stateless and safe for concurrent use.
type Gate struct {
	lex *lexicon.Lexicon
}

func NewGate(lex *lexicon.Lexicon) *Gate {
	return &Gate{lex: lex}
}

// Check classifies the text. The returned reason summarizes the category of
// the violation without naming the triggering vocabulary.
func (g *Gate) Check(text string) domain.ModerationResult {
	lower := strings.ToLower(text)

	for _, term := range g.lex.SevereWords() {
		if matchTerm(lower, term) {
			return domain.ModerationResult{Blocked: true, Reason: severeReason}
		}
	}

	violations := 0
	for _, term := range g.lex.ProfanityWords() {
		if matchTerm(lower, term) {
			violations++
		}
	}
	if violations > 0 {
		return domain.ModerationResult{
			Blocked: true,
			Reason:  fmt.Sprintf("Contains inappropriate language (%d violations)", violations),
		}
	}

	if isShouting(text) {
		return domain.ModerationResult{Blocked: true, Reason: "Excessive use of capital letters"}
	}
	if strings.Count(text, "!") > maxPunctuationRuns {
		return domain.ModerationResult{Blocked: true, Reason: "Excessive use of exclamation marks"}
	}
	if strings.Count(text, "?") > maxPunctuationRuns {
		return domain.ModerationResult{Blocked: true, Reason: "Excessive use of question marks"}
	}

	return domain.ModerationResult{}
}

// matchTerm applies the matching rule: multi-word terms use substring
// containment, single words require word boundaries so that "ass" does not
// match inside "classic".
func matchTerm(lowerText, term string) bool {
	if strings.Contains(term, " ") {
		return strings.Contains(lowerText, term)
	}
	return containsWord(lowerText, term)
}

func containsWord(text, word string) bool {
	for start := 0; ; {
		idx := strings.Index(text[start:], word)
		if idx < 0 {
			return false
		}
		idx += start

		beforeOK := idx == 0 || !isWordRune(rune(text[idx-1]))
		end := idx + len(word)
		afterOK := end == len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}

		start = idx + 1
	}
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isShouting reports whether the text is longer than maxUppercaseLength and
// entirely uppercase (ignoring text with no letters at all).
func isShouting(text string) bool {
	if len(text) <= maxUppercaseLength {
		return false
	}
	hasLetter := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
