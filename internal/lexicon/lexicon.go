// Package lexicon holds the static word lists the sentiment classifier and
// moderation gate consume: stopwords, polarity lists, and blocklists. The
// lists are compiled in and assembled once at startup; a Lexicon is immutable
// after construction and safe for concurrent readers.
package lexicon

// Lexicon bundles every word list the engine needs. Construct it once with
// Default() and pass the pointer into consumers; never mutate the sets.
type Lexicon struct {
	stopwords map[string]struct{}
	positive  []string
	negative  []string
	profanity []string
	severe    []string
}

// Default builds the Lexicon from the compiled-in word lists.
func Default() *Lexicon {
	stop := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stop[w] = struct{}{}
	}
	return &Lexicon{
		stopwords: stop,
		positive:  positiveWords,
		negative:  negativeWords,
		profanity: profanityWords,
		severe:    severeWords,
	}
}

// IsStopword reports whether the lowercase token is a stopword.
func (l *Lexicon) IsStopword(token string) bool {
	_, ok := l.stopwords[token]
	return ok
}

// PositiveWords returns the positive polarity list. Callers must not modify
// the returned slice.
func (l *Lexicon) PositiveWords() []string { return l.positive }

// NegativeWords returns the negative polarity list.
func (l *Lexicon) NegativeWords() []string { return l.negative }

// ProfanityWords returns the ordinary profanity blocklist.
func (l *Lexicon) ProfanityWords() []string { return l.profanity }

// SevereWords returns the severe-violation blocklist (threats, harassment),
// checked before ordinary profanity.
func (l *Lexicon) SevereWords() []string { return l.severe }
