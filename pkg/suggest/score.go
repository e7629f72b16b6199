package suggest

import (
	"strings"
	"unicode/utf8"
)

// Weights are the bonuses that make up a completion score.
type Weights struct {
	Prefix    int // every prefix match
	MaxLength int // shortness bonus is MaxLength minus word length, floored at 0
	Common    int // word is in the common English set
	Context   int // word is related to one of the context words
	Frequent  int // word is in the frequent note-taking set
}

// DefaultWeights returns the stock scoring bonuses.
func DefaultWeights() Weights {
	return Weights{
		Prefix:    100,
		MaxLength: 20,
		Common:    50,
		Context:   30,
		Frequent:  25,
	}
}

// Limits bound query results.
type Limits struct {
	Completions  int // max candidates for a partial word
	NextWords    int // max candidates after whitespace
	ContextWords int // words of context considered for relatedness
}

// DefaultLimits returns the stock result bounds.
func DefaultLimits() Limits {
	return Limits{
		Completions:  6,
		NextWords:    5,
		ContextWords: 3,
	}
}

// minRelatedPrefix is the shortest word that can relate to another by prefix.
// Below it a context word like "i" or "a" would boost every word sharing its
// first letter.
const minRelatedPrefix = 2

// Related reports whether two lower-case words are contextually related:
// one is a prefix of the other, or both belong to the same word family.
func Related(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if utf8.RuneCountInString(shorter) >= minRelatedPrefix && strings.HasPrefix(longer, shorter) {
		return true
	}

	families := familyIndex[a]
	if len(families) == 0 {
		return false
	}
	for _, fb := range familyIndex[b] {
		for _, fa := range families {
			if fa == fb {
				return true
			}
		}
	}
	return false
}

// score computes the completion score of a lower-case word that already
// matched the prefix.
func (w Weights) score(word string, context []string) int {
	s := w.Prefix
	s += max(0, w.MaxLength-utf8.RuneCountInString(word))

	if IsCommon(word) {
		s += w.Common
	}
	for _, c := range context {
		if Related(word, c) {
			s += w.Context
			break
		}
	}
	if IsFrequent(word) {
		s += w.Frequent
	}
	return s
}

// contextWords splits a context window and keeps the last n words.
func contextWords(contextWindow string, n int) []string {
	words := strings.Fields(strings.ToLower(contextWindow))
	if n > 0 && len(words) > n {
		words = words[len(words)-n:]
	}
	return words
}
