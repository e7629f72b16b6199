package suggest

import (
	"sort"

	"github.com/bastiangx/notekeys/pkg/dictionary"
)

// scored is a candidate plus its dictionary position for tie-breaking.
type scored struct {
	Candidate
	index int
}

// searchDictionary scores every word under lowerPrefix except the prefix
// itself, ordered by score and then dictionary position.
func searchDictionary(dict *dictionary.Dictionary, lowerPrefix string, context []string, w Weights) []scored {
	if dict == nil {
		return nil
	}

	var matches []scored
	dict.VisitPrefix(lowerPrefix, func(word string, index int) {
		// Skip the word already fully typed
		if word == lowerPrefix {
			return
		}
		matches = append(matches, scored{
			Candidate: Candidate{Word: word, Score: w.score(word, context)},
			index:     index,
		})
	})

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].index < matches[j].index
	})
	return matches
}

// capitalPositions records which runes of the typed prefix are upper case.
func capitalPositions(prefix string) []bool {
	runes := []rune(prefix)
	positions := make([]bool, len(runes))
	found := false
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			positions[i] = true
			found = true
		}
	}
	if !found {
		return nil
	}
	return positions
}

// ApplyCapitalization upper-cases the runes of word at the positions the
// user typed in upper case, so "Th" completes to "The".
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}

	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
