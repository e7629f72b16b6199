package dictionary

import (
	"sort"
	"strings"
	"unicode"
)

// Default length bounds applied by Clean.
const (
	DefaultMinWordLen = 2
	DefaultMaxWordLen = 20
)

// Clean prepares a raw word list for use as suggestions: words are trimmed
// and lower-cased, and only purely alphabetic words of minLen..maxLen runes
// are kept. The result is de-duplicated and sorted.
func Clean(words []string, minLen, maxLen int) []string {
	seen := make(map[string]struct{}, len(words))
	cleaned := make([]string, 0, len(words))

	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		n := len([]rune(w))
		if n < minLen || n > maxLen || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		cleaned = append(cleaned, w)
	}

	sort.Strings(cleaned)
	return cleaned
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
