package utils

import (
	"strings"
)

// SuggestionFilter drops repeated words while merging suggestion lists.
// It is not safe for concurrent use; make one per query.
type SuggestionFilter struct {
	seenWords map[string]bool
	inputWord string
}

// NewSuggestionFilter creates a filter that also excludes input itself.
// Pass "" to only de-duplicate.
func NewSuggestionFilter(input string) *SuggestionFilter {
	lowerInput := strings.ToLower(input)
	seenWords := make(map[string]bool)
	if lowerInput != "" {
		seenWords[lowerInput] = true
	}

	return &SuggestionFilter{
		seenWords: seenWords,
		inputWord: lowerInput,
	}
}

// ShouldInclude reports whether word is new to the filter, case-insensitively,
// and records it.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	lowerWord := strings.ToLower(word)
	if lowerWord == "" || f.seenWords[lowerWord] {
		return false
	}
	f.seenWords[lowerWord] = true
	return true
}

// Seen returns how many distinct words passed the filter.
func (f *SuggestionFilter) Seen() int {
	if f.inputWord != "" {
		return len(f.seenWords) - 1
	}
	return len(f.seenWords)
}
