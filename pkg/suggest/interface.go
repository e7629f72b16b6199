/*
Package suggest ranks dictionary words against the word being typed.

There are two query modes, picked by whether a partial word is present:

Completion: the trailing word is a prefix. Every dictionary word that starts
with it (ignoring case, and excluding the prefix itself) is scored and the six
best are returned. A score adds up fixed bonuses:

	prefix match             +100
	shortness                +20 minus the word length, never below 0
	common English word      +50
	related to context word  +30
	frequent in notes        +25

Ties keep dictionary order, so identical inputs always produce identical
output.

Next word: the buffer ends in whitespace. The last few typed words (the
context window) are matched against a table of short phrases such as "i am"
or "the"; the candidate lists of every matching phrase are merged in table
order. Without a match a list of common connectives is offered. Five words
are returned.

The bonuses are Weights and can be tuned through configuration; the defaults
reproduce the values above.
*/
package suggest

import (
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/dictionary"
)

// ISuggester defines the interface for suggestion engines
type ISuggester interface {
	// Suggest ranks candidates for the trailing word, or next words when it is empty
	Suggest(trailingWord, contextWindow string) []Candidate

	// SuggestFor queries with the state of buf
	SuggestFor(buf *buffer.Buffer) []Candidate

	// LoadDictionary replaces the word list, falling back on failure
	LoadDictionary(src dictionary.Source)

	// Stats returns statistics about the engine
	Stats() map[string]int
}

var _ ISuggester = (*Engine)(nil)
