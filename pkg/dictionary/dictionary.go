/*
Package dictionary holds the word list the suggestion engine ranks against.

A Dictionary is built once per keyboard session and never changes afterwards,
so it can be shared by any number of notes without locking. Words keep the
order they were loaded in; that order is the tie-break when two candidates
score the same. A patricia trie indexes every word by its position so prefix
walks only touch matching entries.

Words are loaded from a Source. Load never fails: when the source errors or
yields nothing, the small FallbackWords list is used instead.
*/
package dictionary

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// fallbackWords is used whenever the configured source is missing or empty.
var fallbackWords = []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog"}

// Dictionary is an immutable, ordered set of lower-case words.
type Dictionary struct {
	words []string
	trie  *patricia.Trie
	name  string
}

// New builds a dictionary from words. Entries are trimmed and lower-cased;
// blanks and repeats are dropped, keeping the first occurrence.
func New(words []string) *Dictionary {
	d := &Dictionary{
		words: make([]string, 0, len(words)),
		trie:  patricia.NewTrie(),
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if d.trie.Insert(patricia.Prefix(w), len(d.words)) {
			d.words = append(d.words, w)
		}
	}
	return d
}

// Name returns the source the dictionary was loaded from, if any.
func (d *Dictionary) Name() string {
	return d.name
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Word returns the word at position i.
func (d *Dictionary) Word(i int) string {
	return d.words[i]
}

// Words returns a copy of the ordered word list.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}

// Index returns the load position of word.
func (d *Dictionary) Index(word string) (int, bool) {
	item := d.trie.Get(patricia.Prefix(strings.ToLower(word)))
	if item == nil {
		return 0, false
	}
	return item.(int), true
}

// Contains reports whether word is in the dictionary, ignoring case.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.Index(word)
	return ok
}

// VisitPrefix calls fn for every word starting with prefix (lower-cased),
// including prefix itself when present. Visit order is lexical; use the
// index for load order.
func (d *Dictionary) VisitPrefix(prefix string, fn func(word string, index int)) {
	lowerPrefix := strings.ToLower(prefix)
	err := d.trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		fn(string(p), item.(int))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting dictionary subtree: %v", err)
	}
}

// FallbackWords returns a copy of the list Load substitutes for a missing or
// empty source.
func FallbackWords() []string {
	out := make([]string, len(fallbackWords))
	copy(out, fallbackWords)
	return out
}

// Load reads words from src and builds a dictionary, substituting the fallback list
// when src is nil, fails, or yields no words.
func Load(src Source) *Dictionary {
	if src == nil {
		log.Warn("No dictionary source configured, using fallback word list")
		return fallback()
	}

	words, err := src.Words()
	if err != nil {
		log.Warnf("Failed to load dictionary from %s: %v. Using fallback word list", src.Name(), err)
		return fallback()
	}

	d := New(words)
	if d.Len() == 0 {
		log.Warnf("Dictionary source %s is empty, using fallback word list", src.Name())
		return fallback()
	}
	d.name = src.Name()

	log.Debugf("Dictionary loaded from %s with %d words", d.name, d.Len())
	return d
}

func fallback() *Dictionary {
	d := New(fallbackWords)
	d.name = "fallback"
	return d
}
