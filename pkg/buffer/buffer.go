/*
Package buffer implements the append-only text model behind a note.

The virtual keyboard can only write at the end of the text, so the buffer
exposes no cursor. Every edit happens at the tail: characters are appended,
backspace drops the last rune, and an accepted suggestion replaces the word
currently being typed.

	buf := buffer.New("hello wor")
	buf.TrailingWord()          // "wor"
	buf.ApplyCandidate("world") // "hello world "
	buf.TrailingWord()          // ""

Observers registered with Subscribe are called once after each edit that
changed the content, which is how hosts persist the text and refresh
suggestions.
*/
package buffer

import (
	"slices"
	"strings"
	"unicode"
)

const (
	// Newline is the rune appended by InsertNewline.
	Newline = '\n'
	// Space is the rune appended by InsertSpace and after applied candidates.
	Space = ' '
)

// Observer receives the full content after a mutation.
type Observer func(content string)

// Buffer is the append-only content of a single note.
// It is not safe for concurrent use.
type Buffer struct {
	content   []rune
	observers map[int]Observer
	order     []int
	nextID    int
}

// New creates a buffer holding the given initial text.
// Loading initial text does not notify observers.
func New(initial string) *Buffer {
	return &Buffer{
		content:   []rune(initial),
		observers: make(map[int]Observer),
	}
}

// Subscribe registers fn to be called after every content change.
// The returned func removes the observer.
func (b *Buffer) Subscribe(fn Observer) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := b.nextID
	b.nextID++
	b.observers[id] = fn
	b.order = append(b.order, id)

	return func() {
		if _, ok := b.observers[id]; !ok {
			return
		}
		delete(b.observers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

func (b *Buffer) notify() {
	if len(b.order) == 0 {
		return
	}
	content := string(b.content)
	// observers may cancel themselves or each other while being called
	for _, id := range slices.Clone(b.order) {
		fn, ok := b.observers[id]
		if !ok {
			continue
		}
		fn(content)
	}
}

// Content returns the full text.
func (b *Buffer) Content() string {
	return string(b.content)
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len(b.content)
}

// IsEmpty reports whether the buffer holds no text at all.
func (b *Buffer) IsEmpty() bool {
	return len(b.content) == 0
}

// InsertChar appends r.
func (b *Buffer) InsertChar(r rune) {
	b.content = append(b.content, r)
	b.notify()
}

// InsertString appends s as a single edit. Empty strings are ignored.
func (b *Buffer) InsertString(s string) {
	if s == "" {
		return
	}
	b.content = append(b.content, []rune(s)...)
	b.notify()
}

// InsertSpace appends a space.
func (b *Buffer) InsertSpace() {
	b.InsertChar(Space)
}

// InsertNewline appends a line break.
func (b *Buffer) InsertNewline() {
	b.InsertChar(Newline)
}

// Backspace removes the last rune. It is a no-op on an empty buffer.
func (b *Buffer) Backspace() {
	if len(b.content) == 0 {
		return
	}
	b.content = b.content[:len(b.content)-1]
	b.notify()
}

// trailingStart returns the index where the trailing word begins.
func (b *Buffer) trailingStart() int {
	i := len(b.content)
	for i > 0 && !unicode.IsSpace(b.content[i-1]) {
		i--
	}
	return i
}

// TrailingWord returns the run of non-whitespace runes at the end of the
// content, or "" when the content is empty or ends in whitespace.
func (b *Buffer) TrailingWord() string {
	return string(b.content[b.trailingStart():])
}

// ApplyCandidate replaces the trailing word with word followed by a space.
// With no trailing word the candidate is appended as the next word.
// An empty word leaves the buffer untouched.
func (b *Buffer) ApplyCandidate(word string) {
	if word == "" {
		return
	}
	start := b.trailingStart()
	b.content = append(b.content[:start], []rune(word)...)
	b.content = append(b.content, Space)
	b.notify()
}

// ContextWindow returns the last n complete words before the trailing word,
// lower-cased and joined by single spaces. Punctuation around each word is
// trimmed so "I am." still reads as "i am".
func (b *Buffer) ContextWindow(n int) string {
	if n <= 0 {
		return ""
	}
	fields := strings.Fields(string(b.content[:b.trailingStart()]))

	words := make([]string, 0, n)
	for i := len(fields) - 1; i >= 0 && len(words) < n; i-- {
		w := strings.ToLower(strings.TrimFunc(fields[i], isTrimmable))
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
		words[i], words[j] = words[j], words[i]
	}
	return strings.Join(words, " ")
}

func isTrimmable(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
}
