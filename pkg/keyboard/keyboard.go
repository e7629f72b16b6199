// Package keyboard implements the on-screen keyboard that feeds a note's
// input buffer.
//
// A Session is a small state machine (Closed, Idle, Suggesting) wiring a
// buffer.Buffer to a suggest.Engine. Drawing, persistence and deferred work
// are delegated to the Renderer, Persister and Scheduler collaborators so the
// same session runs under the IPC server, the line CLI and the TUI.
package keyboard

// State is the keyboard lifecycle state of a session.
type State int

const (
	Closed State = iota
	Idle
	Suggesting
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Idle:
		return "idle"
	case Suggesting:
		return "suggesting"
	default:
		return "unknown"
	}
}

// Key is the label of a key on the virtual keyboard. Character keys are
// labelled with the character they insert.
type Key string

const (
	KeyBackspace Key = "⌫"
	KeySpace     Key = "space"
	KeyEnter     Key = "↵"
	KeyClose     Key = "✕"
)

// Layout is the key grid, top row first.
var Layout = [][]Key{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "=", KeyBackspace},
	{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]", "\\"},
	{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";", "'"},
	{"z", "x", "c", "v", "b", "n", "m", ",", ".", "/"},
	{KeySpace, KeyEnter, KeyClose},
}

// IsSpecial reports whether k is a control key rather than a character.
func (k Key) IsSpecial() bool {
	switch k {
	case KeyBackspace, KeySpace, KeyEnter, KeyClose:
		return true
	}
	return false
}

// Renderer draws the keyboard surface and the suggestion panel.
type Renderer interface {
	// ShowKeyboard displays the surface; build is true the first time a
	// session opens it.
	ShowKeyboard(build bool)
	HideKeyboard()
	// RenderSuggestions replaces the panel contents. An empty slice clears it.
	RenderSuggestions(words []string)
}

// Persister saves the note text. Failures are logged by the session and
// never interrupt typing.
type Persister interface {
	Persist(text string) error
}

// PersistFunc adapts a function to Persister.
type PersistFunc func(text string) error

func (f PersistFunc) Persist(text string) error { return f(text) }

type nopRenderer struct{}

func (nopRenderer) ShowKeyboard(bool)          {}
func (nopRenderer) HideKeyboard()              {}
func (nopRenderer) RenderSuggestions([]string) {}
