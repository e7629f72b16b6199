package keyboard

import (
	"time"

	"github.com/bastiangx/notekeys/internal/logger"
	"github.com/bastiangx/notekeys/internal/utils"
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Suggester ranks candidates for the state of a buffer.
type Suggester interface {
	SuggestFor(buf *buffer.Buffer) []suggest.Candidate
}

// Options configures a Session.
type Options struct {
	// RequeryDelay is how long after a selection the panel is refreshed.
	RequeryDelay time.Duration
	// Scheduler runs the refresh; nil runs it immediately.
	Scheduler Scheduler
	// Logger defaults to a "keyboard" prefixed logger.
	Logger *log.Logger
}

// Session is one note's keyboard. It is not safe for concurrent use; hosts
// drive it from a single event loop.
type Session struct {
	buf       *buffer.Buffer
	suggester Suggester
	renderer  Renderer
	persister Persister
	scheduler Scheduler
	delay     time.Duration
	logger    *log.Logger

	state       State
	built       bool
	suggestions []string
	unsubscribe func()
}

// NewSession creates a closed session editing buf. Every buffer change is
// handed to persister.
func NewSession(buf *buffer.Buffer, suggester Suggester, renderer Renderer, persister Persister, opts Options) *Session {
	if buf == nil {
		buf = buffer.New("")
	}
	if renderer == nil {
		renderer = nopRenderer{}
	}
	if opts.Scheduler == nil {
		opts.Scheduler = Immediate{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.New("keyboard")
	}

	s := &Session{
		buf:       buf,
		suggester: suggester,
		renderer:  renderer,
		persister: persister,
		scheduler: opts.Scheduler,
		delay:     opts.RequeryDelay,
		logger:    opts.Logger,
		state:     Closed,
	}
	s.unsubscribe = buf.Subscribe(s.persist)
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Buffer returns the edited buffer.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Text returns the buffer contents.
func (s *Session) Text() string {
	return s.buf.Content()
}

// Suggestions returns the words currently shown in the panel.
func (s *Session) Suggestions() []string {
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Focus opens the keyboard. The surface is built the first time and only
// shown afterwards. Focusing an open keyboard does nothing.
func (s *Session) Focus() {
	if s.state != Closed {
		return
	}
	s.renderer.ShowKeyboard(!s.built)
	s.built = true
	s.state = Idle
	s.clearPanel()
}

// Press handles a key. Character keys insert their label; labels longer than
// one rune are inserted as typed text. Presses on a closed keyboard are
// ignored.
func (s *Session) Press(key Key) {
	if s.state == Closed || key == "" {
		return
	}

	switch key {
	case KeyClose:
		s.Close()
		return
	case KeyBackspace:
		s.buf.Backspace()
	case KeySpace:
		s.buf.InsertSpace()
	case KeyEnter:
		s.buf.InsertNewline()
	default:
		if utils.IsSingleRune(string(key)) {
			s.buf.InsertChar([]rune(key)[0])
		} else {
			s.buf.InsertString(string(key))
		}
	}

	s.state = Suggesting
	s.refresh()
}

// Select splices word into the buffer in place of the trailing word and
// schedules a re-query so the panel chains into next-word suggestions.
func (s *Session) Select(word string) {
	if s.state == Closed {
		return
	}
	s.clearPanel()
	s.buf.ApplyCandidate(word)
	s.state = Suggesting
	s.scheduler.After(s.delay, func() {
		if s.state == Closed {
			return
		}
		s.refresh()
	})
}

// OnSuggestionSelected is Select under the name rendering layers bind to.
func (s *Session) OnSuggestionSelected(word string) {
	s.Select(word)
}

// Blur reports that the note lost focus. Focus moving onto the keyboard
// surface itself keeps the keyboard open; anything else closes it.
func (s *Session) Blur(toKeyboard bool) {
	if toKeyboard || s.state == Closed {
		return
	}
	s.Close()
}

// Close saves the text, hides the keyboard and clears the panel.
func (s *Session) Close() {
	if s.state == Closed {
		return
	}
	s.persist(s.buf.Content())
	s.renderer.HideKeyboard()
	s.clearPanel()
	s.state = Closed
}

// Detach stops persisting buffer changes. The session should not be used
// afterwards.
func (s *Session) Detach() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Session) refresh() {
	var words []string
	if s.suggester != nil {
		words = suggest.Words(s.suggester.SuggestFor(s.buf))
	}
	s.suggestions = words
	s.renderer.RenderSuggestions(s.Suggestions())
	s.logger.Debug("Rendered suggestions", "count", len(words), "trailing", s.buf.TrailingWord())
}

func (s *Session) clearPanel() {
	s.suggestions = nil
	s.renderer.RenderSuggestions([]string{})
}

func (s *Session) persist(text string) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Persist(text); err != nil {
		s.logger.Error("Failed to persist note text", "error", err)
	}
}
