package keyboard

import (
	"errors"
	"reflect"
	"testing"

	"github.com/bastiangx/notekeys/internal/logger"
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/bastiangx/notekeys/pkg/suggest"
)

type recordingRenderer struct {
	shows  []bool
	hides  int
	panels [][]string
}

func (r *recordingRenderer) ShowKeyboard(build bool)           { r.shows = append(r.shows, build) }
func (r *recordingRenderer) HideKeyboard()                     { r.hides++ }
func (r *recordingRenderer) RenderSuggestions(words []string) { r.panels = append(r.panels, words) }

func (r *recordingRenderer) lastPanel() []string {
	if len(r.panels) == 0 {
		return nil
	}
	return r.panels[len(r.panels)-1]
}

type recordingPersister struct {
	saved []string
	err   error
}

func (p *recordingPersister) Persist(text string) error {
	p.saved = append(p.saved, text)
	return p.err
}

func newTestSession(opts Options, words ...string) (*Session, *recordingRenderer, *recordingPersister) {
	var dict *dictionary.Dictionary
	if len(words) == 0 {
		dict = dictionary.Load(dictionary.Embedded())
	} else {
		dict = dictionary.New(words)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	r := &recordingRenderer{}
	p := &recordingPersister{}
	s := NewSession(buffer.New(""), suggest.NewEngine(dict, suggest.DefaultOptions()), r, p, opts)
	return s, r, p
}

func contains(words []string, w string) bool {
	for _, x := range words {
		if x == w {
			return true
		}
	}
	return false
}

func TestTypeSelectChain(t *testing.T) {
	s, r, _ := newTestSession(Options{})

	s.Focus()
	if s.State() != Idle {
		t.Fatalf("expected idle after focus, got %s", s.State())
	}

	s.Press("t")
	s.Press("h")
	if got := s.Suggestions(); len(got) == 0 || got[0] != "the" {
		t.Fatalf("expected \"the\" ranked first at \"th\", got %v", got)
	}

	s.Press("e")
	if s.State() != Suggesting {
		t.Fatalf("expected suggesting, got %s", s.State())
	}
	got := s.Suggestions()
	for _, w := range []string{"then", "there"} {
		if !contains(got, w) {
			t.Errorf("expected %q among %v", w, got)
		}
	}

	s.Select("the")
	if s.Text() != "the " {
		t.Errorf("expected buffer \"the \", got %q", s.Text())
	}
	if s.State() != Suggesting {
		t.Errorf("expected to stay suggesting, got %s", s.State())
	}
	expected := []string{"best", "first", "same", "next", "last"}
	if got := r.lastPanel(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected next-word panel %v, got %v", expected, got)
	}
}

func TestFocusBuildsOnce(t *testing.T) {
	s, r, _ := newTestSession(Options{}, "apple")

	s.Focus()
	s.Focus()
	s.Close()
	s.Focus()

	if !reflect.DeepEqual(r.shows, []bool{true, false}) {
		t.Errorf("expected build then show, got %v", r.shows)
	}
	if r.hides != 1 {
		t.Errorf("expected one hide, got %d", r.hides)
	}
}

func TestPressWhileClosedIgnored(t *testing.T) {
	s, r, p := newTestSession(Options{}, "apple")

	s.Press("a")
	s.Press(KeySpace)
	s.Select("apple")

	if s.Text() != "" || len(r.panels) != 0 || len(p.saved) != 0 {
		t.Errorf("closed keyboard reacted: text=%q panels=%v saved=%v", s.Text(), r.panels, p.saved)
	}
}

func TestSpecialKeys(t *testing.T) {
	s, _, _ := newTestSession(Options{}, "apple")
	s.Focus()

	for _, k := range []Key{"a", "b", KeyBackspace, KeySpace, "c", KeyEnter, "hi"} {
		s.Press(k)
	}
	if s.Text() != "a c\nhi" {
		t.Errorf("unexpected text %q", s.Text())
	}

	s.Press(KeyClose)
	if s.State() != Closed {
		t.Errorf("expected close key to close, got %s", s.State())
	}
}

func TestZeroResultsClearPanel(t *testing.T) {
	s, r, _ := newTestSession(Options{}, "apple", "apply")
	s.Focus()

	s.Press("a")
	if len(r.lastPanel()) != 2 {
		t.Fatalf("expected two candidates, got %v", r.lastPanel())
	}

	s.Press("x")
	if got := r.lastPanel(); got == nil || len(got) != 0 {
		t.Errorf("expected an empty panel, got %v", got)
	}
	if len(s.Suggestions()) != 0 {
		t.Errorf("stale suggestions kept: %v", s.Suggestions())
	}
}

func TestBlur(t *testing.T) {
	s, r, p := newTestSession(Options{}, "apple")
	s.Focus()
	s.Press("a")

	s.Blur(true)
	if s.State() == Closed {
		t.Fatal("focus moving to the keyboard must keep it open")
	}

	saved := len(p.saved)
	s.Blur(false)
	if s.State() != Closed {
		t.Fatalf("expected closed after blur, got %s", s.State())
	}
	if len(p.saved) != saved+1 || p.saved[len(p.saved)-1] != "a" {
		t.Errorf("expected text persisted on close, got %v", p.saved)
	}
	if r.hides != 1 || len(r.lastPanel()) != 0 {
		t.Errorf("expected hidden keyboard and empty panel, hides=%d panel=%v", r.hides, r.lastPanel())
	}
}

func TestPersistOnEveryChange(t *testing.T) {
	s, _, p := newTestSession(Options{}, "apple")
	s.Focus()

	s.Press("h")
	s.Press("i")
	s.Press(KeyBackspace)
	s.Press(KeyBackspace)
	// empty buffer: no change, no save
	s.Press(KeyBackspace)

	expected := []string{"h", "hi", "h", ""}
	if !reflect.DeepEqual(p.saved, expected) {
		t.Errorf("expected %v, got %v", expected, p.saved)
	}
}

func TestPersistFailureDoesNotInterrupt(t *testing.T) {
	s, _, p := newTestSession(Options{}, "apple")
	p.err = errors.New("disk full")
	s.Focus()

	s.Press("a")
	s.Close()
	if s.Text() != "a" {
		t.Errorf("expected text kept in memory, got %q", s.Text())
	}
}

func TestDeferredRequery(t *testing.T) {
	q := &Queue{}
	s, r, _ := newTestSession(Options{Scheduler: q}, "hello", "help")
	s.Focus()
	s.Press("h")

	s.Select("hello")
	if len(r.lastPanel()) != 0 {
		t.Errorf("expected panel cleared on select, got %v", r.lastPanel())
	}
	if q.Len() != 1 {
		t.Fatalf("expected one pending re-query, got %d", q.Len())
	}

	if ran := q.Drain(); ran != 1 {
		t.Errorf("expected one task run, got %d", ran)
	}
	if s.Text() != "hello " || len(r.lastPanel()) != 5 {
		t.Errorf("expected next-word panel after drain, text=%q panel=%v", s.Text(), r.lastPanel())
	}
}

func TestDeferredRequerySkippedAfterClose(t *testing.T) {
	q := &Queue{}
	s, r, _ := newTestSession(Options{Scheduler: q}, "hello")
	s.Focus()
	s.Press("h")
	s.Select("hello")
	s.Close()

	panels := len(r.panels)
	q.Drain()
	if len(r.panels) != panels {
		t.Errorf("closed session rendered after drain: %v", r.panels[panels:])
	}
}

func TestDetachStopsPersisting(t *testing.T) {
	s, _, p := newTestSession(Options{}, "apple")
	s.Focus()
	s.Detach()
	s.Press("a")
	if len(p.saved) != 0 {
		t.Errorf("expected nothing persisted after detach, got %v", p.saved)
	}
}

func TestLayout(t *testing.T) {
	last := Layout[len(Layout)-1]
	if !reflect.DeepEqual(last, []Key{KeySpace, KeyEnter, KeyClose}) {
		t.Errorf("unexpected bottom row %v", last)
	}
	if Layout[0][len(Layout[0])-1] != KeyBackspace {
		t.Error("expected backspace closing the digit row")
	}
	if Key("a").IsSpecial() || !KeyEnter.IsSpecial() {
		t.Error("IsSpecial misclassified keys")
	}
}
