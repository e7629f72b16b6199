package tui

import (
	"strings"
	"testing"

	"github.com/bastiangx/notekeys/pkg/dictionary"
	"github.com/bastiangx/notekeys/pkg/keyboard"
	"github.com/bastiangx/notekeys/pkg/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(saved *[]string) Model {
	engine := suggest.NewEngine(dictionary.New([]string{"the", "then", "there"}), suggest.DefaultOptions())
	persist := keyboard.PersistFunc(func(text string) error {
		*saved = append(*saved, text)
		return nil
	})
	return NewModel(engine, persist, "note", "", 0)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and runs the returned tick commands back through Update.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		rq, ok := out.(requeryMsg)
		if !ok {
			break
		}
		next, cmd = m.Update(rq)
		m = next.(Model)
	}
	return m
}

func TestTypingAndTabSelect(t *testing.T) {
	var saved []string
	m := newTestModel(&saved)
	assert.Equal(t, keyboard.Idle, m.Session().State())
	assert.Equal(t, 1, m.surface.builds)

	m = send(t, m, runes("th"))
	assert.Equal(t, []string{"the", "then", "there"}, m.surface.words)
	assert.Contains(t, m.View(), "1 the")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "the ", m.Session().Text())
	// the re-query ran through the tick and produced next words
	assert.Equal(t, []string{"best", "first", "same", "next", "last"}, m.surface.words)
	assert.Equal(t, "the ", saved[len(saved)-1])
}

func TestAltDigitSelect(t *testing.T) {
	var saved []string
	m := newTestModel(&saved)

	m = send(t, m, runes("th"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}, Alt: true})
	assert.Equal(t, "there ", m.Session().Text())

	// out of range is ignored
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'9'}, Alt: true})
	assert.Equal(t, "there ", m.Session().Text())
}

func TestSpecialKeysAndClose(t *testing.T) {
	var saved []string
	m := newTestModel(&saved)

	m = send(t, m, runes("ab"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "a \n", m.Session().Text())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, keyboard.Closed, m.Session().State())
	assert.True(t, strings.Contains(m.View(), "keyboard closed"))

	// typing while closed does nothing until reopened
	m = send(t, m, runes("z"))
	assert.Equal(t, "a \n", m.Session().Text())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, keyboard.Idle, m.Session().State())
	assert.Equal(t, 1, m.surface.builds)
}

func TestQuit(t *testing.T) {
	var saved []string
	m := newTestModel(&saved)
	m = send(t, m, runes("x"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, keyboard.Closed, m.Session().State())
}

func TestWindowSize(t *testing.T) {
	var saved []string
	m := newTestModel(&saved)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Equal(t, 100, next.(Model).width)
}
