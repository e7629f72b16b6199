// Package tui hosts a note keyboard in a terminal with bubbletea.
//
// The model is the session's renderer and scheduler: deferred re-queries
// become tea.Tick commands and run on the update loop like any other message.
package tui

import (
	"time"

	"github.com/bastiangx/notekeys/internal/logger"
	"github.com/bastiangx/notekeys/pkg/buffer"
	"github.com/bastiangx/notekeys/pkg/keyboard"
	tea "github.com/charmbracelet/bubbletea"
)

// surface is what the session draws into.
type surface struct {
	visible bool
	builds  int
	words   []string
}

func (s *surface) ShowKeyboard(build bool) {
	s.visible = true
	if build {
		s.builds++
	}
}

func (s *surface) HideKeyboard()                    { s.visible = false }
func (s *surface) RenderSuggestions(words []string) { s.words = words }

type deferred struct {
	delay time.Duration
	fn    func()
}

// ticker turns session work into tea.Tick commands.
type ticker struct {
	pending []deferred
}

func (t *ticker) After(d time.Duration, fn func()) {
	t.pending = append(t.pending, deferred{delay: d, fn: fn})
}

func (t *ticker) commands() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(t.pending))
	for i, d := range t.pending {
		fn := d.fn
		cmds[i] = tea.Tick(d.delay, func(time.Time) tea.Msg { return requeryMsg{fn: fn} })
	}
	t.pending = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

type requeryMsg struct {
	fn func()
}

// Model is the root bubbletea model.
type Model struct {
	session *keyboard.Session
	surface *surface
	ticker  *ticker
	title   string
	width   int
	height  int
}

// NewModel creates a model editing initial text. The keyboard opens at start.
func NewModel(suggester keyboard.Suggester, persister keyboard.Persister, title, initial string, requeryDelay time.Duration) Model {
	s := &surface{}
	t := &ticker{}
	session := keyboard.NewSession(buffer.New(initial), suggester, s, persister, keyboard.Options{
		RequeryDelay: requeryDelay,
		Scheduler:    t,
		Logger:       logger.Discard(),
	})
	session.Focus()
	return Model{
		session: session,
		surface: s,
		ticker:  t,
		title:   title,
		width:   60,
		height:  20,
	}
}

// Session returns the driven keyboard session.
func (m Model) Session() *keyboard.Session {
	return m.session
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("notekeys")
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case requeryMsg:
		msg.fn()
		return m, m.ticker.commands()

	case tea.KeyMsg:
		if cmd, quit := m.handleKey(msg); quit {
			return m, cmd
		}
		return m, m.ticker.commands()
	}
	return m, nil
}

// handleKey maps terminal keys onto keyboard keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		m.session.Close()
		return tea.Quit, true
	}

	if m.session.State() == keyboard.Closed {
		switch msg.String() {
		case "q":
			return tea.Quit, true
		case "enter", "i":
			m.session.Focus()
		}
		return nil, false
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.session.Press(keyboard.KeyClose)
	case tea.KeyBackspace:
		m.session.Press(keyboard.KeyBackspace)
	case tea.KeyEnter:
		m.session.Press(keyboard.KeyEnter)
	case tea.KeySpace:
		m.session.Press(keyboard.KeySpace)
	case tea.KeyTab:
		m.selectAt(0)
	case tea.KeyRunes:
		if msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			m.selectAt(int(msg.Runes[0] - '1'))
			break
		}
		for _, r := range msg.Runes {
			if r == ' ' {
				m.session.Press(keyboard.KeySpace)
				continue
			}
			m.session.Press(keyboard.Key(string(r)))
		}
	}
	return nil, false
}

func (m Model) selectAt(i int) {
	words := m.session.Suggestions()
	if i < 0 || i >= len(words) {
		return
	}
	m.session.OnSuggestionSelected(words[i])
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
