package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/notekeys/internal/logger"
	"github.com/bastiangx/notekeys/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("58"))
)

// terminal renders the keyboard to a line-oriented writer.
type terminal struct {
	out   *log.Logger
	shown bool
	last  []string
}

func newTerminal(w io.Writer) *terminal {
	return &terminal{
		out: logger.NewWithConfig(w, "", log.InfoLevel, false, false, log.TextFormatter),
	}
}

func (t *terminal) ShowKeyboard(build bool) {
	t.shown = true
	if build {
		t.out.Print("keyboard ready")
	}
}

func (t *terminal) HideKeyboard() {
	t.shown = false
	t.out.Print("keyboard closed")
}

// RenderSuggestions keeps the panel until the handler prints it, so a typed
// line shows one panel rather than one per rune.
func (t *terminal) RenderSuggestions(words []string) {
	t.last = words
}

func (t *terminal) printPanel() {
	if !t.shown {
		return
	}
	if len(t.last) == 0 {
		t.out.Print(indexStyle.Render("(no suggestions)"))
		return
	}
	parts := make([]string, len(t.last))
	for i, w := range t.last {
		parts[i] = indexStyle.Render(fmt.Sprintf("%d.", i+1)) + wordStyle.Render(w)
	}
	t.out.Print(strings.Join(parts, "  "))
}

func (t *terminal) printText(text string) {
	t.out.Printf("note: %s", textStyle.Render(strings.ReplaceAll(text, "\n", "⏎")+"▏"))
}

func (t *terminal) printScores(candidates []suggest.Candidate) {
	for i, c := range candidates {
		t.out.Printf("%2d. %-20s (score: %4d)", i+1, wordStyle.Render(c.Word), c.Score)
	}
}
