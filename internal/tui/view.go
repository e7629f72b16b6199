package tui

import (
	"fmt"
	"strings"

	"github.com/bastiangx/notekeys/pkg/keyboard"
	"github.com/charmbracelet/lipgloss"
)

var (
	noteStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("228")).
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("229")).
			Padding(0, 1)
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Padding(0, 1)
	keyStyle        = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")

	width := max(m.width-4, 20)
	b.WriteString(noteStyle.Width(width).Render(m.session.Text() + "▏"))
	b.WriteString("\n")

	if !m.surface.visible {
		b.WriteString(helpStyle.Render("keyboard closed · enter to open · q to quit"))
		return b.String()
	}

	b.WriteString(m.renderSuggestions())
	b.WriteString("\n")
	b.WriteString(renderLayout())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s · tab/alt+n pick · esc close · ctrl+c quit", m.session.State())))
	return b.String()
}

func (m Model) renderSuggestions() string {
	if len(m.surface.words) == 0 {
		return helpStyle.Render("(no suggestions)")
	}
	parts := make([]string, len(m.surface.words))
	for i, w := range m.surface.words {
		parts[i] = suggestionStyle.Render(fmt.Sprintf("%d %s", i+1, w))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderLayout() string {
	rows := make([]string, len(keyboard.Layout))
	for i, row := range keyboard.Layout {
		keys := make([]string, len(row))
		for j, k := range row {
			keys[j] = keyStyle.Render(string(k))
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, keys...)
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
