package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69"))

	statusStyle = lipgloss.NewStyle().
			Faint(true).
			Italic(true)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("grocer") + statusStyle.Render("  "+m.sessionShort()) + "\n\n")
	b.WriteString(m.viewport.View() + "\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status) + "\n")
	} else {
		b.WriteString("\n")
	}
	b.WriteString(inputBoxStyle.Width(m.width - 2).Render(m.textinput.View()))
	return b.String()
}

func (m Model) sessionShort() string {
	if len(m.sessionID) >= 8 {
		return "session " + m.sessionID[:8]
	}
	return "session " + m.sessionID
}

// renderHistory renders the transcript, pushing assistant turns through the
// markdown renderer when one is available.
func (m Model) renderHistory() string {
	var b strings.Builder
	for _, msg := range m.history {
		switch msg.Role {
		case "user":
			b.WriteString(userStyle.Render("you") + " " + msg.Content + "\n")
		default:
			content := msg.Content
			if m.renderer != nil {
				if rendered, err := m.renderer.Render(content); err == nil {
					content = strings.TrimRight(rendered, "\n") + "\n"
				}
			}
			b.WriteString(content + "\n")
		}
	}
	return b.String()
}
