// This file contains /command handling for the chat interface.
package chat

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const helpText = `## Commands

| Command | Description |
|---------|-------------|
| /help | Show this help |
| /list | Show the grocery list |
| /clear | Clear the transcript (list is untouched) |
| /sessions | List saved transcripts |
| /quit | Save the transcript and exit |

Everything else is plain chat: **add**, **remove**, **show list**,
**suggestions**, **expiring**, **purchase**.`

// handleCommand processes all /command inputs from the user.
func (m Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch input {
	case "/quit", "/exit", "/q":
		m.saveTranscript()
		return m, tea.Quit

	case "/clear":
		m.history = nil
		m.viewport.SetContent("")
		m.textinput.Reset()
		m.saveTranscript()
		return m, nil

	case "/list":
		m.history = append(m.history, Message{
			Role:    "assistant",
			Content: m.bot.Reply("show list").Reply,
			Time:    time.Now(),
		})

	case "/sessions":
		content := "No saved sessions."
		if ids, err := ListTranscripts(m.dataDir); err == nil && len(ids) > 0 {
			var sb strings.Builder
			sb.WriteString("## Saved sessions\n\n")
			for _, id := range ids {
				marker := ""
				if id == m.sessionID {
					marker = " *(current)*"
				}
				sb.WriteString("- `" + id + "`" + marker + "\n")
			}
			content = sb.String()
		}
		m.history = append(m.history, Message{
			Role:    "assistant",
			Content: content,
			Time:    time.Now(),
		})

	case "/help":
		m.history = append(m.history, Message{
			Role:    "assistant",
			Content: helpText,
			Time:    time.Now(),
		})

	default:
		m.history = append(m.history, Message{
			Role:    "assistant",
			Content: "Unknown command " + input + ". Try /help.",
			Time:    time.Now(),
		})
	}

	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	m.textinput.Reset()
	return m, nil
}
