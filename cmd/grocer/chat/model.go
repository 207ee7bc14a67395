// Package chat provides the interactive TUI chat interface for grocer.
package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"grocer/internal/chat"
	"grocer/internal/config"
	"grocer/internal/grocery"
	"grocer/internal/store"
)

// Message is one transcript entry.
type Message struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// reloadMsg is posted by the data-file watcher when the backing files were
// edited outside the process.
type reloadMsg struct{}

// Model is the bubbletea model for the chat interface.
type Model struct {
	assistant *grocery.Assistant
	bot       *chat.Bot
	log       *zap.Logger

	viewport  viewport.Model
	textinput textinput.Model
	renderer  *glamour.TermRenderer

	history   []Message
	sessionID string
	dataDir   string
	status    string

	width  int
	height int
	ready  bool
}

// NewModel builds the chat model around an already-loaded assistant.
func NewModel(assistant *grocery.Assistant, dataDir string, log *zap.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "add 2 liters of milk to dairy ..."
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Focus()

	m := Model{
		assistant: assistant,
		bot:       chat.NewBot(assistant),
		log:       log,
		textinput: ti,
		sessionID: uuid.NewString(),
		dataDir:   dataDir,
	}
	m.history = append(m.history, Message{
		Role:    "assistant",
		Content: welcomeText,
		Time:    time.Now(),
	})
	return m
}

const welcomeText = `# grocer

Hello! How can I help you with your groceries today?

Try *add 2 liters of milk to dairy*, *remove milk*, *show list*,
*suggestions*, *expiring*, or *purchase*. Type ` + "`/help`" + ` for commands.`

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 4
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
			if r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(msg.Width-4),
			); err == nil {
				m.renderer = r
			}
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.textinput.Width = msg.Width - 4
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	case reloadMsg:
		m.status = "list reloaded from disk"
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.saveTranscript()
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleInput(strings.TrimSpace(m.textinput.Value()))
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var tiCmd, vpCmd tea.Cmd
	m.textinput, tiCmd = m.textinput.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

// handleInput routes one line of user input: slash commands to the command
// handler, everything else through the keyword dispatcher.
func (m Model) handleInput(input string) (tea.Model, tea.Cmd) {
	if input == "" {
		return m, nil
	}
	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	m.history = append(m.history, Message{Role: "user", Content: input, Time: time.Now()})
	resp := m.bot.Reply(input)
	m.history = append(m.history, Message{Role: "assistant", Content: resp.Reply, Time: time.Now()})
	if resp.Refresh {
		m.status = summarizeList(m.assistant.Items())
	}

	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
	m.textinput.Reset()
	m.saveTranscript()
	return m, nil
}

func summarizeList(items []grocery.Item) string {
	if len(items) == 0 {
		return "list is empty"
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return "on the list: " + strings.Join(names, ", ")
}

// Run launches the interactive chat interface and blocks until exit. When
// the JSON driver is active it also starts a data-file watcher so edits made
// outside the TUI show up without restarting.
func Run(assistant *grocery.Assistant, cfg *config.Config, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}

	p := tea.NewProgram(NewModel(assistant, cfg.DataDir, log), tea.WithAltScreen())

	if cfg.Store.Driver == config.DriverJSON {
		js, err := store.NewJSONStore(cfg.DataDir, log)
		if err != nil {
			return err
		}
		paths := []string{js.ListPath(), js.HistoryPath(), js.CatalogPath()}
		watcher, err := grocery.NewWatcher(assistant, log, paths, func() {
			p.Send(reloadMsg{})
		})
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	_, err := p.Run()
	return err
}
