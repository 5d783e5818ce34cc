// Package chatui is the interactive chat surface: a bubbletea program
// with a scrollback viewport, an input line, and a spinner while the
// bot reply is in flight. Bot replies are markdown-rendered.
package chatui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/feelfree/ff/internal/api"
	"github.com/feelfree/ff/internal/models"
	"github.com/feelfree/ff/internal/output"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("63")).
			Padding(0, 1)
	botLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type replyMsg struct {
	text string
	err  error
}

// Model is the bubbletea model for one chat session
type Model struct {
	client    *api.Client
	sessionID string

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	messages []models.ChatMessage
	waiting  bool
	width    int
	ready    bool
	quitting bool
}

// New creates a chat model for an existing session, pre-seeded with
// its history (possibly empty).
func New(client *api.Client, sessionID string, history []models.ChatMessage) Model {
	ti := textinput.New()
	ti.Placeholder = "Say something..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		client:    client,
		sessionID: sessionID,
		input:     ti,
		spin:      sp,
		messages:  history,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.messages = append(m.messages, models.ChatMessage{Sender: "user", Text: text})
			m.input.Reset()
			m.waiting = true
			m.refreshViewport()
			return m, tea.Batch(m.spin.Tick, m.sendCmd(text))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		inputHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.refreshViewport()
		return m, nil

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages, models.ChatMessage{
				Sender: "bot",
				Text:   "⚠ " + msg.err.Error(),
			})
		} else {
			m.messages = append(m.messages, models.ChatMessage{Sender: "bot", Text: msg.text})
		}
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	status := helpStyle.Render("enter to send · esc to leave")
	if m.waiting {
		status = m.spin.View() + " thinking..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), m.input.View(), status)
}

// Messages returns the transcript accumulated so far
func (m Model) Messages() []models.ChatMessage {
	return m.messages
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderTranscript(m.messages, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) sendCmd(text string) tea.Cmd {
	client, session := m.client, m.sessionID
	return func() tea.Msg {
		reply, err := client.SendMessage(session, text)
		return replyMsg{text: reply, err: err}
	}
}

// renderTranscript formats the message history for the viewport:
// user messages as right-aligned bubbles, bot replies as markdown.
func renderTranscript(messages []models.ChatMessage, width int) string {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	for _, msg := range messages {
		if msg.Sender == "user" {
			bubble := userStyle.Render(msg.Text)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble))
			b.WriteString("\n")
			continue
		}
		b.WriteString(botLabelStyle.Render("bot"))
		b.WriteString("\n")
		rendered, err := output.RenderMarkdownWithWidth(msg.Text, width)
		if err != nil || rendered == "" {
			b.WriteString(msg.Text)
		} else {
			b.WriteString(rendered)
		}
		b.WriteString("\n")
	}
	return b.String()
}
