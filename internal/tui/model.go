// Package tui provides a terminal chat interface over the conversation
// router.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/college-advisor/internal/types"
)

// Advisor answers one conversation turn. It is router.Router.Handle with
// the session already bound, so the TUI stays decoupled from the router.
type Advisor func(ctx context.Context, input string) string

// statusReady is the idle footer line.
const statusReady = "Type 'quit' or press Ctrl+C to exit."

// responseMsg carries an advisor answer back into the event loop.
type responseMsg string

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	advisor  Advisor
	input    textinput.Model
	viewport viewport.Model
	turns    []types.Turn
	status   string
	ready    bool
	waiting  bool
}

// New creates a new chat model. The welcome banner is shown as the first
// bot turn.
func New(advisor Advisor, welcome string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about colleges and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		advisor:  advisor,
		input:    ti,
		viewport: vp,
		status:   statusReady,
	}
	m.turns = append(m.turns, types.Turn{Speaker: types.SpeakerBot, Text: welcome})
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-4)
		m.viewport.Height = vh
		m.viewport.SetContent(m.renderTurns())
		m.viewport.GotoBottom()
		return m, nil
	case responseMsg:
		m.waiting = false
		m.status = statusReady
		m.turns = append(m.turns, types.Turn{Speaker: types.SpeakerBot, Text: string(msg)})
		m.viewport.SetContent(m.renderTurns())
		m.viewport.GotoBottom()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			line := strings.TrimSpace(m.input.Value())
			if strings.EqualFold(line, "quit") {
				return m, tea.Quit
			}
			if line == "" || m.waiting {
				return m, nil
			}
			m.input.SetValue("")
			m.turns = append(m.turns, types.Turn{Speaker: types.SpeakerUser, Text: line})
			m.waiting = true
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderTurns())
			m.viewport.GotoBottom()
			// The advisor can block on the generative service; run it off
			// the event loop and deliver the answer as a message.
			advisor := m.advisor
			return m, func() tea.Msg {
				return responseMsg(advisor(context.Background(), line))
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("College Advisor")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTurns() string {
	var sb strings.Builder
	for i, turn := range m.turns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		label := botLabelStyle.Render(string(turn.Speaker))
		if turn.Speaker == types.SpeakerUser {
			label = userLabelStyle.Render(string(turn.Speaker))
		}
		sb.WriteString(fmt.Sprintf("%s: %s", label, turn.Text))
	}
	return sb.String()
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
