// Package chat is the interactive assistant window.
package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mana2/mana-cli/internal/chat"
	"github.com/mana2/mana-cli/internal/constants"
	"github.com/mana2/mana-cli/internal/models"
)

// Assistant is what the window needs from chat.Assistant.
type Assistant interface {
	State(ctx context.Context) (models.ChatState, error)
	Send(ctx context.Context, text string) (models.ChatMessage, error)
	SetWindow(ctx context.Context, open, minimized bool) error
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(0, 1)

	botStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	stampStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	errStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type stateMsg struct {
	state models.ChatState
	err   error
}

type replyMsg struct {
	err error
}

type Model struct {
	assistant Assistant
	loc       *time.Location

	state     models.ChatState
	input     textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	help      help.Model
	keys      keyMap
	waiting   bool
	minimized bool
	err       error
	suggest   int
	width     int
	height    int
}

func New(a Assistant, loc *time.Location) Model {
	if loc == nil {
		loc = time.Local
	}
	in := textinput.New()
	in.Placeholder = "Escribe tu pregunta..."
	in.CharLimit = 500
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		assistant: a,
		loc:       loc,
		input:     in,
		spinner:   sp,
		help:      help.New(),
		keys:      defaultKeys(),
		viewport:  viewport.New(80, 20),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadState())
}

func (m Model) loadState() tea.Cmd {
	return func() tea.Msg {
		st, err := m.assistant.State(context.Background())
		return stateMsg{state: st, err: err}
	}
}

func (m Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.assistant.Send(context.Background(), text)
		return replyMsg{err: err}
	}
}

func (m Model) setWindow() tea.Cmd {
	open, minimized := true, m.minimized
	return func() tea.Msg {
		_ = m.assistant.SetWindow(context.Background(), open, minimized)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-6, 3)
		m.refresh()
		return m, nil

	case stateMsg:
		m.err = msg.err
		m.state = msg.state
		m.minimized = msg.state.IsMinimized
		m.refresh()
		return m, nil

	case replyMsg:
		m.waiting = false
		m.err = msg.err
		m.suggest = 0
		return m, m.loadState()

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Minimize):
			m.minimized = !m.minimized
			return m, m.setWindow()
		case m.minimized:
			return m, nil
		case key.Matches(msg, m.keys.Send):
			text := strings.TrimSpace(m.input.Value())
			if text == "" || m.waiting {
				return m, nil
			}
			m.input.Reset()
			m.waiting = true
			m.err = nil
			m.state.Messages = append(m.state.Messages, models.ChatMessage{Text: text, Timestamp: time.Now()})
			m.refresh()
			return m, tea.Batch(m.send(text), m.spinner.Tick)
		case key.Matches(msg, m.keys.Suggest):
			if s := m.suggestions(); len(s) > 0 {
				m.input.SetValue(s[m.suggest%len(s)])
				m.input.CursorEnd()
				m.suggest++
			}
			return m, nil
		case key.Matches(msg, m.keys.Up, m.keys.Down):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// suggestions offers the last bot message's suggestions, or the quick
// actions when it has none.
func (m Model) suggestions() []string {
	for i := len(m.state.Messages) - 1; i >= 0; i-- {
		if msg := m.state.Messages[i]; msg.IsBot {
			if len(msg.Suggestions) > 0 {
				return msg.Suggestions
			}
			break
		}
	}
	return chat.QuickActions()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

func (m Model) renderMessages() string {
	width := m.viewport.Width - 4
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	for _, msg := range m.state.Messages {
		stamp := stampStyle.Render(msg.Timestamp.In(m.loc).Format("15:04"))
		if msg.IsBot {
			b.WriteString(botStyle.Width(width).Render(chat.RenderMarkdown(msg.Text)))
			b.WriteString("\n" + stamp + "\n")
			if len(msg.Suggestions) > 0 {
				b.WriteString(suggestionStyle.Render("→ "+strings.Join(msg.Suggestions, " · ")) + "\n")
			}
		} else {
			b.WriteString(lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, userStyle.Render(msg.Text)))
			b.WriteString("\n" + lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, stamp) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) View() string {
	title := titleStyle.Render(constants.ChatAssistantName)
	if m.minimized {
		return lipgloss.JoinVertical(lipgloss.Left,
			title+stampStyle.Render(" (minimizado)"),
			m.help.View(m.keys),
		)
	}

	status := ""
	switch {
	case m.waiting:
		status = m.spinner.View() + " Escribiendo..."
	case m.err != nil:
		status = errStyle.Render(m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.viewport.View(),
		status,
		m.input.View(),
		m.help.View(m.keys),
	)
}
