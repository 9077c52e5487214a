// Package tui renders the chat widget in a terminal. It is one embedding
// of pkg/widget; the widget core knows nothing about it.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	bspinner "github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/serenestudio/serenechat/pkg/widget"
)

const chromeHeight = 8 // header, input, quick replies, hints

// Model is the bubbletea model wrapping a widget instance.
type Model struct {
	widget *widget.Widget
	events chan tea.Msg

	viewport viewport.Model
	input    textinput.Model
	spinner  bspinner.Model

	width, height int
	open          bool
	typing        bool
	replies       []string
	content       string
	status        string

	form  *huh.Form
	draft *leadDraft

	quitting bool
}

// NewModel creates the TUI model and subscribes it to the widget's events.
func NewModel(w *widget.Widget) *Model {
	fwd := newForwarder()
	w.Subscribe(fwd)

	input := textinput.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 2000
	input.Focus()

	sp := bspinner.New()
	sp.Spinner = bspinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	vp := viewport.New(80, 16)

	return &Model{
		widget:   w,
		events:   fwd.ch,
		viewport: vp,
		input:    input,
		spinner:  sp,
	}
}

// Run starts the terminal program and blocks until it exits.
func Run(w *widget.Widget) error {
	p := tea.NewProgram(NewModel(w), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui failed: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch ev := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = ev.Width
		m.height = ev.Height
		m.viewport.Width = ev.Width
		if h := ev.Height - chromeHeight; h > 2 {
			m.viewport.Height = h
		}
		m.viewport.SetContent(m.content)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(ev)

	case stateChangedMsg:
		m.open = ev.to == widget.StateOpen
		return m, waitForEvent(m.events)

	case turnAppendedMsg:
		m.appendTurn(ev.msg)
		return m, waitForEvent(m.events)

	case quickRepliesMsg:
		m.replies = ev.replies
		return m, waitForEvent(m.events)

	case typingMsg:
		m.typing = ev.active
		if m.typing {
			return m, tea.Batch(m.spinner.Tick, waitForEvent(m.events))
		}
		return m, waitForEvent(m.events)

	case leadFormMsg:
		var cmd tea.Cmd
		if ev.open {
			if m.draft == nil {
				m.draft = &leadDraft{}
			}
			m.form = newLeadForm(m.draft)
			cmd = m.form.Init()
		} else {
			m.form = nil
			m.draft = nil
		}
		return m, tea.Batch(cmd, waitForEvent(m.events))

	case widgetErrMsg:
		m.status = ev.err.Error()
		return m, waitForEvent(m.events)

	case submitResultMsg:
		if ev.err != nil && m.widget.LeadFormOpen() {
			// Re-enable the form for resubmission, values preserved.
			m.status = ev.err.Error()
			m.form = newLeadForm(m.draft)
			return m, m.form.Init()
		}
		return m, nil
	}

	var cmds []tea.Cmd

	if m.form != nil {
		fm, cmd := m.form.Update(msg)
		if f, ok := fm.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)
		if m.form.State == huh.StateCompleted {
			// Drop the form view while the submit is in flight; it is
			// rebuilt from the draft if the backend rejects it.
			m.form = nil
			cmds = append(cmds, m.submitLead())
		}
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.open {
		switch key.String() {
		case "enter", "o", " ":
			return m, m.openWidget()
		case "q":
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.form != nil {
		if key.Type == tea.KeyEsc {
			return m, m.closeWidget()
		}
		fm, cmd := m.form.Update(tea.Msg(key))
		if f, ok := fm.(*huh.Form); ok {
			m.form = f
		}
		if m.form.State == huh.StateCompleted {
			m.form = nil
			return m, tea.Batch(cmd, m.submitLead())
		}
		return m, cmd
	}

	switch key.Type {
	case tea.KeyEsc:
		return m, m.closeWidget()
	case tea.KeyEnter:
		text := m.input.Value()
		if strings.TrimSpace(text) == "" || m.typing {
			return m, nil
		}
		m.input.Reset()
		m.status = ""
		return m, m.sendMessage(text)
	}

	// Input is disabled while a request is outstanding.
	if m.typing {
		return m, nil
	}

	// Bare digit with an empty input selects a quick reply.
	if m.input.Value() == "" && len(m.replies) > 0 {
		if n, err := strconv.Atoi(key.String()); err == nil && n >= 1 && n <= len(m.replies) {
			reply := m.replies[n-1]
			m.status = ""
			return m, m.selectReply(reply)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(key)
	return m, cmd
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.open {
		launcher := launcherStyle.Render("Chat with Serene Design Studio")
		hint := hintStyle.Render("enter: open chat  -  q: quit")
		return "\n" + launcher + "\n\n" + hint + "\n"
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render("Serene Design Studio"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.form != nil {
		b.WriteString(m.form.View())
	} else {
		if len(m.replies) > 0 && !m.typing {
			for i, reply := range m.replies {
				b.WriteString(replyStyle.Render(fmt.Sprintf("[%d] %s", i+1, reply)))
				b.WriteString("  ")
			}
			b.WriteString("\n")
		}
		if m.typing {
			b.WriteString(m.spinner.View())
			b.WriteString(hintStyle.Render(" typing..."))
		} else {
			b.WriteString(m.input.View())
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("esc: minimize  -  ctrl+c: quit"))

	return b.String()
}

func (m *Model) appendTurn(msg widget.Message) {
	var line string
	switch msg.Role {
	case widget.RoleUser:
		line = userStyle.Render("You: ") + msg.Content
	default:
		line = botStyle.Render("Serene: ") + msg.Content
	}

	if m.content != "" {
		m.content += "\n"
	}
	m.content += line
	m.viewport.SetContent(m.content)
	m.viewport.GotoBottom()
}

func (m *Model) openWidget() tea.Cmd {
	return func() tea.Msg {
		// Failures surface through widget events as the fallback turn.
		_ = m.widget.Open(context.Background())
		return nil
	}
}

func (m *Model) closeWidget() tea.Cmd {
	return func() tea.Msg {
		m.widget.Close()
		return nil
	}
}

func (m *Model) sendMessage(text string) tea.Cmd {
	return func() tea.Msg {
		_ = m.widget.SendMessage(context.Background(), text)
		return nil
	}
}

func (m *Model) selectReply(text string) tea.Cmd {
	return func() tea.Msg {
		_ = m.widget.SelectQuickReply(context.Background(), text)
		return nil
	}
}

func (m *Model) submitLead() tea.Cmd {
	l := m.draft.lead()
	return func() tea.Msg {
		return submitResultMsg{err: m.widget.SubmitLead(context.Background(), l)}
	}
}
