package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/serenestudio/serenechat/pkg/widget"
)

// Widget events arrive on a channel and are re-emitted as tea messages,
// one per waitForEvent command.

type stateChangedMsg struct{ from, to widget.State }
type turnAppendedMsg struct{ msg widget.Message }
type quickRepliesMsg struct{ replies []string }
type typingMsg struct{ active bool }
type leadFormMsg struct{ open bool }
type widgetErrMsg struct{ err error }
type submitResultMsg struct{ err error }

// forwarder bridges widget.Handler callbacks into the tea event loop.
type forwarder struct {
	ch chan tea.Msg
}

func newForwarder() *forwarder {
	// Buffered: a single exchange publishes a handful of events before
	// the model gets a chance to drain them.
	return &forwarder{ch: make(chan tea.Msg, 64)}
}

func (f *forwarder) OnStateChange(from, to widget.State) { f.ch <- stateChangedMsg{from, to} }
func (f *forwarder) OnMessage(msg widget.Message)        { f.ch <- turnAppendedMsg{msg} }
func (f *forwarder) OnQuickReplies(replies []string)     { f.ch <- quickRepliesMsg{replies} }
func (f *forwarder) OnTyping(active bool)                { f.ch <- typingMsg{active} }
func (f *forwarder) OnLeadForm(open bool)                { f.ch <- leadFormMsg{open} }
func (f *forwarder) OnError(err error)                   { f.ch <- widgetErrMsg{err} }

func waitForEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
