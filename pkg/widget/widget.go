// Package widget implements the chat widget core: the Closed/Open state
// machine, the conversation transcript, quick replies and the lead form
// flow. It owns no rendering; frontends subscribe to events and call the
// operations below.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/serenestudio/serenechat/pkg/backend"
	"github.com/serenestudio/serenechat/pkg/lead"
	"github.com/serenestudio/serenechat/pkg/session"
)

// FallbackMessage is shown in place of a bot reply when a request fails.
const FallbackMessage = "Sorry, I'm having trouble connecting right now. Please try again in a moment."

// TryAgainReply is the quick reply offered after a transport failure.
// Selecting it re-issues the failed exchange; nothing retries on its own.
const TryAgainReply = "Try Again"

// ErrRegistrationFailed is returned when the backend rejects a lead.
var ErrRegistrationFailed = errors.New("registration rejected by backend")

// State is the widget UI state.
type State int

const (
	// StateClosed is the initial state: only the launcher is visible.
	StateClosed State = iota
	// StateOpen shows the chat panel.
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

// Role identifies the author of a transcript turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is a single transcript turn. The transcript is append-only,
// in-memory only, and ordered by send order.
type Message struct {
	ID      string    `json:"id"`
	Role    Role      `json:"role"`
	Content string    `json:"content"`
	Time    time.Time `json:"time"`
}

// Backend is the slice of the wire client the widget needs. *backend.Client
// satisfies it.
type Backend interface {
	Greeting(ctx context.Context, sessionID string) (*backend.ChatReply, error)
	Chat(ctx context.Context, sessionID, message string) (*backend.ChatReply, error)
	Register(ctx context.Context, l lead.Lead) (*backend.LeadResult, error)
}

// Widget is a single chat widget instance. Each embedding owns its own
// instance; there is no process-wide singleton.
type Widget struct {
	backend  Backend
	sessions *session.Store
	logger   zerolog.Logger

	mu           sync.Mutex
	state        State
	transcript   []Message
	quickReplies []string
	leadFormOpen bool
	inFlight     bool
	lastInput    string
	retryPending bool
	handlers     []Handler
}

// New creates a widget in the Closed state.
func New(b Backend, sessions *session.Store) *Widget {
	return &Widget{
		backend:  b,
		sessions: sessions,
		logger:   log.With().Str("component", "widget").Logger(),
	}
}

// Subscribe registers an event handler. Handlers are invoked in
// registration order, outside the widget's internal lock.
func (w *Widget) Subscribe(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Open transitions Closed -> Open. The first open fetches the greeting;
// reopening an existing conversation has no network effect.
func (w *Widget) Open(ctx context.Context) error {
	w.mu.Lock()
	if w.state == StateOpen {
		w.mu.Unlock()
		return nil
	}
	w.state = StateOpen
	fetch := len(w.transcript) == 0 && !w.inFlight
	if fetch {
		w.inFlight = true
	}
	w.mu.Unlock()

	w.publish(func(h Handler) { h.OnStateChange(StateClosed, StateOpen) })

	if !fetch {
		return nil
	}
	return w.exchange(ctx, "")
}

// Close transitions Open -> Closed. Pure UI transition: the transcript,
// session and any in-flight request are untouched.
func (w *Widget) Close() {
	w.mu.Lock()
	if w.state == StateClosed {
		w.mu.Unlock()
		return
	}
	w.state = StateClosed
	w.mu.Unlock()

	w.publish(func(h Handler) { h.OnStateChange(StateOpen, StateClosed) })
}

// SendMessage sends a user turn to the backend. Empty or whitespace-only
// input is a no-op, as is any call made while another request is
// outstanding: at most one chat request is in flight at a time.
func (w *Widget) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	w.mu.Lock()
	if w.inFlight {
		w.mu.Unlock()
		w.logger.Debug().Msg("Send ignored, request already in flight")
		return nil
	}
	w.inFlight = true
	w.mu.Unlock()

	w.appendMessage(RoleUser, text)
	return w.exchange(ctx, text)
}

// SelectQuickReply consumes a quick reply: the set is removed and the
// reply text is sent as if the user had typed it. After a transport
// failure, TryAgainReply re-issues the failed exchange instead.
func (w *Widget) SelectQuickReply(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	w.mu.Lock()
	if w.inFlight || len(w.quickReplies) == 0 {
		w.mu.Unlock()
		return nil
	}
	retry := w.retryPending && text == TryAgainReply
	lastInput := w.lastInput
	w.quickReplies = nil
	if retry {
		w.inFlight = true
	}
	w.mu.Unlock()

	w.publish(func(h Handler) { h.OnQuickReplies(nil) })

	if retry {
		return w.exchange(ctx, lastInput)
	}
	return w.SendMessage(ctx, text)
}

// SubmitLead validates and submits the lead form. Validation failures
// are returned synchronously without any network call. On success the
// form closes and a thank-you turn referencing the submitted name is
// appended; on failure the form stays open for resubmission.
func (w *Widget) SubmitLead(ctx context.Context, l lead.Lead) error {
	l.Normalize()
	if err := l.Validate(); err != nil {
		return err
	}

	w.mu.Lock()
	if !w.leadFormOpen {
		w.mu.Unlock()
		return fmt.Errorf("lead form is not open")
	}
	if w.inFlight {
		w.mu.Unlock()
		return nil
	}
	w.inFlight = true
	w.mu.Unlock()

	if sid, err := w.sessions.Current(); err == nil {
		l.SessionID = sid
	} else {
		w.logger.Warn().Err(err).Msg("Session unavailable, submitting lead without id")
	}

	w.setTyping(true)
	result, err := w.backend.Register(ctx, l)
	w.setTyping(false)

	w.mu.Lock()
	w.inFlight = false
	w.mu.Unlock()

	if err != nil {
		w.logger.Error().Err(err).Msg("Lead registration failed")
		w.publish(func(h Handler) { h.OnError(err) })
		return err
	}
	if !result.Success {
		err := fmt.Errorf("%w: %s", ErrRegistrationFailed, result.Message)
		w.publish(func(h Handler) { h.OnError(err) })
		return err
	}

	w.logger.Info().Str("lead_id", result.LeadID).Str("message", result.Message).Msg("Lead accepted")

	w.setLeadForm(false)
	w.appendMessage(RoleBot, fmt.Sprintf(
		"Thank you, %s! Our design expert will contact you shortly to discuss your project.", l.Name))

	return nil
}

// State returns the current UI state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Busy reports whether a backend request is outstanding.
func (w *Widget) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight
}

// Transcript returns a copy of the conversation so far.
func (w *Widget) Transcript() []Message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Message, len(w.transcript))
	copy(out, w.transcript)
	return out
}

// QuickReplies returns a copy of the current quick-reply set.
func (w *Widget) QuickReplies() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.quickReplies) == 0 {
		return nil
	}
	out := make([]string, len(w.quickReplies))
	copy(out, w.quickReplies)
	return out
}

// LeadFormOpen reports whether the lead form is showing.
func (w *Widget) LeadFormOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.leadFormOpen
}

// exchange performs one greeting or chat round trip. The caller must
// already hold the in-flight slot. An empty input fetches the greeting.
func (w *Widget) exchange(ctx context.Context, input string) error {
	w.mu.Lock()
	w.lastInput = input
	clearReplies := len(w.quickReplies) > 0
	w.quickReplies = nil
	w.mu.Unlock()

	if clearReplies {
		w.publish(func(h Handler) { h.OnQuickReplies(nil) })
	}

	sid, err := w.sessions.Current()
	if err != nil {
		// The server creates a session when none is supplied.
		w.logger.Warn().Err(err).Msg("Session unavailable, requesting without id")
		sid = ""
	}

	w.setTyping(true)
	var reply *backend.ChatReply
	var callErr error
	if input == "" {
		reply, callErr = w.backend.Greeting(ctx, sid)
	} else {
		reply, callErr = w.backend.Chat(ctx, sid, input)
	}
	w.setTyping(false)

	if callErr != nil {
		w.mu.Lock()
		w.inFlight = false
		w.retryPending = true
		w.mu.Unlock()

		w.logger.Error().Err(callErr).Msg("Backend request failed")
		w.publish(func(h Handler) { h.OnError(callErr) })
		w.appendMessage(RoleBot, FallbackMessage)
		w.setQuickReplies([]string{TryAgainReply})
		return callErr
	}

	if reply.SessionID != "" && reply.SessionID != sid {
		if err := w.sessions.Rotate(reply.SessionID); err != nil {
			w.logger.Warn().Err(err).Msg("Failed to rotate session id")
		}
	}

	w.mu.Lock()
	w.inFlight = false
	w.retryPending = false
	w.mu.Unlock()

	w.appendMessage(RoleBot, reply.Response)

	if reply.Action == backend.ActionCollectLead {
		// The form takes the place of quick replies.
		w.setLeadForm(true)
	} else {
		w.setQuickReplies(reply.QuickReplies)
	}
	return nil
}

func (w *Widget) appendMessage(role Role, content string) {
	id, _ := gonanoid.New()
	msg := Message{ID: id, Role: role, Content: content, Time: time.Now()}

	w.mu.Lock()
	w.transcript = append(w.transcript, msg)
	w.mu.Unlock()

	w.publish(func(h Handler) { h.OnMessage(msg) })
}

func (w *Widget) setQuickReplies(replies []string) {
	w.mu.Lock()
	if len(replies) == 0 && len(w.quickReplies) == 0 {
		w.mu.Unlock()
		return
	}
	w.quickReplies = replies
	w.mu.Unlock()

	w.publish(func(h Handler) { h.OnQuickReplies(replies) })
}

func (w *Widget) setLeadForm(open bool) {
	w.mu.Lock()
	if w.leadFormOpen == open {
		w.mu.Unlock()
		return
	}
	w.leadFormOpen = open
	w.mu.Unlock()

	w.publish(func(h Handler) { h.OnLeadForm(open) })
}

func (w *Widget) setTyping(active bool) {
	w.publish(func(h Handler) { h.OnTyping(active) })
}

// publish invokes fn for every handler outside the widget lock, so
// handlers may call back into the widget.
func (w *Widget) publish(fn func(Handler)) {
	w.mu.Lock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		fn(h)
	}
}
