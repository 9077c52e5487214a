package widget

// Handler receives widget events. Embedders register handlers explicitly
// with Subscribe; there is no module-level wiring.
type Handler interface {
	// OnStateChange fires on every Closed/Open transition.
	OnStateChange(from, to State)
	// OnMessage fires for every transcript turn, user and bot alike.
	OnMessage(msg Message)
	// OnQuickReplies fires when the quick-reply set changes; nil means
	// the set was cleared.
	OnQuickReplies(replies []string)
	// OnTyping fires when a backend request starts (true) and when it
	// completes or fails (false).
	OnTyping(active bool)
	// OnLeadForm fires when the lead form opens or closes.
	OnLeadForm(open bool)
	// OnError fires on transport failures. Validation failures are
	// returned synchronously and never reach handlers.
	OnError(err error)
}

// NopHandler implements Handler with no-ops, for embedding when only a
// subset of events matters.
type NopHandler struct{}

func (NopHandler) OnStateChange(from, to State)    {}
func (NopHandler) OnMessage(msg Message)           {}
func (NopHandler) OnQuickReplies(replies []string) {}
func (NopHandler) OnTyping(active bool)            {}
func (NopHandler) OnLeadForm(open bool)            {}
func (NopHandler) OnError(err error)               {}
