package backend

import "time"

// Action tells the widget what to do after rendering a reply.
type Action string

const (
	// ActionNone means the reply carries no follow-up behavior.
	ActionNone Action = "none"
	// ActionCollectLead asks the widget to open the lead form.
	ActionCollectLead Action = "collect_lead"
)

// ChatReply is the response shape shared by /greeting and /chat.
type ChatReply struct {
	Response     string   `json:"response"`
	QuickReplies []string `json:"quick_replies"`
	Action       Action   `json:"action"`
	SessionID    string   `json:"session_id"`
}

// LeadResult is the response of /register.
type LeadResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"lead_id,omitempty"`
}

// HealthStatus is the response of /health.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// chatRequest is the body of POST /chat.
type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
}
