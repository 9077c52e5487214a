// Package backend implements the JSON client for the chat backend service.
//
// The widget talks to three endpoints: GET /greeting, POST /chat and
// POST /register, plus GET /health for reachability checks. There is no
// retry policy: every transport, status or decode failure is returned to
// the caller as a single error.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/serenestudio/serenechat/pkg/lead"
)

// Client calls the chat backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a backend client for the given base URL. A nil httpClient
// falls back to a default client without a timeout; a hung request is
// only interrupted by the caller's context.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     log.With().Str("component", "backend").Logger(),
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Greeting fetches the initial greeting for a session.
func (c *Client) Greeting(ctx context.Context, sessionID string) (*ChatReply, error) {
	query := url.Values{}
	if sessionID != "" {
		query.Set("session_id", sessionID)
	}

	var reply ChatReply
	if err := c.get(ctx, "/greeting", query, &reply); err != nil {
		return nil, fmt.Errorf("greeting request failed: %w", err)
	}

	c.logger.Debug().Str("session_id", reply.SessionID).Msg("Greeting received")
	return &reply, nil
}

// Chat sends a user message and returns the bot reply.
func (c *Client) Chat(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	req := chatRequest{
		SessionID: sessionID,
		Message:   message,
	}

	var reply ChatReply
	if err := c.post(ctx, "/chat", req, &reply); err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}

	c.logger.Debug().
		Str("session_id", reply.SessionID).
		Str("action", string(reply.Action)).
		Int("quick_replies", len(reply.QuickReplies)).
		Msg("Chat reply received")

	return &reply, nil
}

// Register submits a lead record. Validation happens before this call;
// the client sends whatever it is given.
func (c *Client) Register(ctx context.Context, l lead.Lead) (*LeadResult, error) {
	var result LeadResult
	if err := c.post(ctx, "/register", l, &result); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}

	c.logger.Info().
		Bool("success", result.Success).
		Str("lead_id", result.LeadID).
		Msg("Lead registered")

	return &result, nil
}

// Health checks backend reachability.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.get(ctx, "/health", nil, &status); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &status, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("backend error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
