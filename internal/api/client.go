// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the portfolio chat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/folio-tui/internal/model"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeUnreachable
	ErrTypeTimeout
	ErrTypeStatus
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrUnreachable = &ClientError{Type: ErrTypeUnreachable, Message: "failed to communicate with backend service"}
	ErrTimeout     = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsUnreachable checks if an error indicates the backend is unreachable.
func IsUnreachable(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeUnreachable
	}
	return errors.Is(err, ErrUnreachable)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://localhost:3501)
	BaseURL string

	// Timeout for regular requests (default: 10s)
	Timeout time.Duration

	// HealthTimeout for the liveness probe (default: 5s)
	HealthTimeout time.Duration

	// DefaultLogLimit caps log fetches when no limit is given (default: 100)
	DefaultLogLimit int
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://localhost:3501",
		Timeout:         10 * time.Second,
		HealthTimeout:   5 * time.Second,
		DefaultLogLimit: 100,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the portfolio backend. It owns the
// session identifier: every call is scoped to the currently active id, and
// the id only ever changes through ClearChat or ResetSession.
//
// The Client performs no retries at any layer; a failed call is reported
// once and retrying is the caller's (in practice: the user's) decision.
//
// The Client is safe for concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	mu        sync.Mutex
	sessionID string
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:3501"
	}
	if config.Timeout == 0 {
		config.Timeout = 10 * time.Second
	}
	if config.HealthTimeout == 0 {
		config.HealthTimeout = 5 * time.Second
	}
	if config.DefaultLogLimit == 0 {
		config.DefaultLogLimit = 100
	}

	return &Client{
		config:    config,
		sessionID: generateSessionID(),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// generateSessionID creates an opaque session identifier. The unix-millis
// prefix keeps ids sortable in the backend's log views.
func generateSessionID() string {
	entropy := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), entropy)
}

// SessionID returns the currently active session identifier.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// ResetSession regenerates the session identifier without contacting the
// backend. The old identifier is orphaned, not destroyed remotely.
func (c *Client) ResetSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessionID = generateSessionID()
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// CHAT
// =============================================================================

// Chat sends a message with at most the trailing context window and returns
// the decoded reply. Context must be captured before the outgoing message
// is appended to the transcript.
func (c *Client) Chat(ctx context.Context, message string, recentContext []model.Message) (*ChatReply, error) {
	if len(recentContext) > model.ContextWindow {
		recentContext = recentContext[len(recentContext)-model.ContextWindow:]
	}

	reqBody := ChatRequest{
		Message:   message,
		SessionID: c.SessionID(),
		Context:   toWire(recentContext),
	}

	var reply ChatReply
	if err := c.postJSON(ctx, "/chat", reqBody, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// =============================================================================
// CHAT LOGS
// =============================================================================

// GetChatLogs fetches a bounded set of backend log records, most recent
// first as ordered by the backend. sessionID filters to one session when
// non-empty; limit <= 0 applies the default cap.
func (c *Client) GetChatLogs(ctx context.Context, sessionID string, limit int) (*ChatLogs, error) {
	if limit <= 0 {
		limit = c.config.DefaultLogLimit
	}

	params := url.Values{}
	if sessionID != "" {
		params.Set("session_id", sessionID)
	}
	if limit != c.config.DefaultLogLimit {
		params.Set("limit", strconv.Itoa(limit))
	}
	path := "/chat/logs"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var wire wireLogsResponse
	if err := c.getJSON(ctx, path, &wire); err != nil {
		return nil, err
	}

	logs := make([]DetailedChatLog, len(wire.Logs))
	for i, w := range wire.Logs {
		logs[i] = w.decode()
	}
	return &ChatLogs{Logs: logs, TotalCount: wire.TotalCount, SessionID: wire.SessionID}, nil
}

// ClearChatLogs deletes all backend logs, or only those for sessionID when
// non-empty.
func (c *Client) ClearChatLogs(ctx context.Context, sessionID string) error {
	path := "/chat/logs"
	if sessionID != "" {
		path += "?session_id=" + url.QueryEscape(sessionID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("failed to clear chat logs", resp.StatusCode)
	}
	return nil
}

// GetChatAnalytics fetches the read-only usage aggregate for the trailing
// number of days (default 30 when days <= 0).
func (c *Client) GetChatAnalytics(ctx context.Context, days int) (*ChatAnalytics, error) {
	if days <= 0 {
		days = 30
	}

	var analytics ChatAnalytics
	if err := c.getJSON(ctx, "/chat/analytics?days="+strconv.Itoa(days), &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// GetChatHistory fetches the backend-held message history for the current
// session.
func (c *Client) GetChatHistory(ctx context.Context) ([]WireMessage, error) {
	var wire wireHistoryResponse
	if err := c.getJSON(ctx, "/chat/history/"+url.PathEscape(c.SessionID()), &wire); err != nil {
		return nil, err
	}
	return wire.Messages, nil
}

// ClearChat discards the backend's history for the current session, then
// regenerates the session identifier. The remote clear is attempted first
// because it is scoped to the old identifier; on failure the identifier is
// left unchanged so the user can retry against the same session.
func (c *Client) ClearChat(ctx context.Context) error {
	path := "/chat/clear/" + url.PathEscape(c.SessionID())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("failed to clear chat", resp.StatusCode)
	}

	c.ResetSession()
	return nil
}

// =============================================================================
// TOOLS
// =============================================================================

// GetAvailableTools lists the backend's answer-pipeline tools.
func (c *Client) GetAvailableTools(ctx context.Context) ([]ToolInfo, error) {
	var wire wireToolsResponse
	if err := c.getJSON(ctx, "/tools", &wire); err != nil {
		return nil, err
	}
	return wire.Tools, nil
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// HealthCheck probes GET /health and reports liveness as a bare boolean.
// All errors collapse to false; connectivity loss is a state, not an error.
func (c *Client) HealthCheck(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, c.config.HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.config.BaseURL+"/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

// getJSON issues a GET and decodes a 2xx JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError("request failed", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// postJSON issues a POST with a JSON body and decodes a 2xx JSON body into out.
func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Surface a backend-provided detail message when present
		var backendErr struct {
			Detail string `json:"detail"`
			Error  string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&backendErr); err == nil {
			if backendErr.Detail != "" {
				return &ClientError{Type: ErrTypeStatus, Message: backendErr.Detail}
			}
			if backendErr.Error != "" {
				return &ClientError{Type: ErrTypeStatus, Message: backendErr.Error}
			}
		}
		return statusError("chat request failed", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// mapTransportError converts transport failures to the client taxonomy.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	urlErr := &url.Error{}
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return ErrTimeout
	}
	return &ClientError{Type: ErrTypeUnreachable, Message: ErrUnreachable.Message, Cause: err}
}

// statusError builds a non-2xx status error.
func statusError(msg string, code int) error {
	return &ClientError{
		Type:    ErrTypeStatus,
		Message: fmt.Sprintf("%s: HTTP %d %s", msg, code, http.StatusText(code)),
	}
}
