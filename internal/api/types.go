// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the portfolio chat backend.
package api

import (
	"encoding/json"
	"time"

	"github.com/jeranaias/folio-tui/internal/model"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the POST /chat request body.
type ChatRequest struct {
	Message   string        `json:"message"`
	SessionID string        `json:"session_id"`
	Context   []WireMessage `json:"context,omitempty"`
}

// WireMessage is the wire representation of a transcript message.
type WireMessage struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// toWire converts transcript messages to their wire form.
func toWire(msgs []model.Message) []WireMessage {
	if len(msgs) == 0 {
		return nil
	}
	wire := make([]WireMessage, len(msgs))
	for i, m := range msgs {
		wire[i] = WireMessage{
			ID:        m.ID,
			Role:      m.Role.String(),
			Content:   m.Content,
			Timestamp: m.Timestamp,
		}
	}
	return wire
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ChatReply is the decoded POST /chat response.
type ChatReply struct {
	Message      string        `json:"message"`
	ToolResults  []ToolResult  `json:"tool_results,omitempty"`
	ModalActions []ModalAction `json:"modal_actions,omitempty"`
	Suggestions  []string      `json:"suggestions,omitempty"`
	SessionID    string        `json:"session_id"`
}

// ModalAction is a structured backend instruction to open a named panel.
// Consumed once by the chat controller; never persisted.
type ModalAction struct {
	Action  string `json:"action"`
	ModalID string `json:"modal_id"`
}

// ActionOpenModal is the only action kind the backend currently emits.
const ActionOpenModal = "open_modal"

// ToolResult records one tool invocation from the backend's answer
// pipeline. Read-only; constructed client-side only for display.
type ToolResult struct {
	ToolName      string          `json:"tool_name"`
	Result        json.RawMessage `json:"result"`
	ExecutionTime float64         `json:"execution_time"`
}

// =============================================================================
// CHAT LOG TYPES
// =============================================================================

// DetailedChatLog is one backend-held audit record. Fetched in bulk and
// only ever bulk-replaced or bulk-cleared on the client.
type DetailedChatLog struct {
	ID            string
	SessionID     string
	UserQuery     string
	FinalResponse string
	// ToolsUsed defaults to an empty slice when absent on the wire; the
	// viewer always iterates it. ModalActions and Suggestions stay nil
	// when absent so "none recorded" is distinguishable from "empty".
	ToolsUsed    []ToolResult
	ModalActions []ModalAction
	Suggestions  []string
	Timestamp    time.Time
	ResponseTime float64
	UserIP       string
	UserAgent    string
}

// wireChatLog is the snake_case wire shape of a log record.
type wireChatLog struct {
	ID            string        `json:"id"`
	SessionID     string        `json:"session_id"`
	UserQuery     string        `json:"user_query"`
	FinalResponse string        `json:"final_response"`
	ToolsUsed     []ToolResult  `json:"tools_used"`
	ModalActions  []ModalAction `json:"modal_actions"`
	Suggestions   []string      `json:"suggestions"`
	Timestamp     string        `json:"timestamp"`
	ResponseTime  float64       `json:"response_time"`
	UserIP        string        `json:"user_ip"`
	UserAgent     string        `json:"user_agent"`
}

// decode maps the wire record to the domain record, applying the
// documented optional-field defaults.
func (w wireChatLog) decode() DetailedChatLog {
	log := DetailedChatLog{
		ID:            w.ID,
		SessionID:     w.SessionID,
		UserQuery:     w.UserQuery,
		FinalResponse: w.FinalResponse,
		ToolsUsed:     w.ToolsUsed,
		ModalActions:  w.ModalActions,
		Suggestions:   w.Suggestions,
		ResponseTime:  w.ResponseTime,
		UserIP:        w.UserIP,
		UserAgent:     w.UserAgent,
	}
	if log.ToolsUsed == nil {
		log.ToolsUsed = []ToolResult{}
	}
	log.Timestamp = parseTimestamp(w.Timestamp)
	return log
}

// parseTimestamp handles the backend's ISO-8601 timestamps, with and
// without offset. Unparseable values decode to the zero time rather than
// failing the whole fetch.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// wireLogsResponse is the GET /chat/logs response body.
type wireLogsResponse struct {
	Logs       []wireChatLog `json:"logs"`
	TotalCount int           `json:"total_count"`
	SessionID  string        `json:"session_id"`
}

// ChatLogs is the decoded GET /chat/logs response.
type ChatLogs struct {
	Logs       []DetailedChatLog
	TotalCount int
	SessionID  string
}

// =============================================================================
// ANALYTICS TYPES
// =============================================================================

// QueryCount pairs a query string with its occurrence count.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// ChatAnalytics is the GET /chat/analytics aggregate.
type ChatAnalytics struct {
	TotalQueries    int          `json:"total_queries"`
	AvgResponseTime float64      `json:"avg_response_time"`
	UniqueSessions  int          `json:"unique_sessions"`
	FirstQuery      string       `json:"first_query,omitempty"`
	LastQuery       string       `json:"last_query,omitempty"`
	PopularQueries  []QueryCount `json:"popular_queries"`
}

// =============================================================================
// TOOLS
// =============================================================================

// ToolInfo describes one backend tool from GET /tools.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// wireToolsResponse is the GET /tools response body.
type wireToolsResponse struct {
	Tools []ToolInfo `json:"tools"`
}

// wireHistoryResponse is the GET /chat/history/{id} response body.
type wireHistoryResponse struct {
	Messages  []WireMessage `json:"messages"`
	SessionID string        `json:"session_id"`
}
