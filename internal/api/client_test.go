// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/folio-tui/internal/model"
)

// newTestClient builds a client against an httptest server.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	return client, srv
}

// =============================================================================
// SESSION IDENTITY
// =============================================================================

func TestSessionIDFormat(t *testing.T) {
	c := NewClient()
	id := c.SessionID()

	if !strings.HasPrefix(id, "session_") {
		t.Errorf("SessionID() = %q, want session_ prefix", id)
	}
	if id != c.SessionID() {
		t.Error("SessionID() must be stable between calls")
	}
}

func TestResetSessionRegenerates(t *testing.T) {
	c := NewClient()
	before := c.SessionID()

	c.ResetSession()

	if c.SessionID() == before {
		t.Error("ResetSession() must produce a different identifier")
	}
}

// =============================================================================
// CHAT
// =============================================================================

func TestChatSendsSessionAndContext(t *testing.T) {
	var got ChatRequest
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(ChatReply{Message: "hi", SessionID: got.SessionID})
	}))

	// Eight messages of context; only the trailing six may go on the wire.
	var ctx []model.Message
	for i := 0; i < 8; i++ {
		ctx = append(ctx, model.NewUserMessage("m"+string(rune('0'+i))))
	}

	reply, err := client.Chat(context.Background(), "hello", ctx)
	require.NoError(t, err)

	assert.Equal(t, "hi", reply.Message)
	assert.Equal(t, client.SessionID(), got.SessionID)
	assert.Len(t, got.Context, model.ContextWindow)
	assert.Equal(t, "m2", got.Context[0].Content)
	assert.Equal(t, "m7", got.Context[5].Content)
}

func TestChatDecodesSuggestionsAndModalActions(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"message":       "sure, take a look",
			"suggestions":   []string{"what else?", "show projects"},
			"modal_actions": []map[string]string{{"action": "open_modal", "modal_id": "contact"}},
			"session_id":    "s1",
		})
	}))

	reply, err := client.Chat(context.Background(), "contact info?", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"what else?", "show projects"}, reply.Suggestions)
	require.Len(t, reply.ModalActions, 1)
	assert.Equal(t, ActionOpenModal, reply.ModalActions[0].Action)
	assert.Equal(t, "contact", reply.ModalActions[0].ModalID)
}

func TestChatNon2xxSurfacesDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"detail": "model overloaded"})
	}))

	_, err := client.Chat(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestChatConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing is listening anymore
	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Chat(context.Background(), "hello", nil)
	require.Error(t, err)
	assert.True(t, IsUnreachable(err), "want unreachable error, got %v", err)
}

// =============================================================================
// CHAT LOGS
// =============================================================================

func TestGetChatLogsDecodesWireFields(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/logs", r.URL.Path)
		w.Write([]byte(`{
			"logs": [{
				"id": "log-1",
				"session_id": "s1",
				"user_query": "who are you?",
				"final_response": "a portfolio bot",
				"tools_used": [{"tool_name": "knowledge_search", "result": "ok", "execution_time": 0.42}],
				"suggestions": ["more?"],
				"timestamp": "2025-06-01T12:30:45Z",
				"response_time": 1.25,
				"user_ip": "203.0.113.9"
			}, {
				"id": "log-2",
				"session_id": "s2",
				"user_query": "hi",
				"final_response": "hello",
				"timestamp": "2025-06-01T12:31:00Z",
				"response_time": 0.8
			}],
			"total_count": 2,
			"session_id": ""
		}`))
	}))

	logs, err := client.GetChatLogs(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, logs.Logs, 2)

	first := logs.Logs[0]
	assert.Equal(t, "s1", first.SessionID)
	assert.Equal(t, "who are you?", first.UserQuery)
	assert.Equal(t, "a portfolio bot", first.FinalResponse)
	require.Len(t, first.ToolsUsed, 1)
	assert.Equal(t, "knowledge_search", first.ToolsUsed[0].ToolName)
	assert.InDelta(t, 0.42, first.ToolsUsed[0].ExecutionTime, 1e-9)
	assert.Equal(t, []string{"more?"}, first.Suggestions)
	assert.Equal(t, time.Date(2025, 6, 1, 12, 30, 45, 0, time.UTC), first.Timestamp)
	assert.Equal(t, "203.0.113.9", first.UserIP)

	// Absent tools_used defaults to an empty slice; absent optional lists
	// stay nil.
	second := logs.Logs[1]
	assert.NotNil(t, second.ToolsUsed)
	assert.Empty(t, second.ToolsUsed)
	assert.Nil(t, second.ModalActions)
	assert.Nil(t, second.Suggestions)
}

func TestGetChatLogsQueryParams(t *testing.T) {
	var query string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"logs": [], "total_count": 0, "session_id": "abc"}`))
	}))

	_, err := client.GetChatLogs(context.Background(), "abc", 25)
	require.NoError(t, err)
	assert.Contains(t, query, "session_id=abc")
	assert.Contains(t, query, "limit=25")

	// Default limit stays off the wire, mirroring the backend's default.
	_, err = client.GetChatLogs(context.Background(), "", 100)
	require.NoError(t, err)
	assert.Equal(t, "", query)
}

func TestClearChatLogs(t *testing.T) {
	var method, rawQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		rawQuery = r.URL.RawQuery
		w.Write([]byte(`{"status": "cleared"}`))
	}))

	require.NoError(t, client.ClearChatLogs(context.Background(), "s9"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "session_id=s9", rawQuery)
}

// =============================================================================
// CLEAR CHAT
// =============================================================================

func TestClearChatRegeneratesSessionAfterRemoteClear(t *testing.T) {
	var clearedPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clearedPath = r.URL.Path
		w.Write([]byte(`{"status": "ok"}`))
	}))

	before := client.SessionID()
	require.NoError(t, client.ClearChat(context.Background()))

	// The remote clear targets the old identifier; only then does the
	// client switch to a new one.
	assert.Equal(t, "/chat/clear/"+before, clearedPath)
	assert.NotEqual(t, before, client.SessionID())
}

func TestClearChatFailureKeepsSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	before := client.SessionID()
	err := client.ClearChat(context.Background())
	require.Error(t, err)
	assert.Equal(t, before, client.SessionID(), "failed clear must not rotate the session")
}

// =============================================================================
// ANALYTICS AND TOOLS
// =============================================================================

func TestGetChatAnalytics(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "days=7", r.URL.RawQuery)
		json.NewEncoder(w).Encode(ChatAnalytics{
			TotalQueries:   42,
			UniqueSessions: 7,
			PopularQueries: []QueryCount{{Query: "who is blake?", Count: 12}},
		})
	}))

	analytics, err := client.GetChatAnalytics(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 42, analytics.TotalQueries)
	assert.Equal(t, 7, analytics.UniqueSessions)
	require.Len(t, analytics.PopularQueries, 1)
	assert.Equal(t, 12, analytics.PopularQueries[0].Count)
}

func TestGetAvailableTools(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tools", r.URL.Path)
		w.Write([]byte(`{"tools": [{"name": "knowledge_search", "description": "search the knowledge base"}]}`))
	}))

	tools, err := client.GetAvailableTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "knowledge_search", tools[0].Name)
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

func TestHealthCheckHealthy(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	if !client.HealthCheck(context.Background()) {
		t.Error("HealthCheck() = false for 200 response")
	}
}

func TestHealthCheckSwallowsErrors(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	if client.HealthCheck(context.Background()) {
		t.Error("HealthCheck() = true for 500 response")
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	dead := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	if dead.HealthCheck(context.Background()) {
		t.Error("HealthCheck() = true for unreachable backend")
	}
}

// =============================================================================
// TIMESTAMP PARSING
// =============================================================================

func TestParseTimestampLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want bool // whether parsing should succeed
	}{
		{"2025-06-01T12:30:45Z", true},
		{"2025-06-01T12:30:45.123456", true},
		{"2025-06-01 12:30:45", true},
		{"not a timestamp", false},
	}

	for _, tt := range tests {
		got := parseTimestamp(tt.in)
		if tt.want && got.IsZero() {
			t.Errorf("parseTimestamp(%q) = zero, want parsed time", tt.in)
		}
		if !tt.want && !got.IsZero() {
			t.Errorf("parseTimestamp(%q) = %v, want zero time", tt.in, got)
		}
	}
}
