// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package devserver

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/folio-tui/internal/api"
)

func startTestServer(t *testing.T) *api.Client {
	t.Helper()
	srv := NewServer(0)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: ts.URL,
		Timeout: 10 * time.Second,
	})
}

func TestChatRoundTrip(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	reply, err := client.Chat(ctx, "what are blake's skills?", nil)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if !strings.Contains(reply.Message, "**explore:skills**") {
		t.Errorf("reply = %q, want a skills navigation directive", reply.Message)
	}
	if reply.SessionID != client.SessionID() {
		t.Errorf("session echoed = %q, want %q", reply.SessionID, client.SessionID())
	}
	if len(reply.Suggestions) == 0 {
		t.Error("skills reply should carry follow-up suggestions")
	}
}

func TestChatProjectsAttachesModalAction(t *testing.T) {
	client := startTestServer(t)

	reply, err := client.Chat(context.Background(), "show me your projects", nil)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if len(reply.ModalActions) != 1 {
		t.Fatalf("modal actions = %d, want 1", len(reply.ModalActions))
	}
	if reply.ModalActions[0].Action != api.ActionOpenModal || reply.ModalActions[0].ModalID != "projects" {
		t.Errorf("modal action = %+v", reply.ModalActions[0])
	}
}

func TestChatRecordsLogsAndHistory(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if _, err := client.Chat(ctx, "who is blake?", nil); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}

	logs, err := client.GetChatLogs(ctx, "", 10)
	if err != nil {
		t.Fatalf("GetChatLogs() error = %v", err)
	}
	if logs.TotalCount != 1 || len(logs.Logs) != 1 {
		t.Fatalf("logs = %d/%d, want 1/1", len(logs.Logs), logs.TotalCount)
	}
	if logs.Logs[0].UserQuery != "who is blake?" {
		t.Errorf("query = %q", logs.Logs[0].UserQuery)
	}
	if logs.Logs[0].ToolsUsed == nil {
		t.Error("tools should decode to an empty slice")
	}

	history, err := client.GetChatHistory(ctx)
	if err != nil {
		t.Fatalf("GetChatHistory() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history turns = %d, want user+assistant", len(history))
	}
	if history[0].Role != "user" || history[1].Role != "assistant" {
		t.Errorf("roles = %s/%s", history[0].Role, history[1].Role)
	}
}

func TestClearChatDropsHistory(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if _, err := client.Chat(ctx, "hello there", nil); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	oldSession := client.SessionID()

	if err := client.ClearChat(ctx); err != nil {
		t.Fatalf("ClearChat() error = %v", err)
	}
	if client.SessionID() == oldSession {
		t.Error("clear should rotate the session id")
	}

	history, err := client.GetChatHistory(ctx)
	if err != nil {
		t.Fatalf("GetChatHistory() error = %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history = %d turns, want 0 for the fresh session", len(history))
	}
}

func TestClearLogs(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if _, err := client.Chat(ctx, "hello", nil); err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if err := client.ClearChatLogs(ctx, ""); err != nil {
		t.Fatalf("ClearChatLogs() error = %v", err)
	}

	logs, err := client.GetChatLogs(ctx, "", 10)
	if err != nil {
		t.Fatalf("GetChatLogs() error = %v", err)
	}
	if logs.TotalCount != 0 {
		t.Errorf("total = %d, want 0 after wipe", logs.TotalCount)
	}
}

func TestAnalyticsAggregates(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	for _, q := range []string{"who is blake?", "who is blake?", "projects?"} {
		if _, err := client.Chat(ctx, q, nil); err != nil {
			t.Fatalf("Chat(%q) error = %v", q, err)
		}
	}

	analytics, err := client.GetChatAnalytics(ctx, 30)
	if err != nil {
		t.Fatalf("GetChatAnalytics() error = %v", err)
	}
	if analytics.TotalQueries != 3 {
		t.Errorf("total = %d, want 3", analytics.TotalQueries)
	}
	if analytics.UniqueSessions != 1 {
		t.Errorf("sessions = %d, want 1", analytics.UniqueSessions)
	}
	if analytics.AvgResponseTime <= 0 {
		t.Error("average response time should be positive")
	}
}

func TestToolsAndHealth(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	tools, err := client.GetAvailableTools(ctx)
	if err != nil {
		t.Fatalf("GetAvailableTools() error = %v", err)
	}
	if len(tools) == 0 {
		t.Error("expected at least one tool")
	}

	if !client.HealthCheck(ctx) {
		t.Error("health probe should pass against the mock backend")
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	client := startTestServer(t)

	_, err := client.Chat(context.Background(), "   ", nil)
	if err == nil {
		t.Fatal("expected an error for a blank message")
	}
}
