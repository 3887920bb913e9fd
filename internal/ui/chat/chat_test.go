// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/devserver"
	"github.com/jeranaias/folio-tui/internal/explore"
	"github.com/jeranaias/folio-tui/internal/model"
	"github.com/jeranaias/folio-tui/internal/ui/components"
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	theme := styles.New(0, true)
	m := New(api.NewClient(), theme, 30*time.Second)
	m.SetSize(100, 30)
	return m
}

func typeInput(m Model, s string) Model {
	m.input.SetValue(s)
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	return m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
}

// =============================================================================
// SEND GUARD
// =============================================================================

func TestSubmitEmptyInputIsSilentNoop(t *testing.T) {
	m := newTestModel(t)
	m = typeInput(m, "   \t  ")

	m, cmd := pressEnter(m)

	if cmd != nil {
		t.Error("expected no command for whitespace-only input")
	}
	if m.transcript.Len() != 0 {
		t.Errorf("transcript length = %d, want 0", m.transcript.Len())
	}
	if m.banner.Visible() {
		t.Error("whitespace refusal must not show an error")
	}
}

func TestSubmitWhileSendingIsSilentNoop(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending
	m = typeInput(m, "hello")

	m, cmd := pressEnter(m)

	if cmd != nil {
		t.Error("expected no command while a send is in flight")
	}
	if m.transcript.Len() != 0 {
		t.Error("in-flight refusal must not append")
	}
}

func TestSubmitWhileDisconnectedShowsErrorWithoutAppending(t *testing.T) {
	m := newTestModel(t)
	m.connectivity = components.ConnectivityDisconnected
	m = typeInput(m, "hello")

	m, cmd := pressEnter(m)

	if m.transcript.Len() != 0 {
		t.Error("disconnected refusal must not append the user message")
	}
	if !m.banner.Visible() {
		t.Fatal("disconnected refusal must show an error banner")
	}
	if m.banner.Message != ErrBackendUnavailable {
		t.Errorf("banner = %q, want %q", m.banner.Message, ErrBackendUnavailable)
	}
	if cmd == nil {
		t.Error("expected the banner dismissal timer")
	}
}

func TestSubmitAppendsOptimisticallyAndEntersSending(t *testing.T) {
	m := newTestModel(t)
	m.connectivity = components.ConnectivityConnected
	m = typeInput(m, "  what projects has blake built?  ")

	m, cmd := pressEnter(m)

	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if m.state != StateSending {
		t.Errorf("state = %v, want StateSending", m.state)
	}
	if m.transcript.Len() != 1 {
		t.Fatalf("transcript length = %d, want 1", m.transcript.Len())
	}
	last, _ := m.transcript.Last()
	if last.Content != "what projects has blake built?" {
		t.Errorf("appended content = %q, want trimmed input", last.Content)
	}
	if last.Role != model.RoleUser {
		t.Errorf("appended role = %q, want user", last.Role)
	}
	if m.input.Value() != "" {
		t.Error("input should reset after submit")
	}
	if len(m.suggestions) != 0 {
		t.Error("suggestions should clear once the conversation starts")
	}
}

// =============================================================================
// SEND RESULTS
// =============================================================================

func TestSendResultAppendsStrippedAssistantMessage(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending
	m.transcript.Append(model.NewUserMessage("tell me about skills"))

	m, cmd := m.handleSendResult(SendResultMsg{Reply: &api.ChatReply{
		Message: "hello **explore:skills** world",
	}})

	if m.state != StateIdle {
		t.Errorf("state = %v, want StateIdle", m.state)
	}
	last, _ := m.transcript.Last()
	if last.Content != "hello  world" {
		t.Errorf("stripped content = %q, want %q", last.Content, "hello  world")
	}
	if cmd == nil {
		t.Fatal("known directive should schedule the explore call-to-action")
	}
	if m.exploreAction != nil {
		t.Error("call-to-action must wait for the reveal delay")
	}

	m, _ = m.Update(exploreRevealMsg{Action: explore.Action{PanelID: "skills", Label: "technical skills"}})
	if m.exploreAction == nil || m.exploreAction.PanelID != "skills" {
		t.Errorf("explore action = %+v, want skills", m.exploreAction)
	}
}

func TestSendResultUnknownDirectiveStripsWithoutCTA(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending

	m, _ = m.handleSendResult(SendResultMsg{Reply: &api.ChatReply{
		Message: "see **explore:blog** for more",
	}})

	last, _ := m.transcript.Last()
	if strings.Contains(last.Content, "explore") {
		t.Errorf("directive not stripped: %q", last.Content)
	}
	if m.exploreAction != nil {
		t.Error("unknown directive must not produce a call-to-action")
	}
}

func TestSendResultErrorKeepsUserMessage(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending
	m.transcript.Append(model.NewUserMessage("hello"))

	m, cmd := m.handleSendResult(SendResultMsg{Err: errors.New("request timed out")})

	if m.transcript.Len() != 1 {
		t.Errorf("transcript length = %d, want 1 (no rollback)", m.transcript.Len())
	}
	last, _ := m.transcript.Last()
	if last.Role != model.RoleUser {
		t.Error("failed send must not append an assistant message")
	}
	if !m.banner.Visible() || m.banner.Message != "request timed out" {
		t.Errorf("banner = %q, want the error text", m.banner.Message)
	}
	if cmd == nil {
		t.Error("expected the banner dismissal timer")
	}
}

func TestSendResultReplacesSuggestions(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending
	m.suggestions = nil

	m, _ = m.handleSendResult(SendResultMsg{Reply: &api.ChatReply{
		Message:     "sure",
		Suggestions: []string{"ask about projects", "ask about stack"},
	}})

	if len(m.suggestions) != 2 {
		t.Fatalf("suggestions = %d, want 2", len(m.suggestions))
	}
	if m.suggestionIdx != -1 {
		t.Error("fresh suggestions start unhighlighted")
	}
}

func TestSendResultNilSuggestionsLeaveCurrentOnes(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending
	m.suggestions = []string{"existing"}

	m, _ = m.handleSendResult(SendResultMsg{Reply: &api.ChatReply{Message: "ok"}})

	if len(m.suggestions) != 1 || m.suggestions[0] != "existing" {
		t.Errorf("suggestions = %v, want unchanged", m.suggestions)
	}
}

// =============================================================================
// MODAL ACTIONS
// =============================================================================

func TestSendResultFirstModalActionSchedulesOpen(t *testing.T) {
	m := newTestModel(t)
	m.state = StateSending

	_, cmd := m.handleSendResult(SendResultMsg{Reply: &api.ChatReply{
		Message: "here is my story",
		ModalActions: []api.ModalAction{
			{Action: api.ActionOpenModal, ModalID: "whoami"},
			{Action: api.ActionOpenModal, ModalID: "resume"},
		},
	}})

	if cmd == nil {
		t.Fatal("expected a delayed modal open command")
	}
}

func TestModalTriggerEmitsOpenPanel(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(modalTriggerMsg{PanelID: "whoami"})
	if cmd == nil {
		t.Fatal("expected an open panel command")
	}

	msg, ok := cmd().(OpenPanelMsg)
	if !ok {
		t.Fatalf("command produced %T, want OpenPanelMsg", cmd())
	}
	if msg.PanelID != "whoami" || msg.Source != "modal_action" {
		t.Errorf("got %+v, want whoami/modal_action", msg)
	}
}

// =============================================================================
// EXPLORE CALL-TO-ACTION
// =============================================================================

func TestExploreKeypressEmitsOpenPanelAndConsumesAction(t *testing.T) {
	m := newTestModel(t)
	m, _ = m.Update(exploreRevealMsg{Action: explore.Action{PanelID: "projects", Label: "project showcase"}})

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlE})
	if cmd == nil {
		t.Fatal("expected an open panel command")
	}

	msg, ok := cmd().(OpenPanelMsg)
	if !ok {
		t.Fatalf("command produced %T, want OpenPanelMsg", cmd())
	}
	if msg.PanelID != "projects" || msg.Source != "explore" {
		t.Errorf("got %+v, want projects/explore", msg)
	}
	if m.exploreAction != nil {
		t.Error("call-to-action should be consumed by the keypress")
	}
}

func TestExploreKeypressWithoutActionIsNoop(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlE})
	if cmd != nil {
		t.Error("ctrl+e with no pending action should do nothing")
	}
}

// =============================================================================
// CONNECTIVITY
// =============================================================================

func TestHealthStatusUpdatesConnectivity(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(HealthStatusMsg{Healthy: true})
	if m.connectivity != components.ConnectivityConnected {
		t.Errorf("connectivity = %v, want connected", m.connectivity)
	}

	m, _ = m.Update(HealthStatusMsg{Healthy: false})
	if m.connectivity != components.ConnectivityDisconnected {
		t.Errorf("connectivity = %v, want disconnected", m.connectivity)
	}
}

func TestHealthTickProbesAndReschedules(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(HealthTickMsg{At: time.Now()})
	if cmd == nil {
		t.Fatal("health tick must produce probe and reschedule commands")
	}
}

// =============================================================================
// SUGGESTIONS
// =============================================================================

func TestSeedSuggestionsDrawsOneFromEachPool(t *testing.T) {
	m := newTestModel(t)
	m.pick = func(n int) int { return 0 }
	m.seedSuggestions()

	if len(m.suggestions) != len(suggestionPools) {
		t.Fatalf("suggestions = %d, want %d", len(m.suggestions), len(suggestionPools))
	}
	for i, s := range m.suggestions {
		if s != suggestionPools[i][0] {
			t.Errorf("suggestion[%d] = %q, want %q", i, s, suggestionPools[i][0])
		}
	}
}

func TestTabCyclesSuggestionsOnlyWhenInputEmpty(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.suggestionIdx != 0 {
		t.Errorf("suggestionIdx = %d, want 0", m.suggestionIdx)
	}
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.suggestionIdx != 1 {
		t.Errorf("suggestionIdx = %d, want 1", m.suggestionIdx)
	}

	m = typeInput(m, "typing")
	before := m.suggestionIdx
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	if m.suggestionIdx != before {
		t.Error("tab should not cycle while the input has text")
	}
}

func TestEnterOnHighlightedSuggestionSendsIt(t *testing.T) {
	m := newTestModel(t)
	m.connectivity = components.ConnectivityConnected
	m.pick = func(n int) int { return 0 }
	m.seedSuggestions()
	m.suggestionIdx = 1

	m, cmd := pressEnter(m)

	if cmd == nil {
		t.Fatal("expected a send command")
	}
	last, _ := m.transcript.Last()
	if last.Content != suggestionPools[1][0] {
		t.Errorf("sent %q, want highlighted suggestion %q", last.Content, suggestionPools[1][0])
	}
}

// =============================================================================
// CLEAR
// =============================================================================

func TestClearResultSuccessResetsTranscriptAndReseeds(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewUserMessage("hi"))
	m.transcript.Append(model.NewAssistantMessage("hello"))
	m.suggestions = nil
	m.exploreAction = &explore.Action{PanelID: "skills", Label: "technical skills"}

	m, _ = m.Update(ClearResultMsg{})

	if m.transcript.Len() != 0 {
		t.Errorf("transcript length = %d, want 0", m.transcript.Len())
	}
	if len(m.suggestions) != len(suggestionPools) {
		t.Error("clear should reseed the opener suggestions")
	}
	if m.exploreAction != nil {
		t.Error("clear should drop any pending call-to-action")
	}
}

func TestClearResultFailureKeepsTranscript(t *testing.T) {
	m := newTestModel(t)
	m.transcript.Append(model.NewUserMessage("hi"))

	m, _ = m.Update(ClearResultMsg{Err: errors.New("service unavailable")})

	if m.transcript.Len() != 1 {
		t.Error("failed clear must keep the transcript")
	}
	if !m.banner.Visible() {
		t.Error("failed clear should surface the error")
	}
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistoryLoadedPopulatesTranscript(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(HistoryLoadedMsg{Messages: []model.Message{
		model.NewUserMessage("earlier question"),
		model.NewAssistantMessage("earlier answer"),
	}})

	if m.transcript.Len() != 2 {
		t.Fatalf("transcript length = %d, want 2", m.transcript.Len())
	}
	if len(m.suggestions) != 0 {
		t.Error("a restored conversation should not show opener suggestions")
	}
}

func TestHistoryLoadErrorLeavesFreshState(t *testing.T) {
	m := newTestModel(t)

	m, _ = m.Update(HistoryLoadedMsg{Err: errors.New("no stored session")})

	if m.transcript.Len() != 0 {
		t.Error("failed history load must leave the transcript empty")
	}
	if len(m.suggestions) == 0 {
		t.Error("failed history load keeps the opener suggestions")
	}
}

func TestLoadHistoryCmdRestoresRecordedTurns(t *testing.T) {
	backend := httptest.NewServer(devserver.NewServer(0).Handler())
	defer backend.Close()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: backend.URL,
		Timeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Chat(ctx, "who is blake?", nil); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	msg := LoadHistoryCmd(client)()
	loaded, ok := msg.(HistoryLoadedMsg)
	if !ok {
		t.Fatalf("command produced %T, want HistoryLoadedMsg", msg)
	}
	if loaded.Err != nil {
		t.Fatalf("history load: %v", loaded.Err)
	}
	if len(loaded.Messages) != 2 {
		t.Fatalf("history length = %d, want the user and assistant turns", len(loaded.Messages))
	}

	m := newTestModel(t)
	m, _ = m.Update(loaded)
	if m.transcript.Len() != 2 {
		t.Errorf("transcript length = %d, want 2", m.transcript.Len())
	}
}
