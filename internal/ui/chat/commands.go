// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/explore"
	"github.com/jeranaias/folio-tui/internal/model"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// modalOpenDelay is how long the chat waits before auto-opening a panel
// the backend asked for, so the answer renders before the panel covers it.
const modalOpenDelay = 500 * time.Millisecond

// bannerLifetime is how long a transient error stays visible.
const bannerLifetime = 6 * time.Second

// SendChatCmd creates a command that posts a message to the gateway.
// recentContext must be captured before the user message is appended to
// the transcript so the backend sees only prior turns.
func SendChatCmd(client *api.Client, message string, recentContext []model.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		reply, err := client.Chat(ctx, message, recentContext)
		return SendResultMsg{Reply: reply, Err: err}
	}
}

// ClearChatCmd creates a command that resets the conversation on the
// backend and, on success, rotates the session identity.
func ClearChatCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ClearResultMsg{Err: client.ClearChat(ctx)}
	}
}

// LoadHistoryCmd creates a command that fetches the current session's
// stored conversation.
func LoadHistoryCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		wire, err := client.GetChatHistory(ctx)
		if err != nil {
			return HistoryLoadedMsg{Err: err}
		}

		msgs := make([]model.Message, 0, len(wire))
		for _, w := range wire {
			msgs = append(msgs, model.Message{
				ID:        w.ID,
				Role:      model.Role(w.Role),
				Content:   w.Content,
				Timestamp: w.Timestamp,
			})
		}
		return HistoryLoadedMsg{Messages: msgs}
	}
}

// HealthCheckCmd creates a command that probes backend reachability.
func HealthCheckCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
		defer cancel()

		return HealthStatusMsg{Healthy: client.HealthCheck(ctx)}
	}
}

// ScheduleHealthTick creates a command that emits the next probe
// request after the configured interval.
func ScheduleHealthTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return HealthTickMsg{At: t}
	})
}

// scheduleModalOpen delays the backend-requested panel open so the
// assistant's answer is visible first.
func scheduleModalOpen(panelID string) tea.Cmd {
	return tea.Tick(modalOpenDelay, func(time.Time) tea.Msg {
		return modalTriggerMsg{PanelID: panelID}
	})
}

// scheduleExploreReveal delays the explore call-to-action so the answer
// containing the directive renders before the footer changes.
func scheduleExploreReveal(action explore.Action) tea.Cmd {
	return tea.Tick(modalOpenDelay, func(time.Time) tea.Msg {
		return exploreRevealMsg{Action: action}
	})
}

// scheduleBannerClear dismisses the error banner after its lifetime.
func scheduleBannerClear() tea.Cmd {
	return tea.Tick(bannerLifetime, func(time.Time) tea.Msg {
		return bannerClearMsg{}
	})
}
