// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat
// interface. Messages are organized into the following categories:
//   - Gateway: send results, clear results, history loads
//   - Connectivity: health probe scheduling and results
//   - Navigation: panel open requests surfaced to the root model
//   - UI State: banner dismissal and input focus
//
// All message types follow Bubble Tea conventions and are immutable.
package chat

import (
	"time"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/explore"
	"github.com/jeranaias/folio-tui/internal/model"
)

// =============================================================================
// GATEWAY MESSAGES
// =============================================================================

// SendResultMsg reports the outcome of a chat send. Reply is nil when
// Err is set. The user message that triggered the send stays in the
// transcript either way.
type SendResultMsg struct {
	Reply *api.ChatReply
	Err   error
}

// ClearResultMsg reports the outcome of a conversation reset. When Err
// is set the remote clear failed and the session keeps its identity.
type ClearResultMsg struct {
	Err error
}

// HistoryLoadedMsg delivers a previously stored conversation.
type HistoryLoadedMsg struct {
	Messages []model.Message
	Err      error
}

// =============================================================================
// CONNECTIVITY MESSAGES
// =============================================================================

// HealthTickMsg requests a connectivity probe. Emitted on an interval
// and once immediately at startup.
type HealthTickMsg struct {
	At time.Time
}

// HealthStatusMsg reports the result of a connectivity probe.
type HealthStatusMsg struct {
	Healthy bool
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// OpenPanelMsg asks the root model to open a content panel. Source
// records what produced the request ("modal_action" or "explore").
type OpenPanelMsg struct {
	PanelID string
	Source  string
}

// ToggleLogsMsg asks the root model to show or hide the log viewer.
type ToggleLogsMsg struct{}

// modalTriggerMsg fires after the auto-open delay for a backend
// modal action.
type modalTriggerMsg struct {
	PanelID string
}

// exploreRevealMsg surfaces the explore call-to-action once the answer
// has had a beat to render.
type exploreRevealMsg struct {
	Action explore.Action
}

// =============================================================================
// UI STATE MESSAGES
// =============================================================================

// bannerClearMsg dismisses the transient error banner.
type bannerClearMsg struct{}
