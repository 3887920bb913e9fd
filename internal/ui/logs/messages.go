// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logs provides the password-gated chat log viewer.
package logs

import (
	"github.com/jeranaias/folio-tui/internal/api"
)

// FetchedMsg delivers a page of remote chat logs.
type FetchedMsg struct {
	Logs *api.ChatLogs
	Err  error
}

// AnalyticsMsg delivers the usage aggregate for the header line.
type AnalyticsMsg struct {
	Analytics *api.ChatAnalytics
	Err       error
}

// ClearedMsg reports the outcome of a remote log wipe.
type ClearedMsg struct {
	Err error
}

// ArchivedMsg reports how many logs were written to the local archive.
type ArchivedMsg struct {
	Saved int
	Err   error
}
