// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logs provides the password-gated chat log viewer.
//
// The viewer never renders log content before the gate grants access.
// Access survives closing and reopening the panel for the life of the
// process; restarting always re-locks.
package logs

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/archive"
	"github.com/jeranaias/folio-tui/internal/gate"
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// Mode tracks which layer of the viewer is active.
type Mode int

const (
	ModeLocked Mode = iota // Password prompt
	ModeList               // Log listing
	ModeDetail             // Single log detail
)

// Model is the Bubble Tea model for the log viewer.
type Model struct {
	theme *styles.Theme

	client *api.Client
	gate   *gate.Gate
	store  *archive.Store // nil disables archiving

	mode    Mode
	loading bool

	// Gate overlay
	passInput textinput.Model
	gateErr   string

	// Listing
	logs      []api.DetailedChatLog
	total     int
	cursor    int
	analytics *api.ChatAnalytics
	status    string
	fetchErr  string
	limit     int

	// Detail
	detail viewport.Model

	width  int
	height int
}

// New creates a locked log viewer.
func New(client *api.Client, g *gate.Gate, store *archive.Store, limit int, theme *styles.Theme) Model {
	pass := textinput.New()
	pass.Placeholder = "password"
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'
	pass.CharLimit = 128
	pass.Focus()

	if limit <= 0 {
		limit = 100
	}

	return Model{
		theme:     theme,
		client:    client,
		gate:      g,
		store:     store,
		mode:      ModeLocked,
		passInput: pass,
		detail:    viewport.New(80, 20),
		limit:     limit,
		width:     80,
		height:    24,
	}
}

// Granted reports whether the gate has been passed this process.
func (m Model) Granted() bool {
	return m.gate.Granted()
}

// Activate is called when the root model shows the viewer. A
// previously granted gate skips straight to fetching.
func (m Model) Activate() (Model, tea.Cmd) {
	if m.gate.Granted() {
		m.mode = ModeList
		return m.startFetch()
	}
	m.mode = ModeLocked
	m.passInput.Reset()
	m.passInput.Focus()
	m.gateErr = ""
	return m, textinput.Blink
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.detail.Width = width - 4
	m.detail.Height = height - 6
}

func (m Model) startFetch() (Model, tea.Cmd) {
	m.loading = true
	m.fetchErr = ""
	return m, tea.Batch(
		fetchLogsCmd(m.client, m.limit),
		fetchAnalyticsCmd(m.client),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the log viewer.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case FetchedMsg:
		m.loading = false
		if msg.Err != nil {
			m.fetchErr = msg.Err.Error()
			return m, nil
		}
		m.logs = msg.Logs.Logs
		m.total = msg.Logs.TotalCount
		if m.cursor >= len(m.logs) {
			m.cursor = max(len(m.logs)-1, 0)
		}
		return m, nil

	case AnalyticsMsg:
		// Analytics are decoration; failures just leave the line out.
		if msg.Err == nil {
			m.analytics = msg.Analytics
		}
		return m, nil

	case ClearedMsg:
		if msg.Err != nil {
			m.status = "clear failed: " + msg.Err.Error()
			return m, nil
		}
		m.status = "logs cleared"
		return m.startFetch()

	case ArchivedMsg:
		if msg.Err != nil {
			m.status = "archive failed: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("archived %d logs to %s", msg.Saved, m.store.Path())
		}
		return m, nil
	}

	if m.mode == ModeLocked {
		var cmd tea.Cmd
		m.passInput, cmd = m.passInput.Update(msg)
		return m, cmd
	}
	if m.mode == ModeDetail {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case ModeLocked:
		return m.handleLockedKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleLockedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		err := m.gate.Verify(m.passInput.Value())
		m.passInput.Reset()
		if err != nil {
			// Retries are unlimited; only the message changes.
			m.gateErr = err.Error()
			return m, nil
		}
		m.gateErr = ""
		m.mode = ModeList
		return m.startFetch()
	}

	var cmd tea.Cmd
	m.passInput, cmd = m.passInput.Update(msg)
	return m, cmd
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.logs)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.logs) > 0 {
			m.mode = ModeDetail
			m.detail.SetContent(m.renderDetail(m.logs[m.cursor]))
			m.detail.GotoTop()
		}
	case "r":
		return m.startFetch()
	case "a":
		if m.store != nil && len(m.logs) > 0 {
			return m, archiveCmd(m.store, m.logs)
		}
		m.status = "nothing to archive"
	case "x":
		return m, clearLogsCmd(m.client)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "esc" || msg.String() == "q" {
		m.mode = ModeList
		return m, nil
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// InDetail reports whether the viewer is showing a single log, so the
// root model knows esc should back out rather than close the panel.
func (m Model) InDetail() bool {
	return m.mode == ModeDetail
}

// =============================================================================
// COMMANDS
// =============================================================================

func fetchLogsCmd(client *api.Client, limit int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logs, err := client.GetChatLogs(ctx, "", limit)
		return FetchedMsg{Logs: logs, Err: err}
	}
}

func fetchAnalyticsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		analytics, err := client.GetChatAnalytics(ctx, 30)
		return AnalyticsMsg{Analytics: analytics, Err: err}
	}
}

func clearLogsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return ClearedMsg{Err: client.ClearChatLogs(ctx, "")}
	}
}

func archiveCmd(store *archive.Store, logs []api.DetailedChatLog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		saved, err := store.Save(ctx, logs)
		return ArchivedMsg{Saved: saved, Err: err}
	}
}
