// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logs provides the password-gated chat log viewer.
package logs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/util"
)

// View renders the log viewer for the current mode.
func (m Model) View() string {
	switch m.mode {
	case ModeLocked:
		return m.renderGate()
	case ModeDetail:
		return m.renderDetailFrame()
	default:
		return m.renderList()
	}
}

// renderGate renders the password prompt. No log content is visible
// behind it.
func (m Model) renderGate() string {
	var b strings.Builder
	b.WriteString(m.theme.GateTitle.Render("log access") + "\n\n")
	b.WriteString("enter the log password to continue\n\n")
	b.WriteString(m.passInput.View() + "\n")
	if m.gateErr != "" {
		b.WriteString("\n" + m.theme.GateError.Render(m.gateErr))
	}

	box := m.theme.GateBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderList() string {
	var b strings.Builder

	title := fmt.Sprintf("chat logs (%d of %d)", len(m.logs), m.total)
	b.WriteString(m.theme.PanelTitle.Render(title) + "\n")

	if m.analytics != nil {
		b.WriteString(m.theme.LogDetailLabel.Render(fmt.Sprintf(
			"30d: %d queries, %d sessions, avg %.2fs",
			m.analytics.TotalQueries, m.analytics.UniqueSessions, m.analytics.AvgResponseTime,
		)) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString("loading...\n")
	case m.fetchErr != "":
		b.WriteString(m.theme.GateError.Render(m.fetchErr) + "\n")
	case len(m.logs) == 0:
		b.WriteString("no logs recorded\n")
	default:
		visible := m.height - 8
		if visible < 3 {
			visible = 3
		}
		start := 0
		if m.cursor >= visible {
			start = m.cursor - visible + 1
		}
		for i := start; i < len(m.logs) && i < start+visible; i++ {
			b.WriteString(m.renderRow(m.logs[i], i == m.cursor) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.theme.LogDetailLabel.Render(m.status))
	}
	b.WriteString("\n" + m.theme.LogDetailLabel.Render("enter detail  r refresh  a archive  x clear  esc close"))

	return m.theme.PanelBox.Width(m.width - 2).Render(b.String())
}

func (m Model) renderRow(entry api.DetailedChatLog, active bool) string {
	ts := "unknown time"
	if !entry.Timestamp.IsZero() {
		ts = entry.Timestamp.Format("Jan 02 15:04")
	}
	line := fmt.Sprintf("%s  %-10s  %s",
		ts,
		util.ShortID(entry.SessionID, 10),
		util.TruncateWidth(util.FirstLine(entry.UserQuery), m.width-34),
	)
	if active {
		return m.theme.LogEntryActive.Render(line)
	}
	return m.theme.LogEntry.Render(line)
}

func (m Model) renderDetailFrame() string {
	header := m.theme.PanelTitle.Render("log detail") + "\n"
	footer := "\n" + m.theme.LogDetailLabel.Render("esc back")
	return m.theme.PanelBox.Width(m.width - 2).Render(header + m.detail.View() + footer)
}

// renderDetail formats one log entry for the detail viewport.
func (m Model) renderDetail(entry api.DetailedChatLog) string {
	label := func(s string) string { return m.theme.LogDetailLabel.Render(s) }

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", label("id:"), entry.ID)
	fmt.Fprintf(&b, "%s %s\n", label("session:"), entry.SessionID)
	if !entry.Timestamp.IsZero() {
		fmt.Fprintf(&b, "%s %s\n", label("time:"), entry.Timestamp.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "%s %.2fs\n", label("response time:"), entry.ResponseTime)
	if entry.UserIP != "" {
		fmt.Fprintf(&b, "%s %s\n", label("ip:"), entry.UserIP)
	}
	if entry.UserAgent != "" {
		fmt.Fprintf(&b, "%s %s\n", label("agent:"), entry.UserAgent)
	}

	fmt.Fprintf(&b, "\n%s\n%s\n", label("query"), entry.UserQuery)
	fmt.Fprintf(&b, "\n%s\n%s\n", label("response"), entry.FinalResponse)

	if len(entry.ToolsUsed) > 0 {
		b.WriteString("\n" + label("tools") + "\n")
		for _, tool := range entry.ToolsUsed {
			fmt.Fprintf(&b, "  %s (%.2fs)\n", tool.ToolName, tool.ExecutionTime)
		}
	}
	if len(entry.Suggestions) > 0 {
		b.WriteString("\n" + label("suggestions") + "\n")
		for _, s := range entry.Suggestions {
			fmt.Fprintf(&b, "  %s\n", s)
		}
	}
	if len(entry.ModalActions) > 0 {
		b.WriteString("\n" + label("modal actions") + "\n")
		for _, a := range entry.ModalActions {
			fmt.Fprintf(&b, "  %s -> %s\n", a.Action, a.ModalID)
		}
	}
	return b.String()
}
