// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio-tui/internal/ui/styles"
	"github.com/jeranaias/folio-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom bar with connectivity and shortcuts
// =============================================================================

// Connectivity is the backend reachability state shown in the status bar.
type Connectivity int

const (
	ConnectivityChecking Connectivity = iota
	ConnectivityConnected
	ConnectivityDisconnected
)

// String returns the display string for the connectivity state.
func (c Connectivity) String() string {
	switch c {
	case ConnectivityConnected:
		return "connected"
	case ConnectivityDisconnected:
		return "disconnected"
	default:
		return "checking..."
	}
}

// Icon returns a shape indicator alongside the color for the state.
func (c Connectivity) Icon() string {
	switch c {
	case ConnectivityConnected:
		return "●"
	case ConnectivityDisconnected:
		return "○"
	default:
		return "◌"
	}
}

// Shortcut is one key hint rendered on the right side of the bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom status bar: connectivity on the left, session
// identity in the middle, shortcuts on the right.
type StatusBar struct {
	Connectivity Connectivity
	SessionID    string
	Sending      bool
	Width        int
	Shortcuts    []Shortcut
	theme        *styles.Theme
}

// NewStatusBar creates a status bar in the checking state.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Connectivity: ConnectivityChecking,
		Width:        80,
		theme:        theme,
	}
}

// SetWidth updates the available render width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the status bar.
func (s *StatusBar) View() string {
	var connStyle lipgloss.Style
	switch s.Connectivity {
	case ConnectivityConnected:
		connStyle = s.theme.Connected
	case ConnectivityDisconnected:
		connStyle = s.theme.Disconnected
	default:
		connStyle = s.theme.ShortcutDesc
	}
	left := connStyle.Render(fmt.Sprintf("%s %s", s.Connectivity.Icon(), s.Connectivity))

	if s.Sending {
		left += s.theme.ShortcutDesc.Render("  sending...")
	}

	var mid string
	if s.SessionID != "" {
		mid = s.theme.ShortcutDesc.Render("session " + util.ShortID(s.SessionID, 12))
	}

	var hints []string
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	// Distribute: left-align connectivity, center session, right-align hints
	gap := s.Width - lipgloss.Width(left) - lipgloss.Width(mid) - lipgloss.Width(right) - 2
	if gap < 2 {
		// Too narrow: drop the session segment first, then hints
		mid = ""
		gap = s.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
		if gap < 2 {
			right = ""
			gap = 2
		}
	}
	leftGap := gap / 2
	rightGap := gap - leftGap

	bar := left + strings.Repeat(" ", leftGap) + mid + strings.Repeat(" ", rightGap) + right
	return s.theme.StatusBar.Width(s.Width).Render(bar)
}
