// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the folio TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// HEADER AND DOCK STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	DockItem    lipgloss.Style
	DockActive  lipgloss.Style
	DockHint    lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	Timestamp       lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style

	// ==========================================================================
	// STATUS AND CONNECTIVITY STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	Connected    lipgloss.Style
	Disconnected lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SUGGESTION AND EXPLORE STYLES
	// ==========================================================================

	Suggestion       lipgloss.Style
	SuggestionActive lipgloss.Style
	ExploreCTA       lipgloss.Style

	// ==========================================================================
	// ERROR AND GATE STYLES
	// ==========================================================================

	ErrorBanner lipgloss.Style
	GateBox     lipgloss.Style
	GateTitle   lipgloss.Style
	GateError   lipgloss.Style

	// ==========================================================================
	// PANEL AND LOG VIEWER STYLES
	// ==========================================================================

	PanelBox       lipgloss.Style
	PanelTitle     lipgloss.Style
	LogEntry       lipgloss.Style
	LogEntryActive lipgloss.Style
	LogDetailLabel lipgloss.Style
}

// New creates a theme for the given terminal profile. isDark selects
// the dark or light palette variant.
func New(profile termenv.Profile, isDark bool) *Theme {
	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
		Width:        80,
		Height:       24,
	}

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.DockItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.DockActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 1)
	t.DockHint = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.AssistantBubble = lipgloss.NewStyle().
		Foreground(AssistantBubbleFg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AssistantBubbleBorder).
		Padding(0, 1)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputContainer = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), true, false, false, false).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.Connected = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)
	t.Disconnected = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Amber)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Suggestion = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.SuggestionActive = lipgloss.NewStyle().
		Foreground(Amber).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)
	t.ExploreCTA = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Amber).
		Bold(true).
		Padding(0, 2)

	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(Rose).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.GateBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(1, 2)
	t.GateTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)
	t.GateError = lipgloss.NewStyle().
		Foreground(Rose)

	t.PanelBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 2)
	t.PanelTitle = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.LogEntry = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.LogEntryActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 1)
	t.LogDetailLabel = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	return t
}

// Default creates a theme with auto-detected terminal capabilities.
func Default() *Theme {
	return New(termenv.ColorProfile(), termenv.HasDarkBackground())
}

// SetSize updates the theme's layout dimensions.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// Toggle flips between the dark and light variants. Adaptive colors
// resolve against the background flag, so flipping it re-skins every
// style on the next render.
func (t *Theme) Toggle() {
	t.IsDark = !t.IsDark
	lipgloss.SetHasDarkBackground(t.IsDark)
}
