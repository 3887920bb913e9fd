// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// =============================================================================
// ERROR BANNER COMPONENT - Transient inline error display
// =============================================================================

// Banner renders a dismissable one-line error above the input area.
// The owning model decides when to show and clear it; the banner itself
// holds no timers.
type Banner struct {
	Message string
	Width   int
	theme   *styles.Theme
}

// NewBanner creates an empty (hidden) banner.
func NewBanner(theme *styles.Theme) *Banner {
	return &Banner{Width: 80, theme: theme}
}

// SetWidth updates the available render width.
func (b *Banner) SetWidth(width int) {
	b.Width = width
}

// Show sets the banner message. An empty message hides the banner.
func (b *Banner) Show(message string) {
	b.Message = message
}

// Clear hides the banner.
func (b *Banner) Clear() {
	b.Message = ""
}

// Visible reports whether the banner has something to render.
func (b *Banner) Visible() bool {
	return b.Message != ""
}

// View renders the banner, or an empty string when hidden.
func (b *Banner) View() string {
	if b.Message == "" {
		return ""
	}
	return b.theme.ErrorBanner.MaxWidth(b.Width).Render("! " + b.Message)
}
