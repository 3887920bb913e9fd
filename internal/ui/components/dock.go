// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// =============================================================================
// DOCK COMPONENT - Top navigation bar across panels and chat
// =============================================================================

// DockItem is one selectable entry in the dock.
type DockItem struct {
	ID    string // Panel ID ("whoami", "chat", ...)
	Label string // Display label
	Key   string // Shortcut hint ("1".."5", "c")
}

// Dock is the persistent navigation bar rendered at the top of the screen.
type Dock struct {
	Items  []DockItem
	Active string // ID of the active item
	Width  int
	theme  *styles.Theme
}

// NewDock creates a dock with the given items. The first item starts active.
func NewDock(theme *styles.Theme, items []DockItem) *Dock {
	d := &Dock{
		Items: items,
		Width: 80,
		theme: theme,
	}
	if len(items) > 0 {
		d.Active = items[0].ID
	}
	return d
}

// SetWidth updates the available render width.
func (d *Dock) SetWidth(width int) {
	d.Width = width
}

// SetActive marks the item with the given ID as active. Unknown IDs are
// ignored so the dock never ends up with no selection.
func (d *Dock) SetActive(id string) {
	for _, item := range d.Items {
		if item.ID == id {
			d.Active = id
			return
		}
	}
}

// Next cycles the active item forward and returns the new ID.
func (d *Dock) Next() string {
	return d.step(1)
}

// Prev cycles the active item backward and returns the new ID.
func (d *Dock) Prev() string {
	return d.step(-1)
}

func (d *Dock) step(delta int) string {
	if len(d.Items) == 0 {
		return ""
	}
	idx := 0
	for i, item := range d.Items {
		if item.ID == d.Active {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(d.Items)) % len(d.Items)
	d.Active = d.Items[idx].ID
	return d.Active
}

// View renders the dock as a single horizontal bar.
func (d *Dock) View() string {
	if len(d.Items) == 0 {
		return ""
	}

	var parts []string
	for _, item := range d.Items {
		label := item.Label
		if item.Key != "" {
			label = label + " " + d.theme.DockHint.Render(item.Key)
		}
		if item.ID == d.Active {
			parts = append(parts, d.theme.DockActive.Render(label))
		} else {
			parts = append(parts, d.theme.DockItem.Render(label))
		}
	}

	bar := strings.Join(parts, " ")
	return d.theme.Header.Width(d.Width).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, bar),
	)
}
