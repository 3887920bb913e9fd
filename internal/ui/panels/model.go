// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package panels holds the portfolio content panels and their
// markdown sources.
package panels

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// Model renders one content panel at a time inside a scrollable
// viewport. Markdown renders lazily and caches per panel per width.
type Model struct {
	theme *styles.Theme

	panel    Panel
	viewport viewport.Model

	rendered map[string]string // panel id -> rendered markdown
	wrap     int

	width  int
	height int
}

// New creates a panel viewer showing the given panel.
func New(theme *styles.Theme, wrap int) Model {
	if wrap <= 0 {
		wrap = 80
	}
	first := All()[0]
	return Model{
		theme:    theme,
		panel:    first,
		viewport: viewport.New(80, 20),
		rendered: make(map[string]string),
		wrap:     wrap,
		width:    80,
		height:   24,
	}
}

// Current returns the visible panel's id.
func (m Model) Current() string {
	return m.panel.ID
}

// Show switches to the panel with the given id. Unknown ids are
// ignored and the current panel stays up.
func (m *Model) Show(id string) {
	p, ok := ByID(id)
	if !ok {
		return
	}
	m.panel = p
	m.viewport.SetContent(m.render(p))
	m.viewport.GotoTop()
}

// SetSize updates the layout dimensions and invalidates the render
// cache when the wrap width changes.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 4

	wrap := width - 8
	if wrap > 100 {
		wrap = 100
	}
	if wrap < 30 {
		wrap = 30
	}
	if wrap != m.wrap {
		m.wrap = wrap
		m.rendered = make(map[string]string)
	}
	m.viewport.SetContent(m.render(m.panel))
}

// render returns glamour output for the panel, cached by id.
func (m *Model) render(p Panel) string {
	if cached, ok := m.rendered[p.ID]; ok {
		return cached
	}

	var out string
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.wrap),
	)
	if err == nil {
		if s, rerr := renderer.Render(p.Markdown); rerr == nil {
			out = s
		}
	}
	if out == "" {
		// Plain markdown beats a blank panel when rendering fails.
		out = p.Markdown
	}

	m.rendered[p.ID] = out
	return out
}

// Update handles scrolling for the panel viewport.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel inside its frame.
func (m Model) View() string {
	title := m.theme.PanelTitle.Render(m.panel.Title)
	return m.theme.PanelBox.Width(m.width - 2).Render(title + "\n" + m.viewport.View())
}
