// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file contains the rendering logic for the chat pane: the
// message transcript, the suggestion row, the explore call-to-action,
// the error banner, and the input area.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/folio-tui/internal/model"
	"github.com/jeranaias/folio-tui/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat pane. The surrounding dock and status
// bar belong to the root model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	sections := []string{m.viewport.View()}

	if row := m.renderSuggestions(); row != "" {
		sections = append(sections, row)
	}
	if cta := m.renderExploreCTA(); cta != "" {
		sections = append(sections, cta)
	}
	if m.banner.Visible() {
		m.banner.SetWidth(m.width)
		sections = append(sections, m.banner.View())
	}
	sections = append(sections, m.renderInput())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// refreshViewport rebuilds the transcript rendering. When follow is
// true the viewport snaps to the bottom.
func (m *Model) refreshViewport(follow bool) {
	var b strings.Builder
	for i, msg := range m.transcript.Messages() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	if m.state == StateSending {
		b.WriteString("\n" + m.spinner.View() + m.theme.Timestamp.Render(" thinking..."))
	}
	if m.transcript.Len() == 0 && m.state != StateSending {
		b.WriteString(m.renderWelcome())
	}

	m.viewport.SetContent(b.String())
	if follow {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders one transcript entry as a chat bubble.
func (m Model) renderMessage(msg model.Message) string {
	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	name := msg.Role.DisplayName()
	ts := m.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))

	switch msg.Role {
	case model.RoleUser:
		bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(msg.Content)
		header := m.theme.Timestamp.Render(name+" ") + ts
		block := lipgloss.JoinVertical(lipgloss.Right, header, bubble)
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block)

	default:
		content := components.RenderCodeBlocks(msg.Content, bubbleWidth-4)
		bubble := m.theme.AssistantBubble.MaxWidth(bubbleWidth).Render(content)
		header := m.theme.Timestamp.Render(name+" ") + ts
		return lipgloss.JoinVertical(lipgloss.Left, header, bubble)
	}
}

// renderWelcome fills an empty transcript with a short greeting.
func (m Model) renderWelcome() string {
	lines := []string{
		"",
		m.theme.HeaderTitle.Render("folio chat"),
		m.theme.Timestamp.Render("ask anything about blake's work, background, or projects."),
		m.theme.Timestamp.Render("tab cycles suggestions, enter sends."),
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		strings.Join(lines, "\n"))
}

// renderSuggestions renders the opener suggestion row.
func (m Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	var parts []string
	for i, s := range m.suggestions {
		if i == m.suggestionIdx {
			parts = append(parts, m.theme.SuggestionActive.Render(s))
		} else {
			parts = append(parts, m.theme.Suggestion.Render(s))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, " "))
}

// renderExploreCTA renders the pending navigation affordance.
func (m Model) renderExploreCTA() string {
	if m.exploreAction == nil {
		return ""
	}
	return m.theme.ExploreCTA.Render("ctrl+e  explore " + m.exploreAction.Label)
}

// renderInput renders the text input with its prompt.
func (m Model) renderInput() string {
	prompt := m.theme.InputPrompt.Render("> ")
	return m.theme.InputContainer.Width(m.width - 2).Render(prompt + m.input.View())
}
