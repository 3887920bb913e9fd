// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/explore"
	"github.com/jeranaias/folio-tui/internal/model"
	"github.com/jeranaias/folio-tui/internal/ui/components"
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateIdle    State = iota // Ready for input
	StateSending              // A message is in flight
)

// ErrBackendUnavailable is the user-facing text shown when a send is
// refused because the backend is unreachable.
const ErrBackendUnavailable = "backend service is not available. please try again later."

// Opening suggestion pools. One entry from each pool seeds the
// suggestion row on a fresh conversation.
var suggestionPools = [][]string{
	{
		"who is blake?",
		"what's blake's background?",
		"how long has blake been coding?",
	},
	{
		"what projects has blake built?",
		"what tech does blake use?",
		"what's blake's recent work?",
	},
	{
		"what are blake's skills?",
		"frontend or backend?",
		"what's blake's preferred stack?",
	},
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view. It owns the
// transcript, the send lifecycle, connectivity tracking, and the
// inline navigation affordances the backend can attach to answers.
type Model struct {
	// State
	state        State
	connectivity components.Connectivity

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Conversation
	client     *api.Client
	transcript *model.Transcript

	// Suggestions shown beneath the input while the conversation is
	// young. suggestionIdx is -1 when none is highlighted.
	suggestions   []string
	suggestionIdx int

	// Pending explore call-to-action from the latest answer. Opens
	// only on an explicit keypress, never automatically.
	exploreAction *explore.Action

	// UI Components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	banner   *components.Banner

	// Connectivity probe cadence
	healthInterval time.Duration

	// pick selects a pool entry; swappable in tests
	pick func(n int) int
}

// New creates a chat model wired to the given gateway client.
func New(client *api.Client, theme *styles.Theme, healthInterval time.Duration) Model {
	input := textinput.New()
	input.Placeholder = "ask about blake..."
	input.CharLimit = 2000
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.ShortcutDesc

	vp := viewport.New(80, 20)

	m := Model{
		state:          StateIdle,
		connectivity:   components.ConnectivityDisconnected,
		theme:          theme,
		width:          80,
		height:         24,
		client:         client,
		transcript:     model.NewTranscript(),
		suggestionIdx:  -1,
		viewport:       vp,
		input:          input,
		spinner:        sp,
		banner:         components.NewBanner(theme),
		healthInterval: healthInterval,
		pick:           rand.IntN,
	}
	m.seedSuggestions()
	return m
}

// seedSuggestions draws one opener from each pool.
func (m *Model) seedSuggestions() {
	seeded := make([]string, 0, len(suggestionPools))
	for _, pool := range suggestionPools {
		seeded = append(seeded, pool[m.pick(len(pool))])
	}
	m.suggestions = seeded
	m.suggestionIdx = -1
}

// Init starts the spinner, probes connectivity immediately, schedules
// the recurring probe, and asks the backend for any turns it already
// holds for this session.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		HealthCheckCmd(m.client),
		ScheduleHealthTick(m.healthInterval),
		LoadHistoryCmd(m.client),
	)
}

// Connectivity reports the current backend reachability state.
func (m Model) Connectivity() components.Connectivity {
	return m.connectivity
}

// Sending reports whether a message is in flight.
func (m Model) Sending() bool {
	return m.state == StateSending
}

// SessionID exposes the gateway session identity for display.
func (m Model) SessionID() string {
	return m.client.SessionID()
}

// SetSize updates the layout dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	inputRows := 3
	extraRows := m.footerRows()
	m.viewport.Height = max(height-inputRows-extraRows, 3)
	m.input.Width = max(width-6, 10)
	m.refreshViewport(false)
}

// footerRows counts the lines rendered between viewport and input.
func (m Model) footerRows() int {
	rows := 0
	if len(m.suggestions) > 0 {
		rows++
	}
	if m.exploreAction != nil {
		rows++
	}
	if m.banner.Visible() {
		rows++
	}
	return rows
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles Bubble Tea messages for the chat view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case HealthTickMsg:
		return m, tea.Batch(
			HealthCheckCmd(m.client),
			ScheduleHealthTick(m.healthInterval),
		)

	case HealthStatusMsg:
		if msg.Healthy {
			m.connectivity = components.ConnectivityConnected
		} else {
			m.connectivity = components.ConnectivityDisconnected
		}
		return m, nil

	case SendResultMsg:
		return m.handleSendResult(msg)

	case ClearResultMsg:
		if msg.Err != nil {
			m.banner.Show(msg.Err.Error())
			return m, scheduleBannerClear()
		}
		m.transcript.Clear()
		m.exploreAction = nil
		m.seedSuggestions()
		m.banner.Clear()
		m.refreshViewport(true)
		return m, nil

	case HistoryLoadedMsg:
		// Best effort: an empty or failed load leaves a fresh transcript.
		if msg.Err == nil {
			for _, hm := range msg.Messages {
				m.transcript.Append(hm)
			}
			if m.transcript.Len() > 0 {
				m.suggestions = nil
			}
			m.refreshViewport(true)
		}
		return m, nil

	case modalTriggerMsg:
		return m, func() tea.Msg {
			return OpenPanelMsg{PanelID: msg.PanelID, Source: "modal_action"}
		}

	case exploreRevealMsg:
		m.exploreAction = &msg.Action
		return m, nil

	case bannerClearMsg:
		m.banner.Clear()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// handleKey routes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.suggestionIdx >= 0 && strings.TrimSpace(m.input.Value()) == "" {
			m.input.SetValue(m.suggestions[m.suggestionIdx])
			m.suggestionIdx = -1
		}
		return m.submit()

	case "tab":
		if len(m.suggestions) > 0 && strings.TrimSpace(m.input.Value()) == "" {
			m.suggestionIdx = (m.suggestionIdx + 1) % len(m.suggestions)
			return m, nil
		}

	case "ctrl+e":
		if m.exploreAction != nil {
			id := m.exploreAction.PanelID
			m.exploreAction = nil
			return m, func() tea.Msg {
				return OpenPanelMsg{PanelID: id, Source: "explore"}
			}
		}
		return m, nil

	case "ctrl+r":
		if m.state == StateIdle {
			return m, ClearChatCmd(m.client)
		}
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit applies the send guard and, when it passes, optimistically
// appends the user message and posts it.
func (m Model) submit() (Model, tea.Cmd) {
	trimmed := strings.TrimSpace(m.input.Value())

	// Empty input or a send already in flight: refuse silently.
	if trimmed == "" || m.state == StateSending {
		return m, nil
	}

	// Known-unreachable backend: refuse loudly, append nothing.
	if m.connectivity == components.ConnectivityDisconnected {
		m.banner.Show(ErrBackendUnavailable)
		return m, scheduleBannerClear()
	}

	// Context must reflect the conversation before this turn.
	recent := m.transcript.Context(model.ContextWindow)

	m.transcript.Append(model.NewUserMessage(trimmed))
	m.input.Reset()
	m.state = StateSending
	m.suggestions = nil
	m.suggestionIdx = -1
	m.exploreAction = nil
	m.banner.Clear()
	m.refreshViewport(true)

	return m, SendChatCmd(m.client, trimmed, recent)
}

// handleSendResult folds the gateway's answer into the transcript.
// Failures keep the optimistic user message; there is no rollback and
// no automatic retry.
func (m Model) handleSendResult(msg SendResultMsg) (Model, tea.Cmd) {
	m.state = StateIdle

	if msg.Err != nil {
		m.banner.Show(msg.Err.Error())
		m.refreshViewport(false)
		// A failed send is fresh evidence about reachability.
		return m, tea.Batch(scheduleBannerClear(), HealthCheckCmd(m.client))
	}

	reply := msg.Reply
	var cmds []tea.Cmd

	// Navigation directives strip from the displayed text; a known id
	// becomes a call-to-action revealed after a short beat, and opened
	// only by an explicit keypress.
	if action, ok := explore.Scan(reply.Message); ok {
		cmds = append(cmds, scheduleExploreReveal(action))
	}
	m.transcript.Append(model.NewAssistantMessage(explore.Strip(reply.Message)))

	if reply.Suggestions != nil {
		m.suggestions = reply.Suggestions
		m.suggestionIdx = -1
	}

	m.refreshViewport(true)

	// The backend can ask for a panel directly; honor only the first
	// action, after a short delay so the answer is readable.
	if len(reply.ModalActions) > 0 && reply.ModalActions[0].Action == api.ActionOpenModal {
		cmds = append(cmds, scheduleModalOpen(reply.ModalActions[0].ModalID))
	}
	return m, tea.Batch(cmds...)
}
