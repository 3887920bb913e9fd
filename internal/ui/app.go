// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui composes the folio interface: the dock across the top,
// the content panels and chat pane, the log viewer overlay, and the
// status bar.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/archive"
	"github.com/jeranaias/folio-tui/internal/config"
	"github.com/jeranaias/folio-tui/internal/gate"
	"github.com/jeranaias/folio-tui/internal/ui/chat"
	"github.com/jeranaias/folio-tui/internal/ui/components"
	"github.com/jeranaias/folio-tui/internal/ui/logs"
	"github.com/jeranaias/folio-tui/internal/ui/panels"
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// view identifies what the main area is showing.
type view int

const (
	viewChat view = iota
	viewPanel
)

// App is the root Bubble Tea model.
type App struct {
	theme *styles.Theme

	dock      *components.Dock
	statusbar *components.StatusBar

	chat   chat.Model
	panels panels.Model
	logs   logs.Model

	view        view
	logsVisible bool

	width  int
	height int
}

// NewApp wires the application from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	theme := themeFromConfig(cfg)

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL:         cfg.Backend.APIURL,
		Timeout:         cfg.Timeout(),
		DefaultLogLimit: cfg.Backend.LogLimit,
	})

	var store *archive.Store
	if cfg.Logs.ArchivePath != "" {
		// Archive failures degrade to a viewer without the archive key.
		store, _ = archive.Open(cfg.Logs.ArchivePath)
	}

	items := []components.DockItem{
		{ID: "chat", Label: "chat", Key: "c"},
	}
	for i, p := range panels.All() {
		items = append(items, components.DockItem{
			ID:    p.ID,
			Label: p.Title,
			Key:   string(rune('1' + i)),
		})
	}

	app := &App{
		theme:     theme,
		dock:      components.NewDock(theme, items),
		statusbar: components.NewStatusBar(theme),
		chat:      chat.New(client, theme, cfg.HealthInterval()),
		panels:    panels.New(theme, cfg.UI.WordWrap),
		logs:      logs.New(client, gate.New(cfg.Logs.Password), store, cfg.Backend.LogLimit, theme),
		view:      viewChat,
	}
	app.statusbar.SessionID = client.SessionID()
	return app, nil
}

func themeFromConfig(cfg *config.Config) *styles.Theme {
	switch cfg.UI.Theme {
	case "dark":
		return styles.New(termenv.ColorProfile(), true)
	case "light":
		return styles.New(termenv.ColorProfile(), false)
	default:
		return styles.Default()
	}
}

// Init starts the chat subsystem (which owns connectivity probing).
func (a App) Init() tea.Cmd {
	return a.chat.Init()
}

// Update routes Bubble Tea messages.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		return a, nil

	case tea.KeyMsg:
		if handled, model, cmd := a.handleGlobalKey(msg); handled {
			return model, cmd
		}

	case chat.OpenPanelMsg:
		// The panel open channel: backend modal actions and explicit
		// explore keypresses both land here.
		a.showPanel(msg.PanelID)
		return a, nil

	case chat.ToggleLogsMsg:
		return a.toggleLogs()

	case logs.FetchedMsg, logs.AnalyticsMsg, logs.ClearedMsg, logs.ArchivedMsg:
		// Results of the viewer's own commands; the chat model has no
		// business seeing these.
		var cmd tea.Cmd
		a.logs, cmd = a.logs.Update(msg)
		return a, cmd

	case chat.HealthStatusMsg:
		// Observe for the status bar, then let the chat model consume it.
		if msg.Healthy {
			a.statusbar.Connectivity = components.ConnectivityConnected
		} else {
			a.statusbar.Connectivity = components.ConnectivityDisconnected
		}
	}

	return a.route(msg)
}

// handleGlobalKey processes keys that work everywhere.
func (a App) handleGlobalKey(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	key := msg.String()

	// The log overlay captures everything except its close keys.
	if a.logsVisible {
		if key == "ctrl+c" {
			return true, a, tea.Quit
		}
		if key == "esc" && !a.logs.InDetail() {
			a.logsVisible = false
			return true, a, nil
		}
		var cmd tea.Cmd
		a.logs, cmd = a.logs.Update(msg)
		return true, a, cmd
	}

	switch key {
	case "ctrl+c":
		return true, a, tea.Quit

	case "ctrl+l":
		// Goes through the mediator message so the toggle has a single
		// entry point regardless of who requests it.
		return true, a, func() tea.Msg { return chat.ToggleLogsMsg{} }

	case "ctrl+t":
		a.theme.Toggle()
		return true, a, nil

	case "esc":
		if a.view == viewPanel {
			a.showChat()
			return true, a, nil
		}

	case "ctrl+n":
		a.activate(a.dock.Next())
		return true, a, nil

	case "ctrl+p":
		a.activate(a.dock.Prev())
		return true, a, nil
	}

	// Number keys and "c" jump straight to a dock item, but only when
	// the chat input is not the target of plain typing.
	if a.view == viewPanel {
		switch key {
		case "c":
			a.showChat()
			return true, a, nil
		case "1", "2", "3", "4", "5":
			idx := int(key[0] - '1')
			all := panels.All()
			if idx < len(all) {
				a.showPanel(all[idx].ID)
			}
			return true, a, nil
		}
	}

	return false, a, nil
}

// route forwards a message to the active child model.
func (a App) route(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	// Chat always receives non-key messages so in-flight sends and
	// health probes resolve while a panel is up.
	if _, isKey := msg.(tea.KeyMsg); !isKey || a.view == viewChat {
		a.chat, cmd = a.chat.Update(msg)
		cmds = append(cmds, cmd)
	}

	if a.view == viewPanel {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			a.panels, cmd = a.panels.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	a.statusbar.Sending = a.chat.Sending()
	a.statusbar.SessionID = a.chat.SessionID()
	a.statusbar.Connectivity = a.chat.Connectivity()

	return a, tea.Batch(cmds...)
}

func (a *App) activate(id string) {
	if id == "chat" {
		a.showChat()
		return
	}
	a.showPanel(id)
}

func (a *App) showChat() {
	a.view = viewChat
	a.dock.SetActive("chat")
}

func (a *App) showPanel(id string) {
	a.panels.Show(id)
	if a.panels.Current() == id {
		a.view = viewPanel
		a.dock.SetActive(id)
	}
}

func (a App) toggleLogs() (tea.Model, tea.Cmd) {
	if a.logsVisible {
		a.logsVisible = false
		return a, nil
	}
	a.logsVisible = true
	var cmd tea.Cmd
	a.logs, cmd = a.logs.Activate()
	return a, cmd
}

// layout distributes the window across dock, body, and status bar.
func (a *App) layout() {
	bodyHeight := a.height - 3
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	a.dock.SetWidth(a.width)
	a.statusbar.SetWidth(a.width)
	a.chat.SetSize(a.width, bodyHeight)
	a.panels.SetSize(a.width, bodyHeight)
	a.logs.SetSize(a.width, bodyHeight)
	a.theme.SetSize(a.width, a.height)
}

// View renders the full screen.
func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	var body string
	switch {
	case a.logsVisible:
		body = a.logs.View()
	case a.view == viewPanel:
		body = a.panels.View()
	default:
		body = a.chat.View()
	}

	a.statusbar.Shortcuts = a.shortcuts()

	return lipgloss.JoinVertical(lipgloss.Left,
		a.dock.View(),
		body,
		a.statusbar.View(),
	)
}

func (a App) shortcuts() []components.Shortcut {
	if a.logsVisible {
		return []components.Shortcut{
			{Key: "esc", Desc: "close"},
			{Key: "r", Desc: "refresh"},
			{Key: "a", Desc: "archive"},
		}
	}
	if a.view == viewPanel {
		return []components.Shortcut{
			{Key: "esc", Desc: "chat"},
			{Key: "ctrl+n", Desc: "next"},
			{Key: "ctrl+l", Desc: "logs"},
		}
	}
	return []components.Shortcut{
		{Key: "tab", Desc: "suggest"},
		{Key: "ctrl+r", Desc: "clear"},
		{Key: "ctrl+l", Desc: "logs"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}
