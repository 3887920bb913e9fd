// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/config"
	"github.com/jeranaias/folio-tui/internal/explore"
	"github.com/jeranaias/folio-tui/internal/model"
	"github.com/jeranaias/folio-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Amber).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Gold).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)

	ctaStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides input history and line editing for the plain REPL.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI with persisted input history.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.Dir()
	if err != nil {
		dir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(dir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatCLI) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line, recording non-empty input to history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	if err := os.MkdirAll(filepath.Dir(c.historyFile), 0700); err == nil {
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// CHAT REPL
// =============================================================================

// HandleChat runs the plain line-based chat loop.
func HandleChat(args []string) {
	cfg := config.Global()
	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.APIURL,
		Timeout: cfg.Timeout(),
	})

	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		width = w
	}
	wrap := lipgloss.NewStyle().Width(min(width-2, 100))

	cli := NewChatCLI()
	defer cli.Close()

	fmt.Println(welcomeStyle.Render("folio chat"))
	fmt.Println(infoStyle.Render("session " + client.SessionID()))
	fmt.Println(infoStyle.Render("/clear resets the conversation, /quit exits"))

	probeCtx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	reachable := client.HealthCheck(probeCtx)
	cancel()
	if !reachable {
		fmt.Println(errorStyle.Render("warning: backend not reachable at " + client.BaseURL()))
	}
	fmt.Println()

	transcript := model.NewTranscript()

	for {
		input, err := cli.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				fmt.Println(infoStyle.Render("bye"))
				return
			}
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "/") {
			if done := handleReplCommand(trimmed, client, transcript); done {
				return
			}
			continue
		}

		recent := transcript.Context(model.ContextWindow)
		transcript.Append(model.NewUserMessage(trimmed))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		reply, err := client.Chat(ctx, trimmed, recent)
		cancel()
		if err != nil {
			fmt.Println(errorStyle.Render("error: " + err.Error()))
			continue
		}

		answer := explore.Strip(reply.Message)
		transcript.Append(model.NewAssistantMessage(answer))
		fmt.Println(wrap.Render(answer))

		if action, ok := explore.Scan(reply.Message); ok {
			fmt.Println(ctaStyle.Render("-> more under \"" + action.Label + "\" in the full interface (folio)"))
		}
		if len(reply.Suggestions) > 0 {
			fmt.Println(infoStyle.Render("try: " + strings.Join(reply.Suggestions, " | ")))
		}
		fmt.Println()
	}
}

// handleReplCommand runs one slash command. Returns true to exit.
func handleReplCommand(cmd string, client *api.Client, transcript *model.Transcript) bool {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/quit", "/q", "/exit":
		fmt.Println(infoStyle.Render("bye"))
		return true

	case "/clear", "/c":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := client.ClearChat(ctx)
		cancel()
		if err != nil {
			fmt.Println(errorStyle.Render("clear failed: " + err.Error()))
			return false
		}
		transcript.Clear()
		fmt.Println(infoStyle.Render("conversation cleared, new session " + client.SessionID()))

	case "/help", "/h", "/?":
		fmt.Println(infoStyle.Render("/clear  reset the conversation\n/quit   exit\n/help   this text"))

	default:
		fmt.Println(errorStyle.Render("unknown command " + cmd))
	}
	return false
}
