// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/folio-tui/internal/api"
	"github.com/jeranaias/folio-tui/internal/archive"
	"github.com/jeranaias/folio-tui/internal/config"
	"github.com/jeranaias/folio-tui/internal/gate"
	"github.com/jeranaias/folio-tui/internal/util"
)

// HandleLogs runs the log tooling: show, analytics, archive, clear.
// Every path passes the access gate first.
func HandleLogs(args []string) error {
	parser := NewArgParser(args)
	cfg := config.Global()

	client := api.NewClientWithConfig(&api.ClientConfig{
		BaseURL: cfg.Backend.APIURL,
		Timeout: cfg.Timeout(),
	})

	if err := promptGate(cfg.Logs.Password); err != nil {
		return err
	}

	session := parser.Flag("session")

	switch parser.Subcommand() {
	case "", "show":
		return logsShow(client, session, parser.FlagIntOrDefault("limit", cfg.Backend.LogLimit))
	case "analytics":
		return logsAnalytics(client, parser.FlagIntOrDefault("days", 30))
	case "archive":
		return logsArchive(client, cfg.Logs.ArchivePath, session, parser.FlagIntOrDefault("limit", cfg.Backend.LogLimit))
	case "clear":
		return logsClear(client, session, parser.BoolFlag("yes"))
	default:
		return fmt.Errorf("unknown logs subcommand %q", parser.Subcommand())
	}
}

// promptGate verifies the log password interactively. Retries are
// unlimited; ctrl+c aborts.
func promptGate(secret string) error {
	g := gate.New(secret)
	if !g.Configured() {
		return gate.ErrNotConfigured
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	for {
		pass, err := line.PasswordPrompt("log password: ")
		if err != nil {
			return fmt.Errorf("aborted")
		}
		if err := g.Verify(pass); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			continue
		}
		return nil
	}
}

func logsShow(client *api.Client, session string, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logs, err := client.GetChatLogs(ctx, session, limit)
	if err != nil {
		return err
	}

	fmt.Println(welcomeStyle.Render(fmt.Sprintf("chat logs (%d of %d)", len(logs.Logs), logs.TotalCount)))
	for _, entry := range logs.Logs {
		ts := "unknown time"
		if !entry.Timestamp.IsZero() {
			ts = entry.Timestamp.Format("2006-01-02 15:04")
		}
		fmt.Printf("%s  %-12s  %s\n",
			infoStyle.Render(ts),
			util.ShortID(entry.SessionID, 12),
			util.FirstLine(entry.UserQuery),
		)
	}
	return nil
}

func logsAnalytics(client *api.Client, days int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a, err := client.GetChatAnalytics(ctx, days)
	if err != nil {
		return err
	}

	fmt.Println(welcomeStyle.Render(fmt.Sprintf("last %d days", days)))
	fmt.Printf("queries:        %d\n", a.TotalQueries)
	fmt.Printf("sessions:       %d\n", a.UniqueSessions)
	fmt.Printf("avg response:   %.2fs\n", a.AvgResponseTime)
	if a.FirstQuery != "" {
		fmt.Printf("first query:    %s\n", a.FirstQuery)
	}
	if a.LastQuery != "" {
		fmt.Printf("last query:     %s\n", a.LastQuery)
	}
	for _, q := range a.PopularQueries {
		fmt.Printf("  %3dx  %s\n", q.Count, q.Query)
	}
	return nil
}

func logsArchive(client *api.Client, path, session string, limit int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logs, err := client.GetChatLogs(ctx, session, limit)
	if err != nil {
		return err
	}
	if len(logs.Logs) == 0 {
		fmt.Println(infoStyle.Render("nothing to archive"))
		return nil
	}

	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	saved, err := store.Save(ctx, logs.Logs)
	if err != nil {
		return err
	}
	total, _ := store.Count(ctx)
	fmt.Printf("archived %d logs to %s (%d total)\n", saved, store.Path(), total)
	return nil
}

func logsClear(client *api.Client, session string, confirmed bool) error {
	if !confirmed {
		scope := "all remote logs"
		if session != "" {
			scope = "logs for " + session
		}
		line := liner.NewLiner()
		line.SetCtrlCAborts(true)
		answer, err := line.Prompt("wipe " + scope + "? [y/N] ")
		line.Close()
		if err != nil || (answer != "y" && answer != "Y") {
			fmt.Fprintln(os.Stderr, "cancelled")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.ClearChatLogs(ctx, session); err != nil {
		return err
	}
	fmt.Println("logs cleared")
	return nil
}
