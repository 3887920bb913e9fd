// folio - a terminal client for blake's portfolio chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/folio-tui/internal/cli"
	"github.com/jeranaias/folio-tui/internal/config"
	"github.com/jeranaias/folio-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	loadConfig()

	cmd, args := cli.Parse()
	switch cmd {
	case cli.CmdTUI:
		runTUI(args)
	case cli.CmdChat:
		cli.HandleChat(args)
	case cli.CmdLogs:
		fail(cli.HandleLogs(args))
	case cli.CmdServe:
		fail(cli.HandleServe(args))
	case cli.CmdVersion:
		cli.HandleVersion()
	case cli.CmdHelp:
		cli.HandleHelp()
	}
}

// loadConfig reads the config file, applies environment overrides, and
// installs the result globally. A missing file runs on defaults.
func loadConfig() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobal(cfg)
}

func runTUI(args []string) {
	parser := cli.NewArgParser(args)

	cfg := config.Global()
	if url := parser.Flag("api-url"); url != "" {
		cfg.Backend.APIURL = url
	}

	app, err := ui.NewApp(cfg)
	if err != nil {
		fail(err)
	}

	// Reload config edits live while the interface runs.
	if watcher, werr := config.NewWatcher(nil); werr == nil {
		if werr = watcher.Watch(); werr == nil {
			defer watcher.Close()
		}
	}

	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
