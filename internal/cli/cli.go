// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the folio command line surface: the plain
// chat REPL, the log tooling, and the local dev backend.
package cli

import (
	"fmt"
	"os"
)

// Version information (set at build time by main)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command identifies the top-level subcommand.
type Command int

const (
	CmdTUI   Command = iota // Default: full-screen interface
	CmdChat                 // Plain REPL
	CmdLogs                 // Log access tooling
	CmdServe                // Local mock backend
	CmdVersion
	CmdHelp
)

// Parse splits os.Args into a command and its remaining arguments.
func Parse() (Command, []string) {
	if len(os.Args) < 2 {
		return CmdTUI, nil
	}

	rest := os.Args[2:]
	switch os.Args[1] {
	case "chat":
		return CmdChat, rest
	case "logs":
		return CmdLogs, rest
	case "serve":
		return CmdServe, rest
	case "version", "--version", "-v":
		return CmdVersion, rest
	case "help", "--help", "-h":
		return CmdHelp, rest
	default:
		// Unknown tokens fall through to the TUI so flags like
		// --config keep working.
		return CmdTUI, os.Args[1:]
	}
}

// HandleVersion prints build information.
func HandleVersion() {
	fmt.Printf("folio %s (%s, built %s)\n", Version, GitCommit, BuildDate)
}

// HandleHelp prints command usage.
func HandleHelp() {
	fmt.Print(`folio - terminal client for blake's portfolio chat

usage:
  folio              launch the full-screen interface
  folio chat         plain line-based chat
  folio logs         inspect, archive, or clear chat logs
  folio serve        run a local mock backend
  folio version      print build information

logs subcommands (show/archive/clear accept --session ID):
  folio logs show       [--limit N]   list recent logs (default)
  folio logs analytics  [--days N]    usage aggregate
  folio logs archive    [--limit N]   save logs to the local archive
  folio logs clear      [--yes]       wipe remote logs

serve flags:
  folio serve [--port N]              listen port (default 3501)

environment:
  FOLIO_CONFIG        config file path (default ~/.folio/config.toml)
  FOLIO_API_URL       backend base url
  FOLIO_LOG_PASSWORD  log access password
`)
}
