// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jeranaias/folio-tui/internal/devserver"
)

// HandleServe runs the local mock backend until interrupted.
func HandleServe(args []string) error {
	parser := NewArgParser(args)
	port := parser.FlagIntOrDefault("port", devserver.DefaultPort)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return devserver.NewServer(port).Start(ctx)
}
