// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates the structured logger for command execution. Human
// operators at a terminal get text output; pipes and batch jobs get
// JSON. verbose lowers the level from Info to Debug, which includes
// every SQL statement the executor runs.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
