// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pgexec executes resolved hook statement lists against a
// repository's registry database.
//
// Statements run in order inside a single transaction: either every
// statement in the list takes effect or none do. The first failing
// statement aborts the transaction and is reported with its position
// and text, so a bad GRANT or POLICY statement never leaves a table
// half-provisioned.
package pgexec

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5"
)

// Executor runs statement lists against one Postgres database.
type Executor struct {
	uri    string
	logger *slog.Logger
}

// New returns an executor for the database at uri (a libpq-style
// connection URI, typically from Site.DBURI).
func New(uri string, logger *slog.Logger) (*Executor, error) {
	if uri == "" {
		return nil, fmt.Errorf("pgexec: database URI is required")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Executor{uri: uri, logger: logger}, nil
}

// Execute runs the statements in order inside one transaction,
// stopping at the first failure. A nil or empty list is a no-op and
// does not connect.
func (e *Executor) Execute(ctx context.Context, statements []string) error {
	if len(statements) == 0 {
		return nil
	}

	conn, err := pgx.Connect(ctx, e.uri)
	if err != nil {
		return fmt.Errorf("pgexec: connecting: %w", err)
	}
	defer conn.Close(context.Background())

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("pgexec: begin: %w", err)
	}
	defer tx.Rollback(context.Background())

	for i, statement := range statements {
		e.logger.Debug("executing statement", "index", i, "sql", statement)
		if _, err := tx.Exec(ctx, statement); err != nil {
			return fmt.Errorf("pgexec: statement %d of %d (%q): %w", i+1, len(statements), statement, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("pgexec: commit: %w", err)
	}

	e.logger.Info("statements applied", "count", len(statements))
	return nil
}
