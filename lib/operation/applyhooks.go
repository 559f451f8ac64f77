// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package operation

import (
	"context"
	"fmt"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hooks"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/statestore"
)

// ApplyHooks resolves and executes post-create hooks for a set of
// tables. Tables are processed in order; the first table whose hooks
// fail stops the operation, and no statement for that table takes
// effect (the executor runs each table's statements in one
// transaction).
type ApplyHooks struct {
	// OpName is the operation's unique name (e.g. "hooks-static").
	OpName string

	// Category selects the hook subtree (hooks.Static or hooks.Dynamic).
	Category hooks.Category

	// Tables are the table names to provision, in order.
	Tables []string
}

func (a *ApplyHooks) Name() string { return a.OpName }

func (a *ApplyHooks) Run(ctx context.Context, tool *Tool) error {
	for _, table := range a.Tables {
		statements, err := hooks.Resolve(tool.Hooks, a.Category, table)
		if err != nil {
			return fmt.Errorf("resolving %s hooks for %s: %w", a.Category, table, err)
		}

		if tool.DryRun {
			for _, statement := range statements {
				tool.Logger.Info("dry run: would execute", "table", table, "sql", statement)
			}
			continue
		}

		if err := tool.Executor.Execute(ctx, statements); err != nil {
			return fmt.Errorf("applying %s hooks to %s: %w", a.Category, table, err)
		}
		tool.Logger.Info("hooks applied", "table", table, "category", string(a.Category), "statements", len(statements))
	}
	return nil
}

func (a *ApplyHooks) Status(ctx context.Context, tool *Tool) (statestore.State, error) {
	return recordedStatus(ctx, tool, a.OpName)
}
