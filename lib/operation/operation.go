// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package operation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/repodef"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/statestore"
)

// Executor runs a resolved statement list against the repository's
// registry database. Implemented by pgexec.Executor; tests substitute
// fakes.
type Executor interface {
	Execute(ctx context.Context, statements []string) error
}

// Operation is one named unit of repository administration work.
// Operation names are unique within a repository's operation tree;
// nested operations include their parent names, dash-separated, by
// convention.
type Operation interface {
	// Name identifies the operation in logs, the status store, and
	// "run <name>" invocations.
	Name() string

	// Run performs the operation. Implementations must honor
	// tool.DryRun.
	Run(ctx context.Context, tool *Tool) error

	// Status reports the operation's recorded progress.
	Status(ctx context.Context, tool *Tool) (statestore.State, error)
}

// container is implemented by composite operations that nest children.
type container interface {
	Children() []Operation
}

// Flatten returns op followed by all operations nested within it,
// depth-first.
func Flatten(op Operation) []Operation {
	out := []Operation{op}
	if group, ok := op.(container); ok {
		for _, child := range group.Children() {
			out = append(out, Flatten(child)...)
		}
	}
	return out
}

// Tool carries the shared state for all operations on one repository at
// one site. Construct it once per invocation and pass it explicitly.
type Tool struct {
	Repo     repodef.Repo
	Site     repodef.Site
	Hooks    *hookcfg.Hooks
	Executor Executor
	States   *statestore.Store
	Logger   *slog.Logger
	DryRun   bool
}

// RunOperation runs one operation and records its outcome in the status
// store. Dry runs leave the store untouched.
func (t *Tool) RunOperation(ctx context.Context, op Operation) error {
	t.Logger.Info("running operation", "operation", op.Name(), "repo", t.Repo.String(), "dry_run", t.DryRun)

	runErr := op.Run(ctx, t)

	if !t.DryRun && t.States != nil {
		state, detail := statestore.StateDone, ""
		if runErr != nil {
			state, detail = statestore.StateFailed, runErr.Error()
		}
		if err := t.States.Set(ctx, t.Repo, op.Name(), state, detail); err != nil {
			if runErr != nil {
				return fmt.Errorf("%w (additionally, recording state failed: %v)", runErr, err)
			}
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("operation %s: %w", op.Name(), runErr)
	}
	return nil
}

// recordedStatus reads an operation's state from the status store,
// defaulting to pending when no store is configured.
func recordedStatus(ctx context.Context, tool *Tool, name string) (statestore.State, error) {
	if tool.States == nil {
		return statestore.StatePending, nil
	}
	record, err := tool.States.Get(ctx, tool.Repo, name)
	if err != nil {
		return statestore.StatePending, err
	}
	return record.State, nil
}

// Group is a composite operation that runs its children in order,
// stopping at the first failure.
type Group struct {
	name     string
	children []Operation
}

// NewGroup returns a group with the given name and children.
func NewGroup(name string, children ...Operation) *Group {
	return &Group{name: name, children: children}
}

func (g *Group) Name() string { return g.name }

// Children returns the nested operations in run order.
func (g *Group) Children() []Operation { return g.children }

func (g *Group) Run(ctx context.Context, tool *Tool) error {
	for _, child := range g.children {
		if err := tool.RunOperation(ctx, child); err != nil {
			return err
		}
	}
	return nil
}

// Status reports done when every child is done, failed when any child
// failed, and pending otherwise.
func (g *Group) Status(ctx context.Context, tool *Tool) (statestore.State, error) {
	state := statestore.StateDone
	for _, child := range g.children {
		childState, err := child.Status(ctx, tool)
		if err != nil {
			return statestore.StatePending, err
		}
		switch childState {
		case statestore.StateFailed:
			return statestore.StateFailed, nil
		case statestore.StatePending:
			state = statestore.StatePending
		}
	}
	return state, nil
}

// PrintStatus writes the status of an operation tree to w, one line per
// operation, children indented under their parents.
func PrintStatus(ctx context.Context, tool *Tool, op Operation, w io.Writer, indent int) error {
	state, err := op.Status(ctx, tool)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat(" ", indent), op.Name(), state)
	if group, ok := op.(container); ok {
		for _, child := range group.Children() {
			if err := PrintStatus(ctx, tool, child, w, indent+2); err != nil {
				return err
			}
		}
	}
	return nil
}
