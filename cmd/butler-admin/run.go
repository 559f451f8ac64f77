// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/admin"
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/operation"
)

// runCommand returns the "run" command, which executes the repository's
// operation tree (or one named operation within it).
func runCommand() *cli.Command {
	var params admin.Params

	return &cli.Command{
		Name:    "run",
		Summary: "Run repository setup operations",
		Description: `Run the setup operations for a repository version.

Without arguments the full operation tree runs in order, stopping at
the first failure. With an operation name only that operation (and its
children, for groups) runs. Outcomes are recorded in the state
database so "status" can report progress; --dry-run logs the work
without modifying the repository or the recorded state.`,
		Usage: "butler-admin run [operation] [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
			params.Register(flags)
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Run everything for the newest version of main",
				Command:     "butler-admin run --repo main --site ncsa",
			},
			{
				Description: "Re-run only the static hook provisioning",
				Command:     "butler-admin run hooks-static --repo main --site ncsa",
			},
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("usage: butler-admin run [operation] [flags]")
			}

			logger := cli.NewLogger(params.Verbose)
			tool, cleanup, err := params.NewTool(logger, true)
			if err != nil {
				return err
			}
			defer cleanup()

			root := admin.Operations(tool.Repo)
			target := root
			if len(args) == 1 {
				target, err = findOperation(root, args[0])
				if err != nil {
					return err
				}
			}

			return tool.RunOperation(context.Background(), target)
		},
	}
}

// findOperation locates a named operation anywhere in the tree.
func findOperation(root operation.Operation, name string) (operation.Operation, error) {
	var names []string
	for _, op := range operation.Flatten(root) {
		if op.Name() == name {
			return op, nil
		}
		names = append(names, op.Name())
	}
	return nil, fmt.Errorf("unknown operation %q (have: %s)", name, strings.Join(names, ", "))
}
