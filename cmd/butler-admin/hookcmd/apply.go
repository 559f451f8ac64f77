// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcmd

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/admin"
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/operation"
)

// applyCommand returns the "apply" subcommand: resolve and execute
// hooks for explicitly-named tables. This is the manual counterpart of
// the table-creation path, used when a table was created outside the
// normal flow or to re-provision after a configuration fix.
func applyCommand() *cli.Command {
	var params admin.Params

	return &cli.Command{
		Name:    "apply",
		Summary: "Resolve and execute hooks for named tables",
		Description: `Resolve the hooks for each named table and execute them against the
repository's registry database, in order, one transaction per table.
The first failing table stops the command; its statements are rolled
back as a unit.

Ad-hoc applies do not touch the recorded operation state; use "run"
for tracked provisioning.`,
		Usage: "butler-admin hooks apply <category> <table>... [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("apply", pflag.ContinueOnError)
			params.Register(flags)
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Provision a dynamic tag table",
				Command:     "butler-admin hooks apply --repo main --site ncsa dynamic dataset_tags_00042",
			},
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("usage: butler-admin hooks apply <category> <table>...")
			}

			logger := cli.NewLogger(params.Verbose)
			tool, cleanup, err := params.NewTool(logger, false)
			if err != nil {
				return err
			}
			defer cleanup()

			apply := &operation.ApplyHooks{
				OpName:   "hooks-apply",
				Category: parseCategory(args[0]),
				Tables:   args[1:],
			}
			return apply.Run(context.Background(), tool)
		},
	}
}
