// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/admin"
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hooks"
)

// resolveCommand returns the "resolve" subcommand: print the statements
// a table would receive, without executing anything.
func resolveCommand() *cli.Command {
	var params admin.Params

	return &cli.Command{
		Name:    "resolve",
		Summary: "Print the resolved statements for a table",
		Description: `Resolve the merged hook configuration for one table and print the
resulting statements to stdout, one per line, in execution order.
Nothing is executed; no database connection is made.`,
		Usage: "butler-admin hooks resolve <category> <table> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
			params.Register(flags)
			return flags
		},
		Examples: []cli.Example{
			{
				Description: "Statements for a static table with no specific entry",
				Command:     "butler-admin hooks resolve --repo main static tract",
			},
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("usage: butler-admin hooks resolve <category> <table>")
			}

			cfg, err := loadMerged(&params)
			if err != nil {
				return err
			}

			statements, err := hooks.Resolve(&cfg.PostCreateHooks, parseCategory(args[0]), args[1])
			if err != nil {
				return err
			}
			for _, statement := range statements {
				fmt.Fprintln(os.Stdout, statement)
			}
			return nil
		},
	}
}

// loadMerged assembles the merged hook configuration for the selected
// repository.
func loadMerged(params *admin.Params) (*hookcfg.Config, error) {
	defs, err := params.Definitions()
	if err != nil {
		return nil, err
	}
	repo, err := params.SelectRepo(defs)
	if err != nil {
		return nil, err
	}
	return params.MergedHooks(repo)
}
