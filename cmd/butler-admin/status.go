// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/admin"
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/operation"
)

// statusCommand returns the "status" command, which reports recorded
// operation progress for a repository.
func statusCommand() *cli.Command {
	var params admin.Params

	return &cli.Command{
		Name:    "status",
		Summary: "Report setup progress for a repository",
		Description: `Report the recorded state of every setup operation for a repository
version, indented to show the operation tree. Operations that have
never run report as pending.`,
		Usage: "butler-admin status [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("status", pflag.ContinueOnError)
			params.Register(flags)
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: butler-admin status [flags]")
			}

			logger := cli.NewLogger(params.Verbose)
			tool, cleanup, err := params.NewTool(logger, true)
			if err != nil {
				return err
			}
			defer cleanup()

			root := admin.Operations(tool.Repo)
			fmt.Fprintf(os.Stdout, "%s @ %s\n", tool.Repo, tool.Site.Name)
			return operation.PrintStatus(context.Background(), tool, root, os.Stdout, 2)
		},
	}
}
