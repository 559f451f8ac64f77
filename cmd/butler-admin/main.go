// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Command butler-admin is the administrative interface for major shared
// data repositories: it provisions post-create hooks (roles, grants,
// row-level-security policies) against a repository's registry
// database and tracks operation progress across invocations.
package main

import (
	"fmt"
	"os"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/hookcmd"
)

func main() {
	root := &cli.Command{
		Name:    "butler-admin",
		Summary: "Administrative interface for major shared data repositories",
		Description: `Administrative interface for major shared data repositories.

Repositories and sites are defined in <config-dir>/definitions.yaml;
post-create hook configurations live under <config-dir>/hooks/ as a
base layer plus per-repository fragments. Most commands select a
repository with --repo (plus optional --date) and a site with --site.`,
		Subcommands: []*cli.Command{
			hookcmd.Command(),
			runCommand(),
			statusCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Preview the statements for a static table",
				Command:     "butler-admin hooks resolve --repo main static collection",
			},
			{
				Description: "Provision a new repository version, dry run first",
				Command:     "butler-admin run --repo main --date 20260830 --site ncsa --dry-run",
			},
			{
				Description: "Check provisioning progress",
				Command:     "butler-admin status --repo main --site ncsa",
			},
		},
	}

	if err := root.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "butler-admin: %v\n", err)
		os.Exit(1)
	}
}
