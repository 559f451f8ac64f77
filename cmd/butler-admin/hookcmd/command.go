// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hookcmd implements the butler-admin hooks subcommands for
// inspecting, validating, and applying post-create hook configurations.
//
// The merged configuration for a repository is assembled from
// <config-dir>/hooks/base plus per-repository and per-version
// fragments; "hooks show" prints the merged result, "hooks resolve"
// previews the statements for one table, and "hooks apply" executes
// them against the repository's registry database.
package hookcmd

import (
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hooks"
)

// Command returns the "hooks" command group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "hooks",
		Summary: "Inspect and apply post-create hooks",
		Description: `Inspect, validate, and apply post-create hook configurations.

Hooks are the SQL statements (grants, row-level-security policies) run
against every registry table immediately after its creation. Tables
fall in two categories: static tables exist from repository creation
and dispatch on exact name; dynamic tables are created on demand and
dispatch on name prefix.`,
		Subcommands: []*cli.Command{
			resolveCommand(),
			showCommand(),
			validateCommand(),
			applyCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Preview the statements for the collection table",
				Command:     "butler-admin hooks resolve --repo main static collection",
			},
			{
				Description: "Validate a hook configuration fragment",
				Command:     "butler-admin hooks validate config/hooks/dc2.yaml",
			},
			{
				Description: "Apply dynamic hooks to a freshly created tag table",
				Command:     "butler-admin hooks apply --repo main --site ncsa dynamic dataset_tags_00042",
			},
		},
	}
}

// parseCategory maps a positional category argument onto the resolver's
// category type. The resolver itself rejects unknown categories; this
// keeps the CLI error in the resolver's words.
func parseCategory(arg string) hooks.Category {
	return hooks.Category(arg)
}
