// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
)

// validateCommand returns the "validate" subcommand: structural checks
// on a single hook configuration file.
func validateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Summary: "Validate a hook configuration file",
		Description: `Validate a single hook configuration file (YAML or JSONC). Checks
structure only: dispatch tables on the right categories, no empty
names, no overlapping by_prefix keys. Snippet references are checked
at resolution time, when the merged layers determine which snippets
are reachable; a fragment may legitimately reference snippets the
base layer defines, or define snippets the base layer references.`,
		Usage: "butler-admin hooks validate <file>",
		Examples: []cli.Example{
			{
				Description: "Validate the base configuration",
				Command:     "butler-admin hooks validate config/hooks/base.yaml",
			},
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("usage: butler-admin hooks validate <file>")
			}

			path := args[0]
			cfg, err := hookcfg.LoadFile(path)
			if err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				var count int
				for _, issue := range flattenJoined(err) {
					fmt.Fprintf(os.Stderr, "  - %v\n", issue)
					count++
				}
				return fmt.Errorf("%s: %d validation issue(s) found", path, count)
			}

			fmt.Fprintf(os.Stdout, "%s: valid\n", path)
			return nil
		},
	}
}

// flattenJoined unwraps an errors.Join result into its parts; a plain
// error comes back as a single-element slice.
func flattenJoined(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
