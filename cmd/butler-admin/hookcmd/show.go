// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcmd

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/admin"
	"github.com/lsst-dm/gen3-shared-repo-admin/cmd/butler-admin/cli"
)

// showCommand returns the "show" subcommand: print the merged hook
// configuration for a repository.
func showCommand() *cli.Command {
	var params admin.Params

	return &cli.Command{
		Name:    "show",
		Summary: "Print the merged hook configuration",
		Description: `Print the fully-merged hook configuration for a repository as YAML.
This is the configuration the resolver actually sees after layering
the base file and the repository-specific fragments, useful for
auditing what a fragment override actually did.`,
		Usage: "butler-admin hooks show [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			params.Register(flags)
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("usage: butler-admin hooks show [flags]")
			}

			cfg, err := loadMerged(&params)
			if err != nil {
				return err
			}

			encoder := yaml.NewEncoder(os.Stdout)
			encoder.SetIndent(2)
			if err := encoder.Encode(cfg); err != nil {
				return fmt.Errorf("encoding merged configuration: %w", err)
			}
			return encoder.Close()
		},
	}
}
