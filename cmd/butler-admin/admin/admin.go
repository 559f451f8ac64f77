// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package admin wires command-line parameters into the shared state the
// butler-admin subcommands operate on: the repository and site
// definitions, the merged hook configuration, and a fully-constructed
// operation.Tool.
package admin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hooks"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/operation"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/pgexec"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/repodef"
	"github.com/lsst-dm/gen3-shared-repo-admin/lib/statestore"
)

// Params holds the flags shared by every subcommand that touches a
// repository. The date and site default from the environment so
// long-running admin sessions don't repeat them on every invocation.
type Params struct {
	Repo      string
	Date      string
	Site      string
	ConfigDir string
	StateDB   string
	DryRun    bool
	Verbose   bool
}

// Register adds the shared flags to a flag set.
func (p *Params) Register(flags *pflag.FlagSet) {
	flags.StringVar(&p.Repo, "repo", "", "repository name")
	flags.StringVar(&p.Date, "date", os.Getenv("LSST_REPO_ADMIN_DATE"),
		"repository version date, YYYYMMDD (latest when empty; env LSST_REPO_ADMIN_DATE)")
	flags.StringVar(&p.Site, "site", os.Getenv("LSST_REPO_ADMIN_SITE"),
		"site name (env LSST_REPO_ADMIN_SITE)")
	flags.StringVar(&p.ConfigDir, "config-dir", "config",
		"directory holding definitions.yaml and the hooks/ fragments")
	flags.StringVar(&p.StateDB, "state-db", "",
		"operation state database path (default <config-dir>/state.sqlite)")
	flags.BoolVarP(&p.DryRun, "dry-run", "n", false,
		"log what would be done without modifying the repository")
	flags.BoolVar(&p.Verbose, "verbose", false, "enable debug logging")
}

// Definitions loads the repository and site definitions file.
func (p *Params) Definitions() (*repodef.Definitions, error) {
	return repodef.LoadDefinitions(filepath.Join(p.ConfigDir, "definitions.yaml"))
}

// SelectRepo resolves the --repo/--date flags against the definitions.
func (p *Params) SelectRepo(defs *repodef.Definitions) (repodef.Repo, error) {
	if p.Repo == "" {
		return repodef.Repo{}, fmt.Errorf("--repo is required")
	}
	return defs.Repo(p.Repo, p.Date)
}

// MergedHooks loads and merges the hook configuration layers that apply
// to a repository (base, per-name, per-version), then validates the
// result.
func (p *Params) MergedHooks(repo repodef.Repo) (*hookcfg.Config, error) {
	candidates := repodef.HookLayerCandidates(filepath.Join(p.ConfigDir, "hooks"), repo)
	cfg, err := hookcfg.LoadLayers(candidates...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("merged hook configuration is invalid:\n%w", err)
	}
	return cfg, nil
}

// NewTool builds the operation.Tool for a repository. The returned
// cleanup function closes the state store; callers must invoke it even
// on error paths. When withState is false (one-off hook commands that
// should not touch recorded progress), no state store is opened.
func (p *Params) NewTool(logger *slog.Logger, withState bool) (*operation.Tool, func() error, error) {
	defs, err := p.Definitions()
	if err != nil {
		return nil, nil, err
	}
	repo, err := p.SelectRepo(defs)
	if err != nil {
		return nil, nil, err
	}
	if p.Site == "" {
		return nil, nil, fmt.Errorf("--site is required (or set LSST_REPO_ADMIN_SITE)")
	}
	site, err := defs.Site(p.Site)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := p.MergedHooks(repo)
	if err != nil {
		return nil, nil, err
	}

	executor, err := pgexec.New(site.DBURI(repo), logger)
	if err != nil {
		return nil, nil, err
	}

	tool := &operation.Tool{
		Repo:     repo,
		Site:     site,
		Hooks:    &cfg.PostCreateHooks,
		Executor: executor,
		Logger:   logger,
		DryRun:   p.DryRun,
	}
	cleanup := func() error { return nil }

	if withState {
		statePath := p.StateDB
		if statePath == "" {
			statePath = filepath.Join(p.ConfigDir, "state.sqlite")
		}
		states, err := statestore.Open(statePath, logger)
		if err != nil {
			return nil, nil, err
		}
		tool.States = states
		cleanup = states.Close
	}

	return tool, cleanup, nil
}

// Operations builds the operation tree for a repository. Today that is
// the static-table hook provisioning; the tree is the extension point
// for further setup steps (skymap registration, ingest, and so on).
func Operations(repo repodef.Repo) operation.Operation {
	return operation.NewGroup(repo.Name,
		&operation.ApplyHooks{
			OpName:   "hooks-static",
			Category: hooks.Static,
			Tables:   repo.Tables,
		},
	)
}
