// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package repodef defines the data repositories and sites this tool
// administers.
//
// A repository is identified by a name plus a YYYYMMDD date: the same
// logical repository is re-created under new dates as its contents are
// regenerated, and old dates stay around until users migrate. A site
// (a compute center or data facility) supplies URI templates that turn
// a repository definition into concrete locations: the repository root,
// the registry database connection URI, and the database schema
// namespace.
//
// Definitions are loaded from a single YAML file listing every known
// repository and site. [Definitions.Repo] and [Definitions.Site] look
// entries up by name; repository lookup without a date selects the
// newest version.
//
// [HookLayerCandidates] maps a repository to the ordered hook
// configuration layers that apply to it (base, per-name, per-version);
// candidates with no file present are skipped by the hookcfg loader.
package repodef
