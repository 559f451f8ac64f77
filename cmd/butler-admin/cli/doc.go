// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cli is the command-tree framework for butler-admin.
//
// A [Command] is either a leaf with a Run function or a group with
// Subcommands; dispatch walks the tree by positional argument, parses
// flags with pflag, and renders help with embedded examples. Unknown
// commands and flags get a closest-match suggestion.
package cli
