// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package operation provides the framework for administrative
// operations over a data repository.
//
// An [Operation] is one named unit of setup work: applying post-create
// hooks to a set of tables, and whatever else a repository's definition
// calls for. Operations nest through [Group], which runs its children
// in order and stops at the first failure. [Tool] carries the shared
// state every operation needs (the repository and site under
// administration, the merged hook configuration, the statement
// executor, the status store, the logger, and the dry-run flag) and is
// passed explicitly rather than held globally.
//
// Operations are responsible for honoring Tool.DryRun: a dry run must
// not modify the repository or the status store. Running an operation
// through [Tool.RunOperation] records its outcome in the status store
// so a later "status" invocation can report progress.
package operation
