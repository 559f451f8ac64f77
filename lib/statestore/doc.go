// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package statestore persists per-operation progress for a data
// repository in a local SQLite database.
//
// Admin operations run over hours or days and across multiple
// invocations of the tool; the store is what lets "status" report which
// operations finished, which failed, and why, without touching the
// repository itself. Records are keyed by repository (name/date) and
// operation name.
//
// The store is safe for concurrent use through a small connection pool.
// Dry runs never write to it.
package statestore
