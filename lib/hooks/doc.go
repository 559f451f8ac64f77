// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hooks resolves post-creation-hook configurations into ordered
// SQL statement lists.
//
// [Resolve] is the single entry point: given a merged hook
// configuration, a category ([Static] or [Dynamic]), and a table name,
// it produces the fully-substituted statements to run against that
// table, in order. The statement order is always the category's before
// list, then the dispatch-matched entry (exact name for static, prefix
// for dynamic) or the category default, then the after list.
//
// Template strings may reference snippets by name:
//
//	{shared_insert}
//	{snippets.shared_insert}
//	{snippets.is_user_collection(column='name')}
//
// String-valued snippets expand in-line; list-valued snippets may only
// be referenced as the entirety of a list element, where their expanded
// statements are spliced in place. Parameter bindings flow down the
// reference chain, with a reference's explicit arguments overriding
// inherited bindings. The literal {table} placeholder is substituted
// with the table name after all snippet expansion.
//
// Resolution is a pure function of its inputs: it performs no I/O and
// keeps no state between calls, so concurrent resolutions over a shared
// configuration need no coordination. Every failure mode is a
// deterministic [ConfigurationError]: the configuration itself is
// wrong and must be fixed; nothing is transient or retryable.
package hooks
