// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package hookcfg defines the post-creation-hook configuration model and
// its loading and merging rules.
//
// A hook configuration describes, for every table created in a data
// repository's registry database, the SQL statements to run immediately
// after creation. The configuration lives under a single top-level
// post_create_hooks key:
//
//	post_create_hooks:
//	  snippets:
//	    shared_insert: "GRANT INSERT ON {table} TO shared"
//	    collection_policies:
//	      - "ALTER TABLE {table} ENABLE ROW LEVEL SECURITY"
//	      - "{snippets.collection_policies_repo}"
//	  static:
//	    before: [...]
//	    after: [...]
//	    default: [...]
//	    by_name:
//	      collection: ["{snippets.collection_policies}"]
//	  dynamic:
//	    before: [...]
//	    after: [...]
//	    default: [...]
//	    by_prefix:
//	      dataset_tags_: [...]
//
// Snippets are named template fragments, either a single string or an
// ordered list of strings. The static category dispatches on exact table
// name (by_name), the dynamic category on table-name prefix (by_prefix).
//
// Configurations are layered: a base file plus zero or more
// repository-specific fragments, merged with [Merge] before any
// resolution happens. Files may be YAML or JSONC (JSON with comments),
// the latter intended for small hand-maintained per-repo fragments.
//
// This package only models, loads, and merges the configuration. The
// hooks package turns a merged configuration plus a table name into the
// final statement list.
package hookcfg
