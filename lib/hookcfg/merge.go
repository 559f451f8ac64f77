// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcfg

// Merge merges an overlay configuration over a base configuration and
// returns the result. Neither input is modified.
//
// Merge rules:
//   - Snippets: merged by name, overlay wins on conflict
//   - ByName / ByPrefix dispatch tables: merged by key, overlay wins
//     on conflict
//   - Before / After / Default lists: replaced wholesale when the
//     overlay sets them (a present-but-empty list in the overlay clears
//     the base list; an absent list keeps it)
//
// List-valued entries use replace rather than append semantics: a
// repository fragment that touches a dispatch entry or a before/after
// list takes full ownership of it. Append-on-merge would make the final
// statement order depend on fragment ordering in ways that are hard to
// audit for security-sensitive GRANT/POLICY statements.
func Merge(base, overlay *Config) *Config {
	result := &Config{
		PostCreateHooks: Hooks{
			Snippets: mergeSnippets(base.PostCreateHooks.Snippets, overlay.PostCreateHooks.Snippets),
			Static:   mergeCategory(base.PostCreateHooks.Static, overlay.PostCreateHooks.Static),
			Dynamic:  mergeCategory(base.PostCreateHooks.Dynamic, overlay.PostCreateHooks.Dynamic),
		},
	}
	return result
}

// mergeSnippets merges two snippet maps, overlay winning on name
// conflict. Returns nil if both inputs are empty.
func mergeSnippets(base, overlay map[string]Snippet) map[string]Snippet {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	result := make(map[string]Snippet, len(base)+len(overlay))
	for name, snippet := range base {
		result[name] = snippet
	}
	for name, snippet := range overlay {
		result[name] = snippet
	}
	return result
}

// mergeCategory merges one category subtree. Statement lists are
// replaced when the overlay sets them (non-nil); dispatch tables are
// merged entry-wise with overlay winning.
func mergeCategory(base, overlay Category) Category {
	result := base
	if overlay.Before != nil {
		result.Before = overlay.Before
	}
	if overlay.After != nil {
		result.After = overlay.After
	}
	if overlay.Default != nil {
		result.Default = overlay.Default
	}
	result.ByName = mergeDispatch(base.ByName, overlay.ByName)
	result.ByPrefix = mergeDispatch(base.ByPrefix, overlay.ByPrefix)
	return result
}

// mergeDispatch merges two dispatch tables, overlay entries replacing
// base entries with the same key. Returns nil if both inputs are empty.
func mergeDispatch(base, overlay map[string][]string) map[string][]string {
	if len(base) == 0 && len(overlay) == 0 {
		return nil
	}
	result := make(map[string][]string, len(base)+len(overlay))
	for key, templates := range base {
		result[key] = templates
	}
	for key, templates := range overlay {
		result[key] = templates
	}
	return result
}
