// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hooks

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
)

// Category selects which hook subtree applies to a table.
type Category string

const (
	// Static is for tables created when the data repository itself is
	// created. Dispatch is on exact table name.
	Static Category = "static"

	// Dynamic is for tables created on demand during later use of the
	// repository. Dispatch is on table-name prefix.
	Dynamic Category = "dynamic"
)

// Resolve produces the ordered, fully-substituted statement list to run
// against table immediately after its creation.
//
// The returned statements are the category's before list, then the
// dispatch-matched templates (or the category default when nothing
// matches), then the after list, with each template recursively expanded,
// list-valued snippet references spliced in place, and the literal
// {table} placeholder replaced with the table name.
//
// Resolve never modifies the configuration and keeps no state between
// calls; it is safe to call concurrently on a shared configuration.
// All failures are ConfigurationError values; see the Kind constants
// for the taxonomy.
func Resolve(config *hookcfg.Hooks, category Category, table string) ([]string, error) {
	if table == "" {
		return nil, fmt.Errorf("hooks: table name must not be empty")
	}

	var subtree hookcfg.Category
	switch category {
	case Static:
		subtree = config.Static
	case Dynamic:
		subtree = config.Dynamic
	default:
		return nil, configErrorf(KindUnknownCategory, "%q is not a hook category (want %q or %q)", category, Static, Dynamic)
	}

	matched, err := dispatch(subtree, category, table)
	if err != nil {
		return nil, err
	}

	templates := make([]string, 0, len(subtree.Before)+len(matched)+len(subtree.After))
	templates = append(templates, subtree.Before...)
	templates = append(templates, matched...)
	templates = append(templates, subtree.After...)

	x := &expander{snippets: config.Snippets}
	var statements []string
	for _, template := range templates {
		expanded, err := x.expandElement(template, nil, nil)
		if err != nil {
			return nil, err
		}
		statements = append(statements, expanded...)
	}

	for i, statement := range statements {
		statement = strings.ReplaceAll(statement, "{table}", table)
		if leftover := anyPlaceholder.FindString(statement); leftover != "" {
			return nil, configErrorf(KindUnresolvedPlaceholder,
				"%s remains in statement %q after full expansion", leftover, statement)
		}
		statements[i] = statement
	}

	return statements, nil
}

// anyPlaceholder matches any surviving {...} after expansion and table
// substitution. Used for the final unresolved-placeholder check.
var anyPlaceholder = regexp.MustCompile(`\{[^{}]*\}`)

// dispatch picks the hook template list for a table: the matching
// by_name entry for static, the matching by_prefix entry for dynamic,
// or the category default when nothing matches. A dynamic table name
// matching more than one prefix is a configuration error; the
// conflict is surfaced rather than silently picking one entry.
func dispatch(subtree hookcfg.Category, category Category, table string) ([]string, error) {
	switch category {
	case Static:
		if templates, ok := subtree.ByName[table]; ok {
			return templates, nil
		}
		return subtree.Default, nil
	case Dynamic:
		var matches []string
		for prefix := range subtree.ByPrefix {
			if strings.HasPrefix(table, prefix) {
				matches = append(matches, prefix)
			}
		}
		switch len(matches) {
		case 0:
			return subtree.Default, nil
		case 1:
			return subtree.ByPrefix[matches[0]], nil
		default:
			sort.Strings(matches)
			return nil, configErrorf(KindAmbiguousPrefix,
				"table %q matches prefixes %s", table, strings.Join(matches, ", "))
		}
	}
	// Unreachable: Resolve validated the category.
	return nil, configErrorf(KindUnknownCategory, "%q is not a hook category", category)
}
