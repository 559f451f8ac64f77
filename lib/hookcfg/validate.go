// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcfg

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks a merged configuration for structural problems that
// can be detected without resolving any table. It does not chase
// snippet references: missing snippets, cycles, and parameter problems
// surface at resolution time, when it is known which snippets are
// actually reachable.
//
// Checked here:
//   - empty snippet names
//   - empty by_name table names and by_prefix prefixes
//   - by_name entries on the dynamic category and by_prefix entries on
//     the static category (each category has exactly one dispatch
//     mechanism)
//   - by_prefix sets where one prefix starts with another, which would
//     make some table names match two entries
func (c *Config) Validate() error {
	var errs []error

	for name := range c.PostCreateHooks.Snippets {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("snippets: empty snippet name"))
		}
	}

	errs = append(errs, validateCategory("static", c.PostCreateHooks.Static, dispatchByName)...)
	errs = append(errs, validateCategory("dynamic", c.PostCreateHooks.Dynamic, dispatchByPrefix)...)

	return errors.Join(errs...)
}

// dispatchKind identifies which dispatch table a category may carry.
type dispatchKind int

const (
	dispatchByName dispatchKind = iota
	dispatchByPrefix
)

func validateCategory(label string, category Category, kind dispatchKind) []error {
	var errs []error

	switch kind {
	case dispatchByName:
		if len(category.ByPrefix) > 0 {
			errs = append(errs, fmt.Errorf("%s: by_prefix is not allowed (static dispatches by exact name)", label))
		}
		for table := range category.ByName {
			if strings.TrimSpace(table) == "" {
				errs = append(errs, fmt.Errorf("%s.by_name: empty table name", label))
			}
		}
	case dispatchByPrefix:
		if len(category.ByName) > 0 {
			errs = append(errs, fmt.Errorf("%s: by_name is not allowed (dynamic dispatches by prefix)", label))
		}
		prefixes := make([]string, 0, len(category.ByPrefix))
		for prefix := range category.ByPrefix {
			if prefix == "" {
				errs = append(errs, fmt.Errorf("%s.by_prefix: empty prefix", label))
				continue
			}
			prefixes = append(prefixes, prefix)
		}
		errs = append(errs, overlappingPrefixes(label, prefixes)...)
	}

	return errs
}

// overlappingPrefixes reports prefix pairs where one is a prefix of the
// other. Such a pair guarantees that some table name (anything starting
// with the longer prefix) matches both, violating the at-most-one-match
// well-formedness rule.
func overlappingPrefixes(label string, prefixes []string) []error {
	var errs []error
	for i, a := range prefixes {
		for _, b := range prefixes[i+1:] {
			shorter, longer := a, b
			if len(shorter) > len(longer) {
				shorter, longer = longer, shorter
			}
			if strings.HasPrefix(longer, shorter) {
				errs = append(errs, fmt.Errorf(
					"%s.by_prefix: prefixes %q and %q overlap (tables starting with %q match both)",
					label, shorter, longer, longer))
			}
		}
	}
	return errs
}
