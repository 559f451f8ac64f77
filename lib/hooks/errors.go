// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hooks

import "fmt"

// Kind discriminates the failure modes of hook resolution. All of them
// indicate an invalid configuration, never a transient condition.
type Kind int

const (
	// KindUnknownCategory: the category is neither static nor dynamic.
	KindUnknownCategory Kind = iota

	// KindAmbiguousPrefix: a dynamic table name starts with more than
	// one registered by_prefix key.
	KindAmbiguousPrefix

	// KindMissingSnippet: a reference names a snippet that is not
	// defined in the merged configuration.
	KindMissingSnippet

	// KindMissingParameter: a snippet's text uses a parameter
	// placeholder that no caller in the reference chain ever bound.
	KindMissingParameter

	// KindListReference: a list-valued snippet is referenced from the
	// middle of a longer template string instead of as a pure
	// list-element reference.
	KindListReference

	// KindCycle: a snippet directly or transitively references itself.
	KindCycle

	// KindUnresolvedPlaceholder: a placeholder survived full expansion
	// and table substitution.
	KindUnresolvedPlaceholder
)

// String returns a short identifier for the kind, used in error text
// and logs.
func (k Kind) String() string {
	switch k {
	case KindUnknownCategory:
		return "unknown category"
	case KindAmbiguousPrefix:
		return "ambiguous prefix match"
	case KindMissingSnippet:
		return "missing snippet"
	case KindMissingParameter:
		return "missing parameter binding"
	case KindListReference:
		return "illegal list-snippet reference"
	case KindCycle:
		return "snippet reference cycle"
	case KindUnresolvedPlaceholder:
		return "unresolved placeholder"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ConfigurationError reports an invalid hook configuration discovered
// during resolution. The caller must treat it as fatal to the
// table-creation operation in progress; there is no partial hook
// application and no retry.
type ConfigurationError struct {
	Kind   Kind
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("hook configuration: %s: %s", e.Kind, e.Detail)
}

// configErrorf builds a ConfigurationError with a formatted detail
// message.
func configErrorf(kind Kind, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
