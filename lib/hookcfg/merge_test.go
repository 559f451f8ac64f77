// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcfg

import (
	"reflect"
	"strings"
	"testing"
)

func TestMergeSnippetsOverlayWins(t *testing.T) {
	base := &Config{PostCreateHooks: Hooks{
		Snippets: map[string]Snippet{
			"kept":       StringSnippet("base kept"),
			"overridden": StringSnippet("base version"),
		},
	}}
	overlay := &Config{PostCreateHooks: Hooks{
		Snippets: map[string]Snippet{
			"overridden": StringSnippet("overlay version"),
			"added":      StringSnippet("overlay added"),
		},
	}}

	merged := Merge(base, overlay)
	snippets := merged.PostCreateHooks.Snippets

	if got := snippets["kept"].Text(); got != "base kept" {
		t.Errorf("base-only snippet: got %q", got)
	}
	if got := snippets["overridden"].Text(); got != "overlay version" {
		t.Errorf("overridden snippet: got %q", got)
	}
	if got := snippets["added"].Text(); got != "overlay added" {
		t.Errorf("overlay-only snippet: got %q", got)
	}
}

func TestMergeStatementListsReplaceWholesale(t *testing.T) {
	base := &Config{PostCreateHooks: Hooks{
		Static: Category{
			Before:  []string{"base before"},
			After:   []string{"base after"},
			Default: []string{"base default"},
		},
	}}
	overlay := &Config{PostCreateHooks: Hooks{
		Static: Category{
			Before: []string{"overlay before"},
			After:  []string{}, // present but empty: clears the base list
			// Default absent: base list kept.
		},
	}}

	merged := Merge(base, overlay).PostCreateHooks.Static

	if got, want := merged.Before, []string{"overlay before"}; !reflect.DeepEqual(got, want) {
		t.Errorf("before: got %q, want %q", got, want)
	}
	if len(merged.After) != 0 {
		t.Errorf("after: expected cleared list, got %q", merged.After)
	}
	if got, want := merged.Default, []string{"base default"}; !reflect.DeepEqual(got, want) {
		t.Errorf("default: got %q, want %q", got, want)
	}
}

func TestMergeDispatchTablesEntrywise(t *testing.T) {
	base := &Config{PostCreateHooks: Hooks{
		Dynamic: Category{
			ByPrefix: map[string][]string{
				"dataset_tags_":   {"base tags"},
				"dataset_calibs_": {"base calibs"},
			},
		},
	}}
	overlay := &Config{PostCreateHooks: Hooks{
		Dynamic: Category{
			ByPrefix: map[string][]string{
				"dataset_calibs_": {"overlay calibs"},
				"dataset_locs_":   {"overlay locs"},
			},
		},
	}}

	merged := Merge(base, overlay).PostCreateHooks.Dynamic.ByPrefix

	want := map[string][]string{
		"dataset_tags_":   {"base tags"},
		"dataset_calibs_": {"overlay calibs"},
		"dataset_locs_":   {"overlay locs"},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("got %v, want %v", merged, want)
	}
}

func TestMergeDoesNotModifyInputs(t *testing.T) {
	base := &Config{PostCreateHooks: Hooks{
		Snippets: map[string]Snippet{"a": StringSnippet("base")},
	}}
	overlay := &Config{PostCreateHooks: Hooks{
		Snippets: map[string]Snippet{"a": StringSnippet("overlay")},
	}}

	Merge(base, overlay)

	if got := base.PostCreateHooks.Snippets["a"].Text(); got != "base" {
		t.Errorf("base modified by merge: %q", got)
	}
}

func TestValidateOverlappingPrefixes(t *testing.T) {
	cfg := &Config{PostCreateHooks: Hooks{
		Dynamic: Category{
			ByPrefix: map[string][]string{
				"dataset_":      {"a"},
				"dataset_tags_": {"b"},
			},
		},
	}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for overlapping prefixes")
	}
}

func TestValidateDispatchOnWrongCategory(t *testing.T) {
	cfg := &Config{PostCreateHooks: Hooks{
		Static: Category{
			ByPrefix: map[string][]string{"p_": {"a"}},
		},
		Dynamic: Category{
			ByName: map[string][]string{"t": {"a"}},
		},
	}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, fragment := range []string{"by_prefix is not allowed", "by_name is not allowed"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("expected error mentioning %q, got %v", fragment, err)
		}
	}
}

func TestValidateCleanConfig(t *testing.T) {
	cfg := &Config{PostCreateHooks: Hooks{
		Snippets: map[string]Snippet{"s": StringSnippet("x")},
		Static: Category{
			ByName: map[string][]string{"collection": {"a"}},
		},
		Dynamic: Category{
			ByPrefix: map[string][]string{"dataset_tags_": {"a"}, "dataset_calibs_": {"b"}},
		},
	}}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected clean validation, got %v", err)
	}
}
