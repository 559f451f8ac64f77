// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hooks

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
)

// testConfig builds the shared configuration used by most resolution
// tests: a before/default/after skeleton in both categories, a handful
// of string and list snippets, and dispatch entries for one static
// table and two dynamic prefixes.
func testConfig() *hookcfg.Hooks {
	return &hookcfg.Hooks{
		Snippets: map[string]hookcfg.Snippet{
			"shared_insert":      hookcfg.StringSnippet("GRANT INSERT ON {table} TO shared"),
			"is_user_collection": hookcfg.StringSnippet("STARTS_WITH({column}, 'u/')"),
			"collection_policies": hookcfg.ListSnippet(
				"ALTER TABLE {table} ENABLE ROW LEVEL SECURITY",
				"CREATE POLICY user_rows ON {table} USING ({snippets.is_user_collection(column=name)})",
			),
		},
		Static: hookcfg.Category{
			Before:  []string{"GRANT SELECT, REFERENCES ON {table} TO PUBLIC"},
			Default: []string{"{snippets.shared_insert}"},
			ByName: map[string][]string{
				"collection": {"{snippets.collection_policies}"},
			},
		},
		Dynamic: hookcfg.Category{
			Before:  []string{"GRANT SELECT, REFERENCES ON {table} TO PUBLIC"},
			Default: []string{"{snippets.shared_insert}"},
			ByPrefix: map[string][]string{
				"dataset_tags_":   {"GRANT INSERT, DELETE ON {table} TO shared"},
				"dataset_calibs_": {"GRANT INSERT, DELETE ON {table} TO calibration"},
			},
		},
	}
}

// wantKind fails the test unless err is a ConfigurationError of the
// given kind.
func wantKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
	if configErr.Kind != kind {
		t.Fatalf("expected kind %q, got %q (%v)", kind, configErr.Kind, err)
	}
}

func TestResolveStaticDefault(t *testing.T) {
	// A static table with no by_name entry gets before ++ default ++
	// after with {table} substituted.
	statements, err := Resolve(testConfig(), Static, "tract")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON tract TO PUBLIC",
		"GRANT INSERT ON tract TO shared",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}

func TestResolveStaticByName(t *testing.T) {
	// The by_name entry replaces default; before and after are
	// unchanged, and the list snippet splices in place.
	statements, err := Resolve(testConfig(), Static, "collection")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON collection TO PUBLIC",
		"ALTER TABLE collection ENABLE ROW LEVEL SECURITY",
		"CREATE POLICY user_rows ON collection USING (STARTS_WITH(name, 'u/'))",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}

func TestResolveDynamicPrefix(t *testing.T) {
	tests := []struct {
		name  string
		table string
		want  []string
	}{
		{
			name:  "one prefix matches",
			table: "dataset_tags_00042",
			want: []string{
				"GRANT SELECT, REFERENCES ON dataset_tags_00042 TO PUBLIC",
				"GRANT INSERT, DELETE ON dataset_tags_00042 TO shared",
			},
		},
		{
			name:  "no prefix matches falls back to default",
			table: "quantum_graph",
			want: []string{
				"GRANT SELECT, REFERENCES ON quantum_graph TO PUBLIC",
				"GRANT INSERT ON quantum_graph TO shared",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			statements, err := Resolve(testConfig(), Dynamic, test.table)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if !reflect.DeepEqual(statements, test.want) {
				t.Errorf("got %q, want %q", statements, test.want)
			}
		})
	}
}

func TestResolveAmbiguousPrefix(t *testing.T) {
	config := testConfig()
	config.Dynamic.ByPrefix["dataset_"] = []string{"GRANT INSERT ON {table} TO other"}

	_, err := Resolve(config, Dynamic, "dataset_tags_00042")
	wantKind(t, err, KindAmbiguousPrefix)
}

func TestResolveUnknownCategory(t *testing.T) {
	_, err := Resolve(testConfig(), Category("bogus"), "tract")
	wantKind(t, err, KindUnknownCategory)
}

func TestResolveEmptyTableName(t *testing.T) {
	if _, err := Resolve(testConfig(), Static, ""); err == nil {
		t.Fatal("expected error for empty table name")
	}
}

func TestResolveIsPure(t *testing.T) {
	// Resolving the same inputs twice yields identical output and
	// leaves the configuration untouched.
	config := testConfig()
	first, err := Resolve(config, Static, "collection")
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	second, err := Resolve(config, Static, "collection")
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("resolution is not idempotent: %q vs %q", first, second)
	}
}

func TestResolvePlainTemplateUnchanged(t *testing.T) {
	// A template with no placeholders expands to itself.
	config := testConfig()
	config.Static.ByName["plain"] = []string{"VACUUM ANALYZE"}

	statements, err := Resolve(config, Static, "plain")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON plain TO PUBLIC",
		"VACUUM ANALYZE",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}

func TestParameterizedSnippet(t *testing.T) {
	config := testConfig()
	config.Static.ByName["probe"] = []string{"{snippets.is_user_collection(column='name')}"}

	statements, err := Resolve(config, Static, "probe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got, want := statements[1], "STARTS_WITH(name, 'u/')"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParameterBindingFlowsTransitively(t *testing.T) {
	// A binding supplied at the outermost reference reaches a snippet
	// two levels down.
	config := testConfig()
	config.Snippets["outer"] = hookcfg.StringSnippet("CHECK ({inner})")
	config.Snippets["inner"] = hookcfg.StringSnippet("{column} IS NOT NULL")
	config.Static.ByName["probe"] = []string{"{outer(column=origin)}"}

	statements, err := Resolve(config, Static, "probe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got, want := statements[1], "CHECK (origin IS NOT NULL)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReferenceArgumentsOverrideCaller(t *testing.T) {
	// A reference's explicit argument beats a binding inherited from
	// further up the chain.
	config := testConfig()
	config.Snippets["outer"] = hookcfg.StringSnippet("{inner(column=local)}")
	config.Snippets["inner"] = hookcfg.StringSnippet("{column}")
	config.Static.ByName["probe"] = []string{"{outer(column=inherited)}"}

	statements, err := Resolve(config, Static, "probe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if got, want := statements[1], "local"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMissingParameter(t *testing.T) {
	config := testConfig()
	config.Static.ByName["probe"] = []string{"{snippets.is_user_collection}"}

	_, err := Resolve(config, Static, "probe")
	wantKind(t, err, KindMissingParameter)
}

func TestMissingSnippet(t *testing.T) {
	config := testConfig()
	config.Static.ByName["probe"] = []string{"{snippets.does_not_exist}"}

	_, err := Resolve(config, Static, "probe")
	wantKind(t, err, KindMissingSnippet)
}

func TestCycleDetection(t *testing.T) {
	tests := []struct {
		name     string
		snippets map[string]hookcfg.Snippet
	}{
		{
			name: "direct self reference",
			snippets: map[string]hookcfg.Snippet{
				"a": hookcfg.StringSnippet("{a}"),
			},
		},
		{
			name: "mutual reference",
			snippets: map[string]hookcfg.Snippet{
				"a": hookcfg.StringSnippet("x {b}"),
				"b": hookcfg.StringSnippet("y {a}"),
			},
		},
		{
			name: "cycle through list snippets",
			snippets: map[string]hookcfg.Snippet{
				"a": hookcfg.ListSnippet("{b}"),
				"b": hookcfg.ListSnippet("{a}"),
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			config := testConfig()
			for name, snippet := range test.snippets {
				config.Snippets[name] = snippet
			}
			config.Static.ByName["probe"] = []string{"{a}"}

			_, err := Resolve(config, Static, "probe")
			wantKind(t, err, KindCycle)
		})
	}
}

func TestListSplicePreservesOrder(t *testing.T) {
	// A pure-reference list element expands to N statements spliced at
	// its position, keeping neighbors in place.
	config := testConfig()
	config.Snippets["pair"] = hookcfg.ListSnippet("FIRST ON {table}", "SECOND ON {table}")
	config.Static.ByName["probe"] = []string{
		"LEADING ON {table}",
		"{pair}",
		"TRAILING ON {table}",
	}

	statements, err := Resolve(config, Static, "probe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON probe TO PUBLIC",
		"LEADING ON probe",
		"FIRST ON probe",
		"SECOND ON probe",
		"TRAILING ON probe",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}

func TestNestedListSplice(t *testing.T) {
	config := testConfig()
	config.Snippets["outer_list"] = hookcfg.ListSnippet("A {table}", "{inner_list}", "D {table}")
	config.Snippets["inner_list"] = hookcfg.ListSnippet("B {table}", "C {table}")
	config.Static.ByName["probe"] = []string{"{outer_list}"}

	statements, err := Resolve(config, Static, "probe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON probe TO PUBLIC",
		"A probe",
		"B probe",
		"C probe",
		"D probe",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}

func TestListReferenceMidString(t *testing.T) {
	config := testConfig()
	config.Snippets["pair"] = hookcfg.ListSnippet("A", "B")
	config.Static.ByName["probe"] = []string{"prefix {pair}"}

	_, err := Resolve(config, Static, "probe")
	wantKind(t, err, KindListReference)
}

func TestUnresolvedPlaceholder(t *testing.T) {
	// A brace group the reference grammar does not recognize survives
	// expansion and is caught by the final check.
	config := testConfig()
	config.Static.ByName["probe"] = []string{"GRANT SELECT ON {table with spaces}"}

	_, err := Resolve(config, Static, "probe")
	wantKind(t, err, KindUnresolvedPlaceholder)
}

func TestSpecStaticEndToEnd(t *testing.T) {
	// Full worked example: tract has no by_name entry and uses the
	// default, which routes through a list snippet.
	config := &hookcfg.Hooks{
		Snippets: map[string]hookcfg.Snippet{
			"shared_insert": hookcfg.ListSnippet("GRANT INSERT ON {table} TO shared"),
		},
		Static: hookcfg.Category{
			Before:  []string{"GRANT SELECT, REFERENCES ON {table} TO PUBLIC"},
			Default: []string{"{snippets.shared_insert}"},
			ByName:  map[string][]string{},
		},
	}

	statements, err := Resolve(config, Static, "tract")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON tract TO PUBLIC",
		"GRANT INSERT ON tract TO shared",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}

func TestEmptyListSnippetExpandsToNothing(t *testing.T) {
	config := testConfig()
	config.Snippets["nothing"] = hookcfg.ListSnippet()
	config.Static.ByName["probe"] = []string{"{nothing}", "KEEP ON {table}"}

	statements, err := Resolve(config, Static, "probe")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	want := []string{
		"GRANT SELECT, REFERENCES ON probe TO PUBLIC",
		"KEEP ON probe",
	}
	if !reflect.DeepEqual(statements, want) {
		t.Errorf("got %q, want %q", statements, want)
	}
}
