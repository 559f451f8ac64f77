// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Config is the top level of a hook configuration file.
type Config struct {
	PostCreateHooks Hooks `yaml:"post_create_hooks" json:"post_create_hooks"`
}

// Hooks holds the snippet definitions and the two hook categories.
type Hooks struct {
	// Snippets maps snippet name to its template fragment. Snippets may
	// reference each other; the reference graph must be acyclic.
	Snippets map[string]Snippet `yaml:"snippets" json:"snippets"`

	// Static configures hooks for tables created at repository-creation
	// time. Dispatch is on exact table name (by_name).
	Static Category `yaml:"static" json:"static"`

	// Dynamic configures hooks for tables created on demand later.
	// Dispatch is on table-name prefix (by_prefix).
	Dynamic Category `yaml:"dynamic" json:"dynamic"`
}

// Category is the hook configuration for one category of tables.
//
// The resolved statement order for a table is always
// Before ++ (matched dispatch entry or Default) ++ After.
type Category struct {
	// Before statements run first for every table in the category.
	Before []string `yaml:"before" json:"before"`

	// After statements run last for every table in the category.
	After []string `yaml:"after" json:"after"`

	// Default is used when no dispatch entry matches the table.
	Default []string `yaml:"default" json:"default"`

	// ByName maps exact table names to statement-list templates. Only
	// consulted for the static category.
	ByName map[string][]string `yaml:"by_name" json:"by_name"`

	// ByPrefix maps table-name prefixes to statement-list templates.
	// Only consulted for the dynamic category. No table name may start
	// with more than one registered prefix; Validate rejects prefix
	// sets that cannot guarantee this.
	ByPrefix map[string][]string `yaml:"by_prefix" json:"by_prefix"`
}

// LoadFile loads a single hook configuration file. The format is chosen
// by extension: .yaml/.yml parse as YAML, .json/.jsonc parse as JSONC
// (comments and trailing commas stripped before standard JSON decoding).
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported config extension (want .yaml, .yml, .json, or .jsonc)", path)
	}
	return &cfg, nil
}

// LoadLayers loads and merges an ordered sequence of configuration
// layers. Each candidate path is probed with the supported extensions in
// order (.yaml, .yml, .json, .jsonc) if it has none of its own;
// candidates with no existing file are skipped. Later layers override
// earlier ones per the Merge rules. At least one layer must exist.
func LoadLayers(candidates ...string) (*Config, error) {
	var merged *Config
	for _, candidate := range candidates {
		path, err := probeExtensions(candidate)
		if err != nil {
			return nil, err
		}
		if path == "" {
			continue
		}
		layer, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if merged == nil {
			merged = layer
			continue
		}
		merged = Merge(merged, layer)
	}
	if merged == nil {
		return nil, fmt.Errorf("no hook configuration found (tried %s)", strings.Join(candidates, ", "))
	}
	return merged, nil
}

// probeExtensions resolves a candidate path to an existing file. A
// candidate that already has a supported extension is checked as-is;
// otherwise each supported extension is tried in order. Returns "" when
// nothing exists.
func probeExtensions(candidate string) (string, error) {
	extensions := []string{".yaml", ".yml", ".json", ".jsonc"}

	if ext := strings.ToLower(filepath.Ext(candidate)); ext != "" {
		for _, known := range extensions {
			if ext == known {
				return existingPath(candidate)
			}
		}
	}

	for _, ext := range extensions {
		path, err := existingPath(candidate + ext)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}
	return "", nil
}

// existingPath returns path if it exists, "" if it does not, and an
// error for any other stat failure (permissions, etc.).
func existingPath(path string) (string, error) {
	_, err := os.Stat(path)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	return "", fmt.Errorf("checking %s: %w", path, err)
}
