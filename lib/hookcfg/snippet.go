// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hookcfg

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snippet is a named, reusable template fragment: either a single
// template string or an ordered list of template strings. The
// distinction matters during resolution: a list-valued snippet may
// only be referenced as the entirety of a list element, where its
// expanded statements are spliced in place.
type Snippet struct {
	lines []string
	list  bool
}

// StringSnippet returns a string-valued snippet holding text.
func StringSnippet(text string) Snippet {
	return Snippet{lines: []string{text}}
}

// ListSnippet returns a list-valued snippet holding the given lines.
// A list snippet with zero lines is legal and expands to nothing.
func ListSnippet(lines ...string) Snippet {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return Snippet{lines: copied, list: true}
}

// IsList reports whether the snippet is list-valued.
func (s Snippet) IsList() bool {
	return s.list
}

// Text returns the template text of a string-valued snippet. Calling
// Text on a list-valued snippet is a programming error.
func (s Snippet) Text() string {
	if s.list {
		panic("hookcfg: Text called on list-valued snippet")
	}
	return s.lines[0]
}

// Lines returns the template lines. For a string-valued snippet this is
// a one-element slice. The returned slice must not be modified.
func (s Snippet) Lines() []string {
	return s.lines
}

// UnmarshalYAML decodes either a YAML scalar (string snippet) or a YAML
// sequence of scalars (list snippet).
func (s *Snippet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var text string
		if err := node.Decode(&text); err != nil {
			return err
		}
		*s = StringSnippet(text)
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := node.Decode(&lines); err != nil {
			return err
		}
		*s = ListSnippet(lines...)
		return nil
	default:
		return fmt.Errorf("snippet must be a string or a sequence of strings (line %d)", node.Line)
	}
}

// MarshalYAML renders the snippet back in its original shape.
func (s Snippet) MarshalYAML() (any, error) {
	if s.list {
		return s.lines, nil
	}
	return s.lines[0], nil
}

// UnmarshalJSON decodes either a JSON string or a JSON array of
// strings. Used for JSONC configuration fragments.
func (s *Snippet) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = StringSnippet(text)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("snippet must be a string or an array of strings: %w", err)
	}
	*s = ListSnippet(lines...)
	return nil
}

// MarshalJSON renders the snippet back in its original shape.
func (s Snippet) MarshalJSON() ([]byte, error) {
	if s.list {
		return json.Marshal(s.lines)
	}
	return json.Marshal(s.lines[0])
}
