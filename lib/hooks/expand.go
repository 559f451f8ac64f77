// Copyright 2026 The Gen3 Shared Repo Admin Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package hooks

import (
	"regexp"
	"strings"

	"github.com/lsst-dm/gen3-shared-repo-admin/lib/hookcfg"
)

// reference matches a snippet or parameter placeholder: {name},
// {snippets.name}, or either form with a parenthesized argument list.
// Submatches: [1] the optional "snippets." qualifier, [2] the name,
// [3] the parenthesized argument list including parens, [4] its body.
var reference = regexp.MustCompile(`\{(snippets\.)?([A-Za-z_][A-Za-z0-9_]*)(\(([^()]*)\))?\}`)

// expander performs recursive snippet expansion over one immutable
// snippet table. It carries no mutable state of its own; the cycle
// guard (the active chain) travels through the call arguments.
type expander struct {
	snippets map[string]hookcfg.Snippet
}

// expandElement expands one statement-list element. A "pure reference"
// element (a placeholder occupying the entire string) that names a
// list-valued snippet expands to that snippet's statements, each
// recursively expanded and spliced in place. Every other element
// expands to exactly one string.
func (x *expander) expandElement(template string, bindings map[string]string, active []string) ([]string, error) {
	if ref, ok := x.pureListReference(template); ok {
		if err := x.checkCycle(ref.name, active); err != nil {
			return nil, err
		}
		childBindings, err := x.mergeBindings(bindings, ref)
		if err != nil {
			return nil, err
		}

		snippet := x.snippets[ref.name]
		var out []string
		for _, line := range snippet.Lines() {
			expanded, err := x.expandElement(line, childBindings, append(active, ref.name))
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
		return out, nil
	}

	expanded, err := x.expandText(template, bindings, active)
	if err != nil {
		return nil, err
	}
	return []string{expanded}, nil
}

// expandText expands every placeholder in a template string, left to
// right, and returns the resulting single string. Substituted snippet
// text is fully expanded in the snippet's own context before being
// inlined, so output is never re-scanned.
func (x *expander) expandText(template string, bindings map[string]string, active []string) (string, error) {
	matches := reference.FindAllStringSubmatchIndex(template, -1)
	if len(matches) == 0 {
		return template, nil
	}

	var out strings.Builder
	last := 0
	for _, match := range matches {
		out.WriteString(template[last:match[0]])
		last = match[1]

		ref := parseReference(template, match)
		replacement, err := x.expandReference(template, ref, bindings, active)
		if err != nil {
			return "", err
		}
		out.WriteString(replacement)
	}
	out.WriteString(template[last:])
	return out.String(), nil
}

// expandReference resolves a single placeholder within a larger
// template string to its replacement text.
func (x *expander) expandReference(template string, ref parsedReference, bindings map[string]string, active []string) (string, error) {
	// {table} is reserved: it survives expansion untouched and is
	// substituted with the table name as the final step of Resolve.
	if !ref.qualified && !ref.hasArgs && ref.name == "table" {
		return "{table}", nil
	}

	// A bare, argument-free name is a parameter reference when a
	// binding for it exists anywhere in the call chain.
	if !ref.qualified && !ref.hasArgs {
		if value, ok := bindings[ref.name]; ok {
			return value, nil
		}
	}

	snippet, defined := x.snippets[ref.name]
	if !defined {
		if ref.qualified || ref.hasArgs {
			return "", configErrorf(KindMissingSnippet, "snippet %q is not defined", ref.name)
		}
		return "", configErrorf(KindMissingParameter,
			"no binding supplied for parameter %q in %q", ref.name, template)
	}

	if snippet.IsList() {
		return "", configErrorf(KindListReference,
			"list-valued snippet %q referenced from the middle of %q (list snippets must be the entire list element)",
			ref.name, template)
	}

	if err := x.checkCycle(ref.name, active); err != nil {
		return "", err
	}
	childBindings, err := x.mergeBindings(bindings, ref)
	if err != nil {
		return "", err
	}

	return x.expandText(snippet.Text(), childBindings, append(active, ref.name))
}

// pureListReference reports whether template is exactly one placeholder
// naming a defined list-valued snippet. Surrounding text, even
// whitespace, makes the reference impure.
func (x *expander) pureListReference(template string) (parsedReference, bool) {
	match := reference.FindStringSubmatchIndex(template)
	if match == nil || match[0] != 0 || match[1] != len(template) {
		return parsedReference{}, false
	}
	ref := parseReference(template, match)
	snippet, defined := x.snippets[ref.name]
	if !defined || !snippet.IsList() {
		return parsedReference{}, false
	}
	return ref, true
}

// checkCycle fails when name is already being expanded somewhere up the
// call chain.
func (x *expander) checkCycle(name string, active []string) error {
	for _, ancestor := range active {
		if ancestor == name {
			return configErrorf(KindCycle, "snippet %q references itself via %s",
				name, strings.Join(append(active, name), " -> "))
		}
	}
	return nil
}

// mergeBindings combines the caller's parameter bindings with the
// reference's own arguments, the arguments overriding on conflict.
func (x *expander) mergeBindings(bindings map[string]string, ref parsedReference) (map[string]string, error) {
	args, err := parseArguments(ref.args)
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return bindings, nil
	}
	merged := make(map[string]string, len(bindings)+len(args))
	for name, value := range bindings {
		merged[name] = value
	}
	for name, value := range args {
		merged[name] = value
	}
	return merged, nil
}

// parsedReference is one decoded placeholder.
type parsedReference struct {
	name      string // snippet or parameter name, qualifier stripped
	qualified bool   // written with the "snippets." qualifier
	hasArgs   bool   // written with a parenthesized argument list
	args      string // raw argument list body, "" when absent
}

// parseReference decodes a regexp match (submatch index form) against
// the template it came from.
func parseReference(template string, match []int) parsedReference {
	ref := parsedReference{
		qualified: match[2] >= 0,
		name:      template[match[4]:match[5]],
	}
	if match[6] >= 0 {
		ref.hasArgs = true
		ref.args = template[match[8]:match[9]]
	}
	return ref
}

// parseArguments decodes a raw argument list body ("column='name',
// role=shared") into a binding map. Values may be bare or wrapped in
// single or double quotes; quotes are stripped.
func parseArguments(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	args := make(map[string]string)
	for _, part := range splitArguments(raw) {
		name, value, found := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !found || name == "" {
			return nil, configErrorf(KindUnresolvedPlaceholder,
				"malformed snippet argument %q (want name=value)", part)
		}
		args[name] = unquote(strings.TrimSpace(value))
	}
	return args, nil
}

// splitArguments splits an argument list on commas that are not inside
// quotes.
func splitArguments(raw string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == ',':
			parts = append(parts, raw[start:i])
			start = i + 1
		}
	}
	return append(parts, raw[start:])
}

// unquote strips one matching pair of surrounding single or double
// quotes, if present.
func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if first == last && (first == '\'' || first == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
