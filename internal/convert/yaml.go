// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"strings"

	"github.com/jeranaias/toolbench/internal/value"
)

// ParseYAML parses a flat list of "key: value" lines into a single object of strings.
//
// This is NOT a YAML parser. Nesting, lists, anchors, quoting rules and
// multi-line scalars are unsupported. Blank lines and lines starting with '#'
// are skipped, as are lines without a colon. Each line is split at its first
// colon and both halves are trimmed.
func ParseYAML(text string) ParseResult {
	if strings.TrimSpace(text) == "" {
		return parseFailed(NewError(KindEmptyInput, "parse yaml", "Empty YAML data", nil))
	}

	obj := value.NewObject()
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		obj.Set(strings.TrimSpace(key), value.Str(strings.TrimSpace(val)))
	}
	return parsed(value.Obj(obj))
}

// ToYAML renders v as simple YAML. Arrays become "- " blocks, objects flat
// "key: value" lines. Nested field values are written in their compact string
// form, so the output does not round-trip for complex data.
func ToYAML(v value.Value) Result {
	switch v.Kind() {
	case value.KindArray:
		if v.Len() == 0 {
			return serialized("[]")
		}
		blocks := make([]string, 0, v.Len())
		for _, item := range v.Items() {
			blocks = append(blocks, yamlItem(item))
		}
		return serialized(strings.Join(blocks, "\n"))
	case value.KindObject:
		if v.Len() == 0 {
			return serialized("{}")
		}
		return serialized(strings.Join(yamlFields(v.Object()), "\n"))
	default:
		return serialized(v.String())
	}
}

func yamlItem(item value.Value) string {
	if item.Kind() != value.KindObject || item.Len() == 0 {
		if item.Kind() == value.KindObject {
			return "- {}"
		}
		return "- " + item.String()
	}
	fields := yamlFields(item.Object())
	fields[0] = "- " + fields[0]
	for i := 1; i < len(fields); i++ {
		fields[i] = "  " + fields[i]
	}
	return strings.Join(fields, "\n")
}

func yamlFields(obj *value.Object) []string {
	lines := make([]string, 0, obj.Len())
	for _, e := range obj.Entries() {
		lines = append(lines, e.Key+": "+e.Value.String())
	}
	return lines
}
