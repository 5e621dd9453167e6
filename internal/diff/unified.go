// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// =============================================================================
// LINE TYPES
// =============================================================================

// LineType is the role of a line in unified output.
type LineType int

const (
	// LineContext represents unchanged context lines
	LineContext LineType = iota
	// LineAdded represents added lines
	LineAdded
	// LineRemoved represents removed lines
	LineRemoved
)

// String returns the string representation of a line type.
func (t LineType) String() string {
	switch t {
	case LineContext:
		return "context"
	case LineAdded:
		return "added"
	case LineRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Prefix returns the unified diff prefix character for this line type.
func (t LineType) Prefix() string {
	switch t {
	case LineAdded:
		return "+"
	case LineRemoved:
		return "-"
	default:
		return " "
	}
}

// Line is a single line of unified output.
type Line struct {
	Type    LineType // Type of line (added, removed, context)
	Content string   // The actual line content
	OldLine int      // 1-based line number in the original (0 if added)
	NewLine int      // 1-based line number in the modified text (0 if removed)
}

// Hunk is a contiguous section of changes with surrounding context.
type Hunk struct {
	OldStart int    // Starting line in the original
	OldCount int    // Number of original lines covered
	NewStart int    // Starting line in the modified text
	NewCount int    // Number of modified lines covered
	Lines    []Line // The hunk's lines
}

// Lines flattens ops into unified lines. Replace becomes a removal followed by
// an addition.
func Lines(ops []Operation) []Line {
	lines := make([]Line, 0, len(ops))
	for _, op := range ops {
		switch op.Kind {
		case Equal:
			lines = append(lines, Line{Type: LineContext, Content: op.OldLine, OldLine: op.OldIndex + 1, NewLine: op.NewIndex + 1})
		case Delete:
			lines = append(lines, Line{Type: LineRemoved, Content: op.OldLine, OldLine: op.OldIndex + 1})
		case Insert:
			lines = append(lines, Line{Type: LineAdded, Content: op.NewLine, NewLine: op.NewIndex + 1})
		case Replace:
			lines = append(lines,
				Line{Type: LineRemoved, Content: op.OldLine, OldLine: op.OldIndex + 1},
				Line{Type: LineAdded, Content: op.NewLine, NewLine: op.NewIndex + 1})
		}
	}
	return lines
}

// Hunks groups ops into hunks, keeping up to context unchanged lines before and
// after each change. Changes separated by at most 2*context unchanged lines
// share a hunk.
func Hunks(ops []Operation, context int) []Hunk {
	if context < 0 {
		context = 0
	}

	var hunks []Hunk
	start, end := -1, -1

	emit := func() {
		if start < 0 {
			return
		}
		hunks = append(hunks, newHunk(ops[start:end+1]))
		start, end = -1, -1
	}

	for i, op := range ops {
		if op.Kind == Equal {
			continue
		}
		lo := max(0, i-context)
		hi := min(len(ops)-1, i+context)
		if start >= 0 && lo > end+1 {
			emit()
		}
		if start < 0 {
			start = lo
		}
		end = hi
	}
	emit()
	return hunks
}

func newHunk(ops []Operation) Hunk {
	h := Hunk{Lines: Lines(ops)}
	for _, l := range h.Lines {
		if l.OldLine > 0 {
			h.OldCount++
		}
		if l.NewLine > 0 {
			h.NewCount++
		}
	}

	// An empty side starts at the line before the hunk, as in diff -u.
	h.OldStart = ops[0].OldIndex
	if h.OldCount > 0 {
		h.OldStart++
	}
	h.NewStart = ops[0].NewIndex
	if h.NewCount > 0 {
		h.NewStart++
	}
	return h
}

// FormatUnified renders ops as a unified diff. Identical inputs produce an
// empty string.
func FormatUnified(ops []Operation, oldName, newName string, context int) string {
	hunks := Hunks(ops, context)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("--- %s\n", oldName))
	sb.WriteString(fmt.Sprintf("+++ %s\n", newName))

	for _, hunk := range hunks {
		sb.WriteString(fmt.Sprintf("@@ -%d,%d +%d,%d @@\n",
			hunk.OldStart, hunk.OldCount,
			hunk.NewStart, hunk.NewCount))

		for _, line := range hunk.Lines {
			sb.WriteString(line.Type.Prefix())
			sb.WriteString(line.Content)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Unified renders the result with FormatUnified.
func (r *Result) Unified(context int) string {
	return FormatUnified(r.Operations, r.OldName, r.NewName, context)
}
