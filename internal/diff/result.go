// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
)

// =============================================================================
// STATS
// =============================================================================

// Stats counts the operations of each kind.
type Stats struct {
	Equal    int `json:"equal"`
	Inserted int `json:"inserted"`
	Deleted  int `json:"deleted"`
	Replaced int `json:"replaced"`
}

// Count tallies ops by kind.
func Count(ops []Operation) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Kind {
		case Equal:
			s.Equal++
		case Insert:
			s.Inserted++
		case Delete:
			s.Deleted++
		case Replace:
			s.Replaced++
		}
	}
	return s
}

// Changes returns the number of non-equal operations.
func (s Stats) Changes() int {
	return s.Inserted + s.Deleted + s.Replaced
}

// Identical reports whether no line changed.
func (s Stats) Identical() bool {
	return s.Changes() == 0
}

// =============================================================================
// RESULT
// =============================================================================

// Result is a complete comparison of two texts.
type Result struct {
	OldName    string      `json:"old_name,omitempty"`
	NewName    string      `json:"new_name,omitempty"`
	Algorithm  string      `json:"algorithm"`
	Operations []Operation `json:"operations"`
	Stats      Stats       `json:"stats"`
}

// Compute diffs original against modified using opts.
func Compute(original, modified string, opts Options) *Result {
	old := SplitLines(original)
	cur := SplitLines(modified)
	ok, nk := opts.keys(old), opts.keys(cur)

	var ops []Operation
	switch opts.Algorithm {
	case LCS:
		ops = lcs(old, cur, ok, nk)
	default:
		ops = greedy(old, cur, ok, nk)
	}

	return &Result{
		Algorithm:  opts.Algorithm.String(),
		Operations: ops,
		Stats:      Count(ops),
	}
}

// Summary returns a one-line description: "Identical" or "+N -M ~R".
func (r *Result) Summary() string {
	if r.Stats.Identical() {
		return "Identical"
	}
	return fmt.Sprintf("+%d -%d ~%d", r.Stats.Inserted, r.Stats.Deleted, r.Stats.Replaced)
}

// Report renders the result's operations with Report.
func (r *Result) Report() string {
	return Report(r.Operations)
}

// =============================================================================
// PROJECTIONS
// =============================================================================

// Report lists every non-equal operation as labeled "-" and "+" lines.
// Every line is labeled with the 1-based original line number at which the
// operation applies, so consecutive inserts share a label. Replace emits both.
func Report(ops []Operation) string {
	var lines []string
	for _, op := range ops {
		switch op.Kind {
		case Delete:
			lines = append(lines, fmt.Sprintf("-%d: %s", op.OldIndex+1, op.OldLine))
		case Insert:
			lines = append(lines, fmt.Sprintf("+%d: %s", op.OldIndex+1, op.NewLine))
		case Replace:
			lines = append(lines,
				fmt.Sprintf("-%d: %s", op.OldIndex+1, op.OldLine),
				fmt.Sprintf("+%d: %s", op.OldIndex+1, op.NewLine))
		}
	}
	return strings.Join(lines, "\n")
}

// Reconstruct rebuilds both texts from ops: the original from every
// non-Insert entry, the modified from every non-Delete entry.
func Reconstruct(ops []Operation) (original, modified string) {
	var old, cur []string
	for _, op := range ops {
		if op.Kind != Insert {
			old = append(old, op.OldLine)
		}
		if op.Kind != Delete {
			cur = append(cur, op.NewLine)
		}
	}
	return strings.Join(old, "\n"), strings.Join(cur, "\n")
}
