// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LookaheadWindow is how many lines ahead the greedy algorithm searches for a
// resynchronization point.
const LookaheadWindow = 4

// =============================================================================
// OPERATION TYPES
// =============================================================================

// Kind is the type of a diff operation.
type Kind int

const (
	// Equal means the line is unchanged.
	Equal Kind = iota
	// Insert means the line exists only in the modified text.
	Insert
	// Delete means the line exists only in the original text.
	Delete
	// Replace means the original line was replaced by the modified line.
	Replace
)

// String returns the string representation of an operation kind.
func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	default:
		return "unknown"
	}
}

// Prefix returns the marker character used for the kind in reports.
func (k Kind) Prefix() string {
	switch k {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	default:
		return " "
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Operation is one entry of the edit sequence.
// OldLine is unused for Insert, NewLine is unused for Delete.
// The indices are zero-based cursors into each text when the entry was produced.
type Operation struct {
	Kind     Kind   `json:"kind"`
	OldLine  string `json:"old_line,omitempty"`
	NewLine  string `json:"new_line,omitempty"`
	OldIndex int    `json:"old_index"`
	NewIndex int    `json:"new_index"`
}

// =============================================================================
// OPTIONS
// =============================================================================

// Algorithm selects the diff strategy.
type Algorithm int

const (
	// Greedy is the fixed-window lookahead heuristic. It can report a block
	// moved further than LookaheadWindow lines as a run of replacements.
	Greedy Algorithm = iota
	// LCS aligns the texts on a longest common subsequence.
	LCS
)

// String returns the string representation of an algorithm.
func (a Algorithm) String() string {
	switch a {
	case Greedy:
		return "greedy"
	case LCS:
		return "lcs"
	default:
		return "unknown"
	}
}

// ParseAlgorithm resolves an algorithm name. Empty means Greedy.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "greedy":
		return Greedy, nil
	case "lcs":
		return LCS, nil
	default:
		return Greedy, fmt.Errorf("unknown diff algorithm %q (supported: greedy, lcs)", name)
	}
}

// Options tune how lines are compared. Operations always carry the lines as
// written, whatever the comparison options.
type Options struct {
	Algorithm           Algorithm
	IgnoreTrailingSpace bool
	NormalizeUnicode    bool // compare lines in Unicode NFC form
}

func (o Options) keys(lines []string) []string {
	if !o.IgnoreTrailingSpace && !o.NormalizeUnicode {
		return lines
	}
	keys := make([]string, len(lines))
	for i, line := range lines {
		if o.IgnoreTrailingSpace {
			line = strings.TrimRight(line, " \t\r")
		}
		if o.NormalizeUnicode {
			line = norm.NFC.String(line)
		}
		keys[i] = line
	}
	return keys
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// ComputeDiff returns the greedy edit sequence turning original into modified.
// Lines are compared by exact string equality.
func ComputeDiff(original, modified string) []Operation {
	old := SplitLines(original)
	cur := SplitLines(modified)
	return greedy(old, cur, old, cur)
}

// SplitLines splits text on "\n". Empty text has zero lines; a trailing
// newline yields a final empty line.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}

// greedy walks both texts with one cursor each. On a mismatch it looks up to
// LookaheadWindow lines ahead in the modified text for the current original
// line (Insert), then in the original text for the current modified line
// (Delete), and otherwise pairs the two lines as a Replace.
// ok and nk are the comparison keys for old and cur.
func greedy(old, cur, ok, nk []string) []Operation {
	m, n := len(old), len(cur)
	ops := make([]Operation, 0, max(m, n))

	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i >= m:
			ops = append(ops, Operation{Kind: Insert, NewLine: cur[j], OldIndex: i, NewIndex: j})
			j++
		case j >= n:
			ops = append(ops, Operation{Kind: Delete, OldLine: old[i], OldIndex: i, NewIndex: j})
			i++
		case ok[i] == nk[j]:
			ops = append(ops, Operation{Kind: Equal, OldLine: old[i], NewLine: cur[j], OldIndex: i, NewIndex: j})
			i++
			j++
		case found(nk, j+1, ok[i]):
			ops = append(ops, Operation{Kind: Insert, NewLine: cur[j], OldIndex: i, NewIndex: j})
			j++
		case found(ok, i+1, nk[j]):
			ops = append(ops, Operation{Kind: Delete, OldLine: old[i], OldIndex: i, NewIndex: j})
			i++
		default:
			ops = append(ops, Operation{Kind: Replace, OldLine: old[i], NewLine: cur[j], OldIndex: i, NewIndex: j})
			i++
			j++
		}
	}
	return ops
}

// found reports whether target occurs in lines[from : from+LookaheadWindow].
func found(lines []string, from int, target string) bool {
	end := min(from+LookaheadWindow, len(lines))
	for k := from; k < end; k++ {
		if lines[k] == target {
			return true
		}
	}
	return false
}

// lcs aligns the texts on a longest common subsequence. Within each run of
// changes, deletions and insertions are paired into replacements in order;
// the remainder is emitted as plain deletions, then insertions.
func lcs(old, cur, ok, nk []string) []Operation {
	m, n := len(old), len(cur)

	// dp[i][j] = LCS length of ok[i:] and nk[j:]
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if ok[i] == nk[j] {
				dp[i][j] = dp[i+1][j+1] + 1
			} else {
				dp[i][j] = max(dp[i+1][j], dp[i][j+1])
			}
		}
	}

	ops := make([]Operation, 0, max(m, n))

	// A run of changes covers old[ri:ri+dels] and cur[rj:rj+ins].
	ri, rj, dels, ins := 0, 0, 0, 0
	flush := func() {
		pairs := min(dels, ins)
		for k := 0; k < pairs; k++ {
			ops = append(ops, Operation{Kind: Replace, OldLine: old[ri+k], NewLine: cur[rj+k],
				OldIndex: ri + k, NewIndex: rj + k})
		}
		for k := pairs; k < dels; k++ {
			ops = append(ops, Operation{Kind: Delete, OldLine: old[ri+k], OldIndex: ri + k, NewIndex: rj + pairs})
		}
		for k := pairs; k < ins; k++ {
			ops = append(ops, Operation{Kind: Insert, NewLine: cur[rj+k], OldIndex: ri + dels, NewIndex: rj + k})
		}
		dels, ins = 0, 0
	}

	i, j := 0, 0
	for i < m || j < n {
		if dels == 0 && ins == 0 {
			ri, rj = i, j
		}
		switch {
		case i < m && j < n && ok[i] == nk[j]:
			flush()
			ops = append(ops, Operation{Kind: Equal, OldLine: old[i], NewLine: cur[j], OldIndex: i, NewIndex: j})
			i++
			j++
		case j >= n || (i < m && dp[i+1][j] >= dp[i][j+1]):
			dels++
			i++
		default:
			ins++
			j++
		}
	}
	flush()
	return ops
}
