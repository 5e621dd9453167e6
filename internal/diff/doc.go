// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package diff provides line diff computation and formatting.
//
// The default algorithm is a greedy heuristic: on a mismatch it looks at most
// LookaheadWindow (4) lines ahead in each text for a point where the two line
// up again, and otherwise reports a Replace. It is linear in practice but
// reports blocks moved further than the window as runs of replacements. An
// LCS alignment is available through Options for callers that want a minimal
// edit script instead.
//
// # Key Types
//
//   - Kind: Type of operation (equal, insert, delete, replace)
//   - Operation: One entry of the edit sequence with both lines and cursors
//   - Result: Operations plus Stats for a comparison
//   - Hunk, Line: Unified diff rendering
//
// # Usage
//
// Compute the edit sequence:
//
//	ops := diff.ComputeDiff(original, modified)
//	fmt.Println(diff.Report(ops))
//
// With options and unified output:
//
//	res := diff.Compute(original, modified, diff.Options{Algorithm: diff.LCS})
//	fmt.Print(diff.FormatUnified(res.Operations, "a.txt", "b.txt", diff.DefaultContext))
package diff
