// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"strings"

	"github.com/jeranaias/toolbench/internal/util"
)

// MinSideBySideWidth is the narrowest total width SideBySide will lay out.
const MinSideBySideWidth = 20

// SideBySide renders ops in two columns separated by a marker, in the manner of
// sdiff: ' ' unchanged, '|' replaced, '<' deleted, '>' inserted. Column widths
// are measured in terminal cells, so wide runes are truncated and padded
// correctly.
func SideBySide(ops []Operation, width int) string {
	width = max(width, MinSideBySideWidth)
	col := (width - 3) / 2

	var sb strings.Builder
	for i, op := range ops {
		if i > 0 {
			sb.WriteByte('\n')
		}
		var left, right, marker string
		switch op.Kind {
		case Equal:
			left, right, marker = op.OldLine, op.NewLine, " "
		case Replace:
			left, right, marker = op.OldLine, op.NewLine, "|"
		case Delete:
			left, marker = op.OldLine, "<"
		case Insert:
			right, marker = op.NewLine, ">"
		}
		row := cell(left, col) + " " + marker + " " + cell(right, col)
		sb.WriteString(strings.TrimRight(row, " "))
	}
	return sb.String()
}

// cell fits s into exactly width cells, cutting with "..." when it is too long.
func cell(s string, width int) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	return util.PadWidth(util.TruncateWidth(s, width), width)
}
