// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared lipgloss styles for toolbench output.

package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/toolbench/internal/diff"
)

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")) // Cyan

	// LabelStyle is used for field labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")). // Light gray
			Width(20)

	// ValueStyle is used for regular values and text
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Off-white

	// SuccessStyle marks identical results and completed writes
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")). // Green
			Bold(true)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// DimStyle is used for secondary information and hints
	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")) // Dim gray

	// SeparatorStyle is used for visual separators
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // Dark gray
)

// =============================================================================
// DIFF LINE STYLES
// =============================================================================

var (
	// AddedStyle colors inserted lines
	AddedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	// RemovedStyle colors deleted lines
	RemovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))

	// HunkStyle colors @@ hunk headers
	HunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))

	// ChangedStyle colors the side-by-side change markers
	ChangedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// RenderSeparator renders a horizontal separator line of the specified width.
func RenderSeparator(width int) string {
	if width <= 0 {
		width = 40
	}
	return SeparatorStyle.Render(strings.Repeat("-", width))
}

// RenderLabel renders a label with consistent width.
func RenderLabel(label string, width int) string {
	if width > 0 {
		return LabelStyle.Width(width).Render(label)
	}
	return LabelStyle.Render(label)
}

// paint renders text with style when color is on.
func paint(color bool, style lipgloss.Style, text string) string {
	if !color {
		return text
	}
	return style.Render(text)
}

// colorizeDiffLine styles one line of report or unified output by its prefix.
func colorizeDiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return TitleStyle.Render(line)
	case strings.HasPrefix(line, "@@"):
		return HunkStyle.Render(line)
	case strings.HasPrefix(line, "+"):
		return AddedStyle.Render(line)
	case strings.HasPrefix(line, "-"):
		return RemovedStyle.Render(line)
	default:
		return line
	}
}

// colorizeSideBySide styles side-by-side rows, which map one to one onto ops.
func colorizeSideBySide(color bool, text string, ops []diff.Operation) string {
	if !color || text == "" {
		return text
	}
	rows := strings.Split(text, "\n")
	for i := range rows {
		if i >= len(ops) {
			break
		}
		switch ops[i].Kind {
		case diff.Replace:
			rows[i] = ChangedStyle.Render(rows[i])
		case diff.Delete:
			rows[i] = RemovedStyle.Render(rows[i])
		case diff.Insert:
			rows[i] = AddedStyle.Render(rows[i])
		}
	}
	return strings.Join(rows, "\n")
}

// colorizeLines applies fn to each line of text when color is on.
func colorizeLines(color bool, text string, fn func(string) string) string {
	if !color || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = fn(line)
		}
	}
	return strings.Join(lines, "\n")
}
