// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for toolbench output.
//
// Colors are disabled for non-TTY output and when NO_COLOR is set
// (https://no-color.org/). FORCE_COLOR or color = "always" turn them on.

package cli

import (
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// =============================================================================
// TERMINAL WIDTH DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is the fallback width when detection fails
	DefaultTerminalWidth = 80

	// MinTerminalWidth is the minimum width used for layout
	MinTerminalWidth = 40
)

// terminalWidth returns the width of w, or DefaultTerminalWidth when w is not
// a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

// colorEnabled decides whether output to w is colored. mode is the configured
// output.color value: auto, always or never.
func colorEnabled(mode string, noColorFlag bool, w io.Writer) bool {
	if noColorFlag {
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}

	switch strings.ToLower(mode) {
	case "never":
		return false
	case "always":
		return true
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	return isTerminal(w)
}

// colorProfile returns the termenv profile to render with.
func colorProfile(enabled bool, w io.Writer) termenv.Profile {
	if !enabled {
		return termenv.Ascii
	}
	if !isTerminal(w) {
		// Forced color into a pipe; 256 colors is the safe assumption
		return termenv.ANSI256
	}
	return termenv.ColorProfile()
}
