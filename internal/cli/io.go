// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/toolbench/internal/util"
	"github.com/jeranaias/toolbench/internal/watch"
)

// =============================================================================
// INPUT / OUTPUT
// =============================================================================

// isStdin reports whether path names standard input.
func isStdin(path string) bool {
	return path == "" || path == "-"
}

// readInput reads path as text, or standard input for "" and "-".
func (a *app) readInput(command, path string) (string, error) {
	if isStdin(path) {
		text, err := util.ReadText(a.in)
		if err != nil {
			return "", &CommandError{Command: command, Action: "read stdin", Err: err}
		}
		return text, nil
	}

	text, err := util.ReadTextFile(path)
	if err != nil {
		return "", &CommandError{Command: command, Action: "read input", Err: err}
	}
	return text, nil
}

// writeOutput writes data to path atomically, or prints it to stdout. Stdout
// output is highlighted as language when color and highlighting are on.
func (a *app) writeOutput(command, path, data, language string) error {
	if !strings.HasSuffix(data, "\n") {
		data += "\n"
	}

	if path != "" && path != "-" {
		if err := util.AtomicWriteFile(path, []byte(data), 0644); err != nil {
			return &CommandError{Command: command, Action: "write output", Err: err}
		}
		logEvent(a.log, "write", "path", path, "bytes", len(data))
		return nil
	}

	if a.color && a.cfg.Output.Highlight && language != "" {
		data = highlightCode(data, language, a.cfg.Output.Theme)
	}
	_, err := fmt.Fprint(a.out, data)
	return err
}

// =============================================================================
// WATCH MODE
// =============================================================================

// watchAndRerun calls rerun whenever one of paths changes, until ctx ends.
// Errors from rerun are printed and watching continues.
func (a *app) watchAndRerun(ctx context.Context, command string, paths []string, rerun func() error) error {
	w, err := watch.New(paths, func(ctx context.Context, changed []string) {
		logEvent(a.log, "watch", "command", command, "changed", strings.Join(changed, ","))
		if err := rerun(); err != nil && !isSilent(err) {
			DisplayError(a.errOut, err, a.color)
		}
	}, watch.Options{
		OnError: func(err error) {
			logEvent(a.log, "watch", "command", command, "error", err)
		},
	})
	if err != nil {
		return &CommandError{Command: command, Action: "watch", Err: err}
	}

	fmt.Fprintln(a.errOut, paint(a.color, DimStyle, fmt.Sprintf("Watching %s (Ctrl+C to stop)", strings.Join(w.Files(), ", "))))
	return w.Run(ctx)
}
