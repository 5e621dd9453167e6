// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/diff"
	"github.com/jeranaias/toolbench/internal/export"
)

// diffFormats lists the --format values.
var diffFormats = []string{"report", "unified", "side", "json", "markdown", "html"}

type diffOptions struct {
	algorithm      string
	format         string
	context        int
	width          int
	exportDir      string
	exportFormat   string
	watch          bool
	ignoreTrailing bool
	normalize      bool
}

func diffCmd(a *app) *cobra.Command {
	var o diffOptions

	c := &cobra.Command{
		Use:   "diff OLD NEW",
		Short: "Compare two texts line by line",
		Long: `Compare two texts line by line.

The default greedy algorithm looks at most 4 lines ahead to re-align after a
change; --algorithm lcs computes a minimal alignment instead. Either input may
be "-" for standard input.

Exit status is 0 when the inputs are identical and 1 when they differ.

Formats:
  report    -N/+N lines for every change (default)
  unified   unified diff with --context lines
  side      two columns
  json, markdown, html
            full report with statistics`,
		Example: `  toolbench diff old.txt new.txt
  toolbench diff a.csv b.csv --format unified --context 1
  toolbench diff v1.md v2.md --algorithm lcs --export ./reports --export-format html`,
		Args:        exactArgs(2),
		Annotations: map[string]string{toolAnnotation: "diff"},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("algorithm") {
				o.algorithm = a.cfg.Diff.Algorithm
			}
			if !flags.Changed("context") {
				o.context = a.cfg.Diff.Context
			}
			if !flags.Changed("ignore-trailing-space") {
				o.ignoreTrailing = a.cfg.Diff.IgnoreTrailingSpace
			}
			if !flags.Changed("normalize") {
				o.normalize = a.cfg.Diff.NormalizeUnicode
			}
			if !flags.Changed("width") {
				o.width = a.cfg.Diff.Width
			}

			if err := o.validate(args); err != nil {
				return err
			}

			runOnce := func() error {
				return a.runDiff(args[0], args[1], o)
			}
			if !o.watch {
				return runOnce()
			}
			if err := runOnce(); err != nil && !isSilent(err) {
				DisplayError(a.errOut, err, a.color)
			}
			return a.watchAndRerun(cmd.Context(), "diff", args, runOnce)
		},
	}

	f := c.Flags()
	f.StringVarP(&o.algorithm, "algorithm", "a", "greedy", "diff algorithm: greedy, lcs")
	f.StringVarP(&o.format, "format", "f", "report", "output format: "+strings.Join(diffFormats, ", "))
	f.IntVarP(&o.context, "context", "U", diff.DefaultContext, "unchanged lines around changes in unified output")
	f.IntVar(&o.width, "width", 0, "side-by-side width (default terminal width)")
	f.StringVar(&o.exportDir, "export", "", "also write a report file into this directory")
	f.StringVar(&o.exportFormat, "export-format", "markdown", "report file format: json, markdown, html, text")
	f.BoolVarP(&o.watch, "watch", "w", false, "re-run when either input changes")
	f.BoolVar(&o.ignoreTrailing, "ignore-trailing-space", false, "ignore trailing spaces and tabs when comparing")
	f.BoolVar(&o.normalize, "normalize", false, "compare lines in Unicode NFC form")
	return c
}

func (o *diffOptions) validate(args []string) error {
	if isStdin(args[0]) && isStdin(args[1]) {
		return usageErrorf("only one input can be read from stdin")
	}
	if o.watch && (isStdin(args[0]) || isStdin(args[1])) {
		return usageErrorf("--watch needs two input files")
	}
	if _, err := diff.ParseAlgorithm(o.algorithm); err != nil {
		return &UsageError{Err: err}
	}
	if o.context < 0 {
		return usageErrorf("--context must not be negative")
	}
	valid := false
	for _, f := range diffFormats {
		if strings.EqualFold(o.format, f) {
			valid = true
		}
	}
	if !valid {
		return usageErrorf("unknown format %q (supported: %s)", o.format, strings.Join(diffFormats, ", "))
	}
	if o.exportDir != "" {
		if _, err := export.ForFormat(o.exportFormat, nil); err != nil {
			return &UsageError{Err: err}
		}
	}
	return nil
}

func (a *app) runDiff(oldPath, newPath string, o diffOptions) error {
	original, err := a.readInput("diff", oldPath)
	if err != nil {
		return err
	}
	modified, err := a.readInput("diff", newPath)
	if err != nil {
		return err
	}

	algo, _ := diff.ParseAlgorithm(o.algorithm)
	res := diff.Compute(original, modified, diff.Options{
		Algorithm:           algo,
		IgnoreTrailingSpace: o.ignoreTrailing,
		NormalizeUnicode:    o.normalize,
	})
	res.OldName = displayName(oldPath)
	res.NewName = displayName(newPath)

	logEvent(a.log, "diff", "old", res.OldName, "new", res.NewName, "algorithm", res.Algorithm,
		"summary", res.Summary())

	if err := a.renderDiff(res, o); err != nil {
		return err
	}

	if o.exportDir != "" {
		if err := a.exportDiff(res, o); err != nil {
			return err
		}
	}

	if !res.Stats.Identical() {
		return errDifferences
	}
	return nil
}

func displayName(path string) string {
	if isStdin(path) {
		return "stdin"
	}
	return path
}

func (a *app) renderDiff(res *diff.Result, o diffOptions) error {
	var text string

	switch strings.ToLower(o.format) {
	case "report":
		text = colorizeLines(a.color, res.Report(), colorizeDiffLine)

	case "unified":
		text = colorizeLines(a.color, res.Unified(o.context), colorizeDiffLine)

	case "side":
		width := o.width
		if width <= 0 {
			width = terminalWidth(a.out)
		}
		text = diff.SideBySide(res.Operations, width)
		text = colorizeSideBySide(a.color, text, res.Operations)

	default:
		opts := a.exportOptions(o)
		exporter, err := export.ForFormat(o.format, opts)
		if err != nil {
			return &UsageError{Err: err}
		}
		data, err := exporter.Export(res)
		if err != nil {
			return &CommandError{Command: "diff", Action: "render " + o.format, Err: err}
		}
		text = string(data)

		switch {
		case exporter.FileExtension() == ".md" && a.color && a.cfg.Output.MarkdownPreview:
			text = renderMarkdown(text, a.cfg.Output.Theme, terminalWidth(a.out))
		case a.color && a.cfg.Output.Highlight:
			text = highlightCode(text, strings.TrimPrefix(exporter.FileExtension(), "."), a.cfg.Output.Theme)
		}
	}

	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, err := fmt.Fprint(a.out, text)
	return err
}

func (a *app) exportOptions(o diffOptions) *export.Options {
	opts := export.DefaultOptions()
	opts.Theme = a.cfg.Output.Theme
	opts.Context = o.context
	if o.exportDir != "" {
		opts.OutputDir = o.exportDir
	}
	return opts
}

func (a *app) exportDiff(res *diff.Result, o diffOptions) error {
	opts := a.exportOptions(o)
	exporter, err := export.ForFormat(o.exportFormat, opts)
	if err != nil {
		return &UsageError{Err: err}
	}

	path, err := export.ExportToFile(res, exporter, opts)
	if err != nil {
		return &CommandError{Command: "diff", Action: "export", Err: err}
	}
	logEvent(a.log, "export", "format", o.exportFormat, "path", path)
	fmt.Fprintf(a.errOut, "%s %s\n", paint(a.color, SuccessStyle, "Exported"), path)
	return nil
}
