// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/convert"
)

func convertCmd(a *app) *cobra.Command {
	var from, to, out string
	var watchInput bool

	c := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert between CSV, TSV, JSON and YAML",
		Long: `Convert tabular or structured data between formats.

Formats are taken from --from/--to, then from the input and --out file
extensions, then from convert.default_from/default_to in the config.
CSV and TSV require an array of flat objects sharing the same keys.`,
		Example: `  toolbench convert people.csv --to json
  cat data.json | toolbench convert --from json --to yaml
  toolbench convert data.yaml --out data.csv --watch`,
		Args:        maxArgs(1),
		Annotations: map[string]string{toolAnnotation: "convert"},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}

			src, err := resolveFormat(from, input, a.cfg.Convert.DefaultFrom)
			if err != nil {
				return err
			}
			dst, err := resolveFormat(to, out, a.cfg.Convert.DefaultTo)
			if err != nil {
				return err
			}

			runOnce := func() error {
				return a.runConvert(input, out, src, dst)
			}

			if !watchInput {
				return runOnce()
			}
			if isStdin(input) {
				return usageErrorf("--watch needs an input file")
			}
			if err := runOnce(); err != nil {
				DisplayError(a.errOut, err, a.color)
			}
			return a.watchAndRerun(cmd.Context(), "convert", []string{input}, runOnce)
		},
	}

	c.Flags().StringVarP(&from, "from", "f", "", "input format: csv, tsv, json, yaml")
	c.Flags().StringVarP(&to, "to", "t", "", "output format: csv, tsv, json, yaml")
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	c.Flags().BoolVarP(&watchInput, "watch", "w", false, "re-run when the input file changes")
	return c
}

// resolveFormat picks the explicit flag, else the path's extension, else the
// configured fallback.
func resolveFormat(flag, path, fallback string) (convert.Format, error) {
	if flag != "" {
		f, err := convert.ParseFormat(flag)
		if err != nil {
			return "", &UsageError{Err: err}
		}
		return f, nil
	}
	if !isStdin(path) {
		if f, err := convert.FormatFromPath(path); err == nil {
			return f, nil
		}
	}
	f, err := convert.ParseFormat(fallback)
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return f, nil
}

func (a *app) runConvert(input, out string, from, to convert.Format) error {
	text, err := a.readInput("convert", input)
	if err != nil {
		return err
	}

	res := convert.Convert(text, from, to)
	logEvent(a.log, "convert", "from", from, "to", to, "ok", res.Success, "bytes", len(text))
	if !res.Success {
		return conversionError(res)
	}
	return a.writeOutput("convert", out, res.Data, string(to))
}
