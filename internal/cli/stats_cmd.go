// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/storage"
)

// toolUsage is one row of the stats table.
type toolUsage struct {
	storage.ToolCount
	LastUsed *time.Time `json:"last_used,omitempty"`
}

// statsOutput is the --json payload of the stats command.
type statsOutput struct {
	Backend string          `json:"backend"`
	Path    string          `json:"path,omitempty"`
	Total   int64           `json:"total"`
	Tools   []toolUsage     `json:"tools"`
	Recent  []storage.Event `json:"recent,omitempty"`
}

func statsCmd(a *app) *cobra.Command {
	var recent int
	var reset bool

	c := &cobra.Command{
		Use:   "stats",
		Short: "Show how often each tool has been used",
		Long: `Show per-tool invocation counts.

Counts are kept in the backend named by usage.backend (file, sqlite or
none). The sqlite backend also records when each tool last ran, and
--recent lists the latest invocations.`,
		Example: `  toolbench stats
  toolbench stats --recent 10
  toolbench stats --reset`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if recent < 0 {
				return usageErrorf("--recent must not be negative")
			}

			store, err := a.openStore()
			if err != nil {
				return &CommandError{Command: "stats", Action: "open usage store", Err: err}
			}
			defer store.Close()

			ctx := cmd.Context()
			if reset {
				if err := store.Reset(ctx); err != nil {
					return &CommandError{Command: "stats", Action: "reset", Err: err}
				}
				logEvent(a.log, "usage", "reset", true)
				if a.jsonMode {
					return NewJSONResponse("stats", map[string]bool{"reset": true}).Print(a.out)
				}
				fmt.Fprintln(a.out, paint(a.color, SuccessStyle, "Usage counters reset"))
				return nil
			}

			result, err := collectStats(ctx, store, a.cfg.Usage.Backend)
			if err != nil {
				return err
			}

			listerOK := false
			if recent > 0 {
				if lister, ok := store.(storage.EventLister); ok {
					listerOK = true
					result.Recent, err = lister.Recent(ctx, recent)
					if err != nil {
						return &CommandError{Command: "stats", Action: "read events", Err: err}
					}
				}
			}

			if a.jsonMode {
				return NewJSONResponse("stats", result).Print(a.out)
			}
			a.printStats(result, recent > 0 && !listerOK)
			return nil
		},
	}

	c.Flags().IntVar(&recent, "recent", 0, "also list the N most recent invocations (sqlite backend)")
	c.Flags().BoolVar(&reset, "reset", false, "clear all counters")
	return c
}

// collectStats reads counters, and last-use times and the store location when
// the backend has them.
func collectStats(ctx context.Context, store storage.Store, backend string) (statsOutput, error) {
	result := statsOutput{Backend: backend}
	if loc, ok := store.(storage.Located); ok {
		result.Path = loc.Path()
	}

	counts, err := store.Counts(ctx)
	if err != nil {
		return result, &CommandError{Command: "stats", Action: "read counts", Err: err}
	}

	reader, hasLastUsed := store.(storage.LastUsedReader)
	for _, tc := range storage.Sorted(counts) {
		row := toolUsage{ToolCount: tc}
		if hasLastUsed {
			at, ok, err := reader.LastUsed(ctx, tc.Tool)
			if err != nil {
				return result, &CommandError{Command: "stats", Action: "read last use", Err: err}
			}
			if ok {
				row.LastUsed = &at
			}
		}
		result.Tools = append(result.Tools, row)
		result.Total += tc.Count
	}
	return result, nil
}

func (a *app) printStats(s statsOutput, recentUnsupported bool) {
	w := a.out

	fmt.Fprintln(w, paint(a.color, TitleStyle, "Tool usage"))
	if s.Path != "" {
		fmt.Fprintln(w, paint(a.color, DimStyle, fmt.Sprintf("%s store: %s", s.Backend, s.Path)))
	}
	fmt.Fprintln(w, paint(a.color, SeparatorStyle, RenderSeparator(30)))

	if len(s.Tools) == 0 {
		fmt.Fprintln(w, paint(a.color, DimStyle, "No tools used yet"))
	}
	for _, tc := range s.Tools {
		if tc.LastUsed == nil {
			fmt.Fprintf(w, "%s%d\n", a.label(tc.Tool, 12), tc.Count)
			continue
		}
		fmt.Fprintf(w, "%s%-8d%s\n", a.label(tc.Tool, 12), tc.Count,
			paint(a.color, DimStyle, "last used "+tc.LastUsed.Local().Format(time.DateTime)))
	}
	if len(s.Tools) > 0 {
		fmt.Fprintf(w, "%s%d\n", a.label("total", 12), s.Total)
	}

	if recentUnsupported {
		fmt.Fprintln(w)
		fmt.Fprintln(w, paint(a.color, DimStyle, fmt.Sprintf("Recent invocations need the sqlite backend (current: %s)", s.Backend)))
		return
	}
	if len(s.Recent) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, paint(a.color, TitleStyle, "Recent"))
	for _, e := range s.Recent {
		fmt.Fprintf(w, "%s%s\n", a.label(e.At.Local().Format(time.DateTime), 22), e.Tool)
	}
}

// label pads text to width, styled when color is on.
func (a *app) label(text string, width int) string {
	if a.color {
		return RenderLabel(text, width)
	}
	return fmt.Sprintf("%-*s", width, text)
}
