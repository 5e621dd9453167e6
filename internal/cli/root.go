// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/storage"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command annotations read by the root command.
const (
	// toolAnnotation marks commands whose invocations are counted.
	toolAnnotation = "toolbench/tool"

	// lenientAnnotation lets a command run on defaults when the config is broken.
	lenientAnnotation = "toolbench/lenient-config"
)

// =============================================================================
// APPLICATION STATE
// =============================================================================

// app holds what every command shares: streams, flags and the loaded config.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Global flags
	configPath string
	verbose    bool
	noColor    bool
	jsonMode   bool

	cfg   *config.Config
	log   *log.Logger
	color bool
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, log: newLogger(errOut, false)}
}

// setup loads configuration and prepares logging and color. When lenient,
// a broken config is logged and the defaults are used instead.
func (a *app) setup(lenient bool) error {
	a.log = newLogger(a.errOut, a.verbose)

	var cfg *config.Config
	var err error
	if a.configPath != "" {
		cfg, err = config.LoadFromPath(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		if !lenient {
			return &ConfigError{Path: a.configPath, Err: err}
		}
		logEvent(a.log, "config", "error", err)
		cfg = config.Default()
	}
	a.cfg = cfg

	a.color = colorEnabled(cfg.Output.Color, a.noColor, a.out)
	lipgloss.SetColorProfile(colorProfile(a.color, a.out))

	logEvent(a.log, "config", "path", a.configPath, "color", a.color, "usage", cfg.Usage.Backend)
	return nil
}

// openStore opens the configured usage store.
func (a *app) openStore() (storage.Store, error) {
	return storage.Open(storage.Config{Backend: a.cfg.Usage.Backend, Path: a.cfg.Usage.Path})
}

// track counts one invocation of tool. Failures are logged, never fatal.
func (a *app) track(ctx context.Context, tool string) {
	store, err := a.openStore()
	if err != nil {
		logEvent(a.log, "usage", "tool", tool, "error", err)
		return
	}
	defer store.Close()

	n, err := store.Increment(ctx, tool)
	if err != nil {
		logEvent(a.log, "usage", "tool", tool, "error", err)
		return
	}
	logEvent(a.log, "usage", "tool", tool, "count", n)
}

// =============================================================================
// ROOT COMMAND
// =============================================================================

// Execute runs toolbench with the process arguments and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes args and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(in, out, errOut)
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	if !isSilent(err) {
		if a.jsonMode {
			DisplayErrorJSON(out, err)
		} else {
			DisplayError(errOut, err, a.color)
		}
	}
	return GetExitCode(err)
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "toolbench",
		Short: "toolbench - data format conversion and text diffing",
		Long: `toolbench converts tabular and structured data between CSV, TSV, JSON,
YAML and XML, and compares texts line by line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(cmd.Annotations[lenientAnnotation] == "true"); err != nil {
				return err
			}
			if tool := cmd.Annotations[toolAnnotation]; tool != "" {
				a.track(cmd.Context(), tool)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ~/.toolbench/config.toml)")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log events to stderr")
	cmd.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "machine-readable output where supported")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	cmd.AddCommand(
		convertCmd(a),
		xmlCmd(a),
		diffCmd(a),
		statsCmd(a),
		configCmd(a),
		versionCmd(a),
	)
	return cmd
}

// exactArgs is cobra.ExactArgs reporting a UsageError.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErrorf("%s accepts %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs reporting a UsageError.
func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return usageErrorf("%s accepts at most %d arg(s), received %d", cmd.CommandPath(), n, len(args))
		}
		return nil
	}
}

// isCanceled reports whether err came from context cancellation.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
