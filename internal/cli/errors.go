// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit code mapping for toolbench commands.
//
// Commands always return errors and let Execute display them.

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/toolbench/internal/config"
	"github.com/jeranaias/toolbench/internal/convert"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitDifferences indicates diff found the inputs differ (diff(1) convention)
	ExitDifferences = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitConversionError indicates input could not be converted
	ExitConversionError = 4
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports invalid flags or arguments.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError reports a configuration problem.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// CommandError represents a failed command step with context.
type CommandError struct {
	Command string // Command that failed (e.g., "convert", "diff")
	Action  string // Action being performed (e.g., "read input")
	Err     error  // Underlying error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// errDifferences signals that diff found changes. It carries no message.
var errDifferences = errors.New("inputs differ")

// =============================================================================
// ERROR CONSTRUCTION HELPERS
// =============================================================================

// usageErrorf creates a UsageError from a format string.
func usageErrorf(format string, args ...interface{}) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// conversionError turns a failed convert.Result into an error.
func conversionError(res convert.Result) error {
	if res.Err != nil {
		return res.Err
	}
	return convert.NewError(convert.KindParseError, "", res.Error, nil)
}

// =============================================================================
// EXIT CODE MAPPING
// =============================================================================

// GetExitCode determines the exit code for an error returned by a command.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, errDifferences) {
		return ExitDifferences
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsageError
	}

	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return ExitConfigError
	}
	var validateErrs config.ValidateErrors
	if errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	if convert.KindOf(err) != 0 {
		return ExitConversionError
	}

	// cobra reports argument and command problems as plain errors
	msg := err.Error()
	for _, prefix := range []string{"unknown command", "unknown flag", "unknown shorthand flag", "accepts ", "requires at least", "invalid argument"} {
		if strings.HasPrefix(msg, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

// isSilent reports whether err should exit without printing a message.
func isSilent(err error) bool {
	return errors.Is(err, errDifferences)
}

// =============================================================================
// DISPLAY
// =============================================================================

// DisplayError writes a human-readable error line.
func DisplayError(w io.Writer, err error, color bool) {
	if err == nil {
		return
	}
	label := "error:"
	if color {
		label = ErrorStyle.Render(label)
	}
	fmt.Fprintf(w, "%s %s\n", label, err.Error())
}

// DisplayErrorJSON writes err as a JSON object with its classification.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":     err.Error(),
		"success":   false,
		"exit_code": GetExitCode(err),
	}

	var ce *convert.Error
	var cmdErr *CommandError
	switch {
	case errors.As(err, &ce):
		output["error_type"] = "conversion_error"
		output["kind"] = ce.Kind.String()
		output["message"] = ce.Message
	case errors.As(err, &cmdErr):
		output["error_type"] = "command_error"
		output["command"] = cmdErr.Command
		output["action"] = cmdErr.Action
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.Encode(output)
}
