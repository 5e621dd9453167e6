// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"

	"github.com/jeranaias/toolbench/internal/value"
)

// ParseResult is the discriminated outcome of a parse call.
// Exactly one of Data (Success) or Error/Err (failure) is meaningful.
type ParseResult struct {
	Success bool
	Data    value.Value
	Error   string
	Err     error
}

// Result is the discriminated outcome of a serialize or convert call.
type Result struct {
	Success bool
	Data    string
	Error   string
	Err     error
}

func parsed(v value.Value) ParseResult {
	return ParseResult{Success: true, Data: v}
}

func parseFailed(err error) ParseResult {
	return ParseResult{Error: messageOf(err), Err: err}
}

func serialized(s string) Result {
	return Result{Success: true, Data: s}
}

// Failed wraps err in a failed Result.
func Failed(err error) Result {
	return Result{Error: messageOf(err), Err: err}
}

// Kind returns the error kind of a failed result, or 0 on success.
func (r ParseResult) Kind() ErrorKind { return KindOf(r.Err) }

// Kind returns the error kind of a failed result, or 0 on success.
func (r Result) Kind() ErrorKind { return KindOf(r.Err) }

func messageOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
