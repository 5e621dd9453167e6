// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR KINDS
// =============================================================================

// ErrorKind classifies a conversion failure.
type ErrorKind int

const (
	// KindEmptyInput means parse was called on blank or whitespace-only text.
	KindEmptyInput ErrorKind = iota + 1
	// KindParseError means the underlying format parser rejected the text.
	KindParseError
	// KindInvalidShape means the value does not fit the target format.
	KindInvalidShape
	// KindInvalidXML means the XML parser rejected the document.
	KindInvalidXML
)

// Sentinel errors for errors.Is matching against an *Error.
var (
	ErrEmptyInput   = errors.New("empty input")
	ErrParse        = errors.New("parse error")
	ErrInvalidShape = errors.New("invalid shape")
	ErrInvalidXML   = errors.New("invalid xml")
)

// String returns the string representation of an error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "EmptyInput"
	case KindParseError:
		return "ParseError"
	case KindInvalidShape:
		return "InvalidShape"
	case KindInvalidXML:
		return "InvalidXml"
	default:
		return "Unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindEmptyInput:
		return ErrEmptyInput
	case KindParseError:
		return ErrParse
	case KindInvalidShape:
		return ErrInvalidShape
	case KindInvalidXML:
		return ErrInvalidXML
	default:
		return nil
	}
}

// =============================================================================
// ERROR TYPE
// =============================================================================

// Error is a classified conversion failure.
type Error struct {
	Kind    ErrorKind // Failure class
	Op      string    // Operation that failed (e.g., "parse csv", "to xml")
	Message string    // Human-readable message shown to the user
	Err     error     // Underlying parser error (if any)
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError creates a classified error.
func NewError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
