// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"fmt"

	"github.com/jeranaias/toolbench/internal/value"
)

// =============================================================================
// CONVERTER INTERFACE
// =============================================================================

// Converter parses and serializes one structured format.
type Converter interface {
	// Parse reads text into the canonical value.
	Parse(text string) ParseResult

	// Serialize writes the canonical value as text.
	Serialize(v value.Value) Result

	// Format returns the format handled by the converter.
	Format() Format
}

type funcConverter struct {
	format    Format
	parse     func(string) ParseResult
	serialize func(value.Value) Result
}

func (c funcConverter) Parse(text string) ParseResult  { return c.parse(text) }
func (c funcConverter) Serialize(v value.Value) Result { return c.serialize(v) }
func (c funcConverter) Format() Format                 { return c.format }

var registry = map[Format]Converter{
	FormatCSV:  funcConverter{FormatCSV, ParseCSV, ToCSV},
	FormatTSV:  funcConverter{FormatTSV, ParseTSV, ToTSV},
	FormatJSON: funcConverter{FormatJSON, ParseJSON, ToJSON},
	FormatYAML: funcConverter{FormatYAML, ParseYAML, ToYAML},
}

// ConverterFor returns the converter registered for format.
func ConverterFor(format Format) (Converter, error) {
	c, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("no converter for format %q", format)
	}
	return c, nil
}

// =============================================================================
// PIPELINE
// =============================================================================

// Parse dispatches to the parser for format.
func Parse(format Format, text string) ParseResult {
	c, err := ConverterFor(format)
	if err != nil {
		return parseFailed(err)
	}
	return c.Parse(text)
}

// Serialize dispatches to the serializer for format.
func Serialize(format Format, v value.Value) Result {
	c, err := ConverterFor(format)
	if err != nil {
		return Failed(err)
	}
	return c.Serialize(v)
}

// Convert parses text as from and serializes it as to. The first failing
// stage's result is returned unchanged.
func Convert(text string, from, to Format) Result {
	p := Parse(from, text)
	if !p.Success {
		return Result{Error: p.Error, Err: p.Err}
	}
	return Serialize(to, p.Data)
}
