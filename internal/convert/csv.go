// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"fmt"
	"strings"

	"github.com/jeranaias/toolbench/internal/value"
)

// =============================================================================
// DELIMITED TEXT
// =============================================================================

// delimited describes one flavor of line-oriented delimited text.
// Splitting is naive: no quoted fields, no escaped quotes.
type delimited struct {
	name        string
	sep         string
	stripQuotes bool
	quoteOutput bool
}

var (
	csvDialect = delimited{name: "CSV", sep: ",", stripQuotes: true, quoteOutput: true}
	tsvDialect = delimited{name: "TSV", sep: "\t"}
)

// ParseCSV parses comma separated text into a record list.
// The first line is the header. Embedded commas inside quotes are NOT supported.
func ParseCSV(text string) ParseResult {
	return csvDialect.parse(text)
}

// ParseTSV parses tab separated text into a record list.
func ParseTSV(text string) ParseResult {
	return tsvDialect.parse(text)
}

// ToCSV serializes a record list as CSV. Every value is wrapped in double
// quotes without escaping embedded quotes.
func ToCSV(v value.Value) Result {
	return csvDialect.serialize(v)
}

// ToTSV serializes a record list as TSV.
func ToTSV(v value.Value) Result {
	return tsvDialect.serialize(v)
}

func (d delimited) op(verb string) string {
	return verb + " " + strings.ToLower(d.name)
}

func (d delimited) cell(s string) string {
	s = strings.TrimSpace(s)
	if d.stripQuotes {
		s = strings.ReplaceAll(s, `"`, "")
	}
	return s
}

func (d delimited) parse(text string) ParseResult {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return parseFailed(NewError(KindEmptyInput, d.op("parse"),
			fmt.Sprintf("Empty %s data", d.name), nil))
	}

	lines := strings.Split(trimmed, "\n")

	rawHeaders := strings.Split(lines[0], d.sep)
	headers := make([]string, len(rawHeaders))
	for i, h := range rawHeaders {
		headers[i] = d.cell(h)
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, d.sep)
		row := make([]string, 0, len(headers))
		for i := range headers {
			if i >= len(fields) {
				break
			}
			row = append(row, d.cell(fields[i]))
		}
		rows = append(rows, row)
	}

	return parsed(value.Records(headers, rows))
}

func (d delimited) serialize(v value.Value) Result {
	headers, err := recordHeaders(v, d.op("to"))
	if err != nil {
		return Failed(err)
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, d.sep))
	for _, item := range v.Items() {
		b.WriteByte('\n')
		obj := item.Object()
		for i, h := range headers {
			if i > 0 {
				b.WriteString(d.sep)
			}
			cell, _ := obj.Get(h)
			if d.quoteOutput {
				b.WriteString(`"` + cell.String() + `"`)
			} else {
				b.WriteString(cell.String())
			}
		}
	}
	return serialized(b.String())
}

// recordHeaders validates that v is a non-empty array of objects sharing the
// key set of the first row and returns that row's keys.
func recordHeaders(v value.Value, op string) ([]string, error) {
	if v.Kind() != value.KindArray || v.Len() == 0 {
		return nil, NewError(KindInvalidShape, op,
			"Data must be a non-empty array of objects", nil)
	}

	items := v.Items()
	first := items[0]
	if first.Kind() != value.KindObject {
		return nil, NewError(KindInvalidShape, op,
			"Data must be a non-empty array of objects", nil)
	}
	headers := first.Object().Keys()

	for i, item := range items[1:] {
		if item.Kind() != value.KindObject {
			return nil, NewError(KindInvalidShape, op,
				fmt.Sprintf("Row %d is not an object", i+2), nil)
		}
		obj := item.Object()
		if obj.Len() != len(headers) {
			return nil, NewError(KindInvalidShape, op,
				fmt.Sprintf("Row %d has different keys than the header", i+2), nil)
		}
		for _, h := range headers {
			if !obj.Has(h) {
				return nil, NewError(KindInvalidShape, op,
					fmt.Sprintf("Row %d is missing key %q", i+2, h), nil)
			}
		}
	}
	return headers, nil
}
