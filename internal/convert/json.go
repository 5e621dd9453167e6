// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/toolbench/internal/value"
)

// =============================================================================
// PARSE
// =============================================================================

// ParseJSON parses a JSON document, keeping object key order and number literals.
func ParseJSON(text string) ParseResult {
	if strings.TrimSpace(text) == "" {
		return parseFailed(NewError(KindEmptyInput, "parse json", "Empty JSON data", nil))
	}

	v, err := DecodeJSON(text)
	if err != nil {
		return parseFailed(err)
	}
	return parsed(v)
}

// DecodeJSON decodes exactly one JSON value from text.
// Failures are returned as *Error with KindParseError.
func DecodeJSON(text string) (value.Value, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return value.Value{}, jsonError(err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected content after top-level value at offset %d", dec.InputOffset())
		}
		return value.Value{}, jsonError(err)
	}
	return v, nil
}

func jsonError(err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return NewError(KindParseError, "parse json", "Invalid JSON: "+err.Error(), err)
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := value.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return value.Value{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return value.Value{}, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				child, err := decodeValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				obj.Set(key, child)
			}
			if _, err := dec.Token(); err != nil { // '}'
				return value.Value{}, err
			}
			return value.Obj(obj), nil
		case '[':
			items := []value.Value{}
			for dec.More() {
				child, err := decodeValue(dec)
				if err != nil {
					return value.Value{}, err
				}
				items = append(items, child)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return value.Value{}, err
			}
			return value.Arr(items...), nil
		default:
			return value.Value{}, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return value.Str(t), nil
	case json.Number:
		return value.Num(t.String()), nil
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null(), nil
	default:
		return value.Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

// =============================================================================
// SERIALIZE
// =============================================================================

// ToJSON pretty prints v with two-space indentation and insertion-ordered keys.
func ToJSON(v value.Value) Result {
	return serialized(EncodeJSON(v, "  "))
}

// EncodeJSON renders v as JSON. An empty indent produces compact output.
func EncodeJSON(v value.Value, indent string) string {
	if indent == "" {
		return v.String()
	}
	var b strings.Builder
	writeJSON(&b, v, indent, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, v value.Value, indent string, depth int) {
	switch v.Kind() {
	case value.KindString:
		b.WriteString(value.QuoteJSON(v.Text()))
	case value.KindArray:
		items := v.Items()
		if len(items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range items {
			b.WriteString(strings.Repeat(indent, depth+1))
			writeJSON(b, item, indent, depth+1)
			if i < len(items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte(']')
	case value.KindObject:
		entries := v.Object().Entries()
		if len(entries) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		for i, e := range entries {
			b.WriteString(strings.Repeat(indent, depth+1))
			b.WriteString(value.QuoteJSON(e.Key))
			b.WriteString(": ")
			writeJSON(b, e.Value, indent, depth+1)
			if i < len(entries)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(indent, depth))
		b.WriteByte('}')
	default:
		b.WriteString(v.String())
	}
}
