// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package value

import (
	"bytes"
	"encoding/json"
	"strings"
)

// =============================================================================
// KIND
// =============================================================================

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNull is the JSON null.
	KindNull Kind = iota
	// KindString is a text scalar.
	KindString
	// KindNumber is a numeric scalar kept as its source literal.
	KindNumber
	// KindBool is a boolean scalar.
	KindBool
	// KindObject is an ordered name -> Value mapping.
	KindObject
	// KindArray is a sequence of Values.
	KindArray
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// =============================================================================
// VALUE
// =============================================================================

// Value is a tagged variant: Scalar(string|number|boolean|null) | Object | Array.
// The zero Value is null.
type Value struct {
	kind  Kind
	text  string // string text or number literal
	flag  bool
	obj   *Object
	items []Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Str returns a string value.
func Str(s string) Value { return Value{kind: KindString, text: s} }

// Num returns a number value holding the literal as written (e.g. "1.50", "2e3").
func Num(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, flag: b} }

// Obj returns an object value. A nil object is treated as empty.
func Obj(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Arr returns an array value.
func Arr(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, items: items}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsScalar reports whether v is null, a string, a number or a boolean.
func (v Value) IsScalar() bool {
	return v.kind != KindObject && v.kind != KindArray
}

// Text returns the string text or number literal. Empty for other kinds.
func (v Value) Text() string { return v.text }

// BoolValue returns the boolean held by v.
func (v Value) BoolValue() bool { return v.flag }

// Object returns the object held by v, or nil.
func (v Value) Object() *Object { return v.obj }

// Items returns the array elements held by v, or nil.
func (v Value) Items() []Value { return v.items }

// Len returns the number of elements of an array or entries of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return v.obj.Len()
	default:
		return 0
	}
}

// String returns the display form of v: the text of strings, the literal of
// numbers, "true"/"false", "null", and compact JSON for containers.
func (v Value) String() string {
	switch v.kind {
	case KindString, KindNumber:
		return v.text
	case KindBool:
		if v.flag {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	default:
		var buf bytes.Buffer
		writeCompact(&buf, v)
		return buf.String()
	}
}

// writeCompact writes v as single-line JSON.
func writeCompact(buf *bytes.Buffer, v Value) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindNumber:
		buf.WriteString(v.String())
	case KindString:
		buf.WriteString(QuoteJSON(v.text))
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCompact(buf, item)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, e := range v.obj.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(QuoteJSON(e.Key))
			buf.WriteByte(':')
			writeCompact(buf, e.Value)
		}
		buf.WriteByte('}')
	}
}

// QuoteJSON returns s as a JSON string literal without HTML escaping.
func QuoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// Equal reports whether a and b are structurally equal. Object key order is
// significant only through the values it maps to, not through position.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString, KindNumber:
		return a.text == b.text
	case KindBool:
		return a.flag == b.flag
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for _, e := range a.obj.Entries() {
			other, ok := b.obj.Get(e.Key)
			if !ok || !Equal(e.Value, other) {
				return false
			}
		}
		return true
	}
	return false
}

// =============================================================================
// RECORDS
// =============================================================================

// Records builds the canonical record list: an array of objects whose keys are
// headers (in order) and whose values are strings.
func Records(headers []string, rows [][]string) Value {
	items := make([]Value, 0, len(rows))
	for _, row := range rows {
		o := NewObject()
		for i, h := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			o.Set(h, Str(cell))
		}
		items = append(items, Obj(o))
	}
	return Arr(items...)
}
