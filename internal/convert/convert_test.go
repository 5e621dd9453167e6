// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package convert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/toolbench/internal/value"
)

func record(pairs ...string) value.Value {
	o := value.NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Set(pairs[i], value.Str(pairs[i+1]))
	}
	return value.Obj(o)
}

// =============================================================================
// CSV / TSV
// =============================================================================

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected value.Value
	}{
		{
			name:     "simple",
			input:    "a,b\n1,2",
			expected: value.Arr(record("a", "1", "b", "2")),
		},
		{
			name:     "quotes stripped and whitespace trimmed",
			input:    `"name" , "age"` + "\n" + ` "ada" , 36 `,
			expected: value.Arr(record("name", "ada", "age", "36")),
		},
		{
			name:     "short row fills empty",
			input:    "a,b,c\n1",
			expected: value.Arr(record("a", "1", "b", "", "c", "")),
		},
		{
			name:     "extra fields dropped",
			input:    "a\n1,2,3",
			expected: value.Arr(record("a", "1")),
		},
		{
			name:     "blank lines skipped",
			input:    "a\n1\n\n2\n",
			expected: value.Arr(record("a", "1"), record("a", "2")),
		},
		{
			name:     "header only",
			input:    "a,b",
			expected: value.Arr(),
		},
		{
			name:     "crlf line endings",
			input:    "a,b\r\n1,2\r\n",
			expected: value.Arr(record("a", "1", "b", "2")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseCSV(tt.input)
			require.True(t, res.Success, res.Error)
			assert.True(t, value.Equal(tt.expected, res.Data),
				"Expected %s, got %s", tt.expected, res.Data)
		})
	}
}

func TestParseCSV_NoQuotedCommaSupport(t *testing.T) {
	res := ParseCSV("a,b\n\"x,y\",z")
	require.True(t, res.Success)

	row := res.Data.Items()[0].Object()
	a, _ := row.Get("a")
	b, _ := row.Get("b")
	assert.Equal(t, "x", a.Text())
	assert.Equal(t, "y", b.Text())
}

func TestParseTSV_KeepsQuotes(t *testing.T) {
	res := ParseTSV("a\tb\n\"1\"\t2")
	require.True(t, res.Success)
	assert.True(t, value.Equal(value.Arr(record("a", `"1"`, "b", "2")), res.Data))
}

func TestEmptyInput(t *testing.T) {
	tests := []struct {
		name    string
		parse   func(string) ParseResult
		input   string
		message string
	}{
		{"csv empty", ParseCSV, "", "Empty CSV data"},
		{"csv whitespace", ParseCSV, "  \n\t ", "Empty CSV data"},
		{"tsv empty", ParseTSV, "", "Empty TSV data"},
		{"yaml empty", ParseYAML, "", "Empty YAML data"},
		{"yaml whitespace", ParseYAML, "\n\n", "Empty YAML data"},
		{"json empty", ParseJSON, " ", "Empty JSON data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.parse(tt.input)
			require.False(t, res.Success)
			assert.Equal(t, tt.message, res.Error)
			assert.Equal(t, KindEmptyInput, res.Kind())
			assert.True(t, errors.Is(res.Err, ErrEmptyInput))
		})
	}
}

func TestToCSV(t *testing.T) {
	rows := value.Arr(record("a", "1", "b", "2"), record("a", "3", "b", "4"))

	res := ToCSV(rows)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "a,b\n\"1\",\"2\"\n\"3\",\"4\"", res.Data)

	tsv := ToTSV(rows)
	require.True(t, tsv.Success, tsv.Error)
	assert.Equal(t, "a\tb\n1\t2\n3\t4", tsv.Data)
}

func TestToCSV_DoesNotEscapeQuotes(t *testing.T) {
	res := ToCSV(value.Arr(record("q", `say "hi"`)))
	require.True(t, res.Success)
	assert.Equal(t, "q\n\"say \"hi\"\"", res.Data)
}

func TestToCSV_InvalidShape(t *testing.T) {
	tests := []struct {
		name  string
		input value.Value
	}{
		{"empty array", value.Arr()},
		{"string", value.Str("not an array")},
		{"object", record("a", "1")},
		{"array of scalars", value.Arr(value.Num("1"))},
		{"mismatched keys", value.Arr(record("a", "1"), record("b", "2"))},
		{"extra key", value.Arr(record("a", "1"), record("a", "2", "b", "3"))},
		{"mixed row", value.Arr(record("a", "1"), value.Null())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, serialize := range []func(value.Value) Result{ToCSV, ToTSV} {
				res := serialize(tt.input)
				require.False(t, res.Success)
				assert.Equal(t, KindInvalidShape, res.Kind())
				assert.ErrorIs(t, res.Err, ErrInvalidShape)
				assert.NotEmpty(t, res.Error)
			}
		})
	}
}

func TestCSVRoundTrip(t *testing.T) {
	rows := value.Arr(record("a", "1", "b", "2"))

	out := ToCSV(rows)
	require.True(t, out.Success)

	back := ParseCSV(out.Data)
	require.True(t, back.Success)
	assert.True(t, value.Equal(rows, back.Data), "Expected %s, got %s", rows, back.Data)
}

// =============================================================================
// JSON
// =============================================================================

func TestParseJSON_PreservesOrderAndNumbers(t *testing.T) {
	res := ParseJSON(`{"z": 1.50, "a": [true, null, "x"], "m": {}}`)
	require.True(t, res.Success, res.Error)

	obj := res.Data.Object()
	require.Equal(t, []string{"z", "a", "m"}, obj.Keys())

	z, _ := obj.Get("z")
	assert.Equal(t, value.KindNumber, z.Kind())
	assert.Equal(t, "1.50", z.Text())
}

func TestParseJSON_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", `{"a": }`},
		{"truncated", `{"a": 1`},
		{"trailing value", `{} {}`},
		{"trailing garbage", `[1] x`},
		{"bare word", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseJSON(tt.input)
			require.False(t, res.Success)
			assert.Equal(t, KindParseError, res.Kind())
			assert.ErrorIs(t, res.Err, ErrParse)
			assert.Contains(t, res.Error, "Invalid JSON")
		})
	}
}

func TestToJSON(t *testing.T) {
	res := ParseJSON(`{"name":"a<b&c","list":[1,2],"empty":[],"obj":{},"nested":{"k":null}}`)
	require.True(t, res.Success)

	out := ToJSON(res.Data)
	require.True(t, out.Success)

	expected := `{
  "name": "a<b&c",
  "list": [
    1,
    2
  ],
  "empty": [],
  "obj": {},
  "nested": {
    "k": null
  }
}`
	assert.Equal(t, expected, out.Data)
}

func TestToJSON_Idempotent(t *testing.T) {
	inputs := []string{
		`{"b":1,"a":[1,{"c":"d"}]}`,
		`[1, 2.0, -3e5, "x"]`,
		`"scalar"`,
		`null`,
		`{"unicode":"héllo ☃","esc":"line\nbreak"}`,
	}

	for _, input := range inputs {
		first := ToJSON(ParseJSON(input).Data)
		require.True(t, first.Success)
		second := ToJSON(ParseJSON(first.Data).Data)
		require.True(t, second.Success)
		assert.Equal(t, first.Data, second.Data)
	}
}

// =============================================================================
// YAML
// =============================================================================

func TestParseYAML(t *testing.T) {
	input := `# settings
name: toolbench

url: http://example.com:8080
no colon here
  indented :  value  `

	res := ParseYAML(input)
	require.True(t, res.Success, res.Error)
	assert.True(t, value.Equal(
		record("name", "toolbench", "url", "http://example.com:8080", "indented", "value"),
		res.Data,
	), "got %s", res.Data)
}

func TestToYAML(t *testing.T) {
	nested := value.NewObject()
	nested.Set("k", value.Num("1"))
	withNested := value.NewObject()
	withNested.Set("a", value.Str("x"))
	withNested.Set("n", value.Obj(nested))

	tests := []struct {
		name     string
		input    value.Value
		expected string
	}{
		{"records", value.Arr(record("a", "1", "b", "2"), record("a", "3", "b", "4")),
			"- a: 1\n  b: 2\n- a: 3\n  b: 4"},
		{"scalar items", value.Arr(value.Num("1"), value.Str("two")), "- 1\n- two"},
		{"object", record("name", "x", "v", "y"), "name: x\nv: y"},
		{"nested coerced", value.Obj(withNested), "a: x\nn: {\"k\":1}"},
		{"scalar", value.Bool(true), "true"},
		{"empty array", value.Arr(), "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ToYAML(tt.input)
			require.True(t, res.Success)
			assert.Equal(t, tt.expected, res.Data)
		})
	}
}

// =============================================================================
// PIPELINE
// =============================================================================

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		from, to Format
		expected string
		kind     ErrorKind
	}{
		{"csv to json", "a,b\n1,2", FormatCSV, FormatJSON, "[\n  {\n    \"a\": \"1\",\n    \"b\": \"2\"\n  }\n]", 0},
		{"json to tsv", `[{"x":1,"y":"z"}]`, FormatJSON, FormatTSV, "x\ty\n1\tz", 0},
		{"yaml to json", "k: v", FormatYAML, FormatJSON, "{\n  \"k\": \"v\"\n}", 0},
		{"csv to yaml", "a\n1\n2", FormatCSV, FormatYAML, "- a: 1\n- a: 2", 0},
		{"yaml to csv fails", "k: v", FormatYAML, FormatCSV, "", KindInvalidShape},
		{"bad json", "{", FormatJSON, FormatCSV, "", KindParseError},
		{"empty csv", "", FormatCSV, FormatJSON, "", KindEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Convert(tt.input, tt.from, tt.to)
			if tt.kind != 0 {
				require.False(t, res.Success)
				assert.Equal(t, tt.kind, res.Kind())
				return
			}
			require.True(t, res.Success, res.Error)
			assert.Equal(t, tt.expected, res.Data)
		})
	}
}

func TestConverterFor(t *testing.T) {
	for _, f := range Formats() {
		c, err := ConverterFor(f)
		require.NoError(t, err)
		assert.Equal(t, f, c.Format())
	}

	_, err := ConverterFor(Format("xml"))
	assert.Error(t, err)

	res := Parse(Format("xml"), "<a/>")
	assert.False(t, res.Success)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"csv", FormatCSV, false},
		{"YML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"tsv", FormatTSV, false},
		{"xlsx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	f, err := FormatFromPath("data/people.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, ".yaml", f.Extension())
	assert.Equal(t, "text/csv", FormatCSV.MimeType())

	_, err = FormatFromPath("Makefile")
	assert.Error(t, err)
}

func TestError(t *testing.T) {
	inner := errors.New("boom")
	err := NewError(KindParseError, "parse json", "Invalid JSON: boom", inner)

	assert.Equal(t, "parse json: Invalid JSON: boom", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.ErrorIs(t, err, ErrParse)
	assert.NotErrorIs(t, err, ErrInvalidShape)
	assert.Equal(t, "ParseError", err.Kind.String())
	assert.Equal(t, ErrorKind(0), KindOf(inner))
}
