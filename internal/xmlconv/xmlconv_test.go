// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package xmlconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/toolbench/internal/convert"
	"github.com/jeranaias/toolbench/internal/value"
)

func mustJSON(t *testing.T, text string) value.Value {
	t.Helper()
	v, err := convert.DecodeJSON(text)
	require.NoError(t, err)
	return v
}

func TestJSONToXML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		root     string
		expected string
	}{
		{"scalar", `"hi"`, "msg", "<msg>hi</msg>"},
		{"escaping", `"a < b && c > d \"q\""`, "t", `<t>a &lt; b &amp;&amp; c &gt; d "q"</t>`},
		{"null", `{"x":null}`, "root", "<root><x></x></root>"},
		{"array siblings", `{"item":[1,"two",true]}`, "root", "<root><item>1</item><item>two</item><item>true</item></root>"},
		{"nested", `{"a":{"b":"c"},"d":2.50}`, "doc", "<doc><a><b>c</b></a><d>2.50</d></doc>"},
		{"empty object", `{}`, "root", "<root></root>"},
		{"top-level array", `[1,2]`, "n", "<n>1</n><n>2</n>"},
		{"empty array", `{"a":[]}`, "root", "<root></root>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := JSONToXML(mustJSON(t, tt.input), tt.root)
			require.NoError(t, err)
			assert.Equal(t, Declaration+"\n"+tt.expected, out)
		})
	}
}

func TestJSONToXML_EmptyRoot(t *testing.T) {
	_, err := JSONToXML(value.Str("x"), " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, convert.ErrInvalidShape)
}

func TestXMLToJSON(t *testing.T) {
	input := `<?xml version="1.0"?>
<!-- people -->
<people version="2">
  <person><name>Ada</name><lang>en</lang></person>
  <person><name>Grace</name><lang>en</lang></person>
  <person><name>Linus</name><lang>fi</lang></person>
  <count>3</count>
  <empty/>
</people>`

	v, err := XMLToJSON(input)
	require.NoError(t, err)

	expected := mustJSON(t, `{
		"person": [
			{"name": "Ada", "lang": "en"},
			{"name": "Grace", "lang": "en"},
			{"name": "Linus", "lang": "fi"}
		],
		"count": "3",
		"empty": ""
	}`)
	assert.True(t, value.Equal(expected, v), "got %s", v)
}

func TestXMLToJSON_LeafRoot(t *testing.T) {
	v, err := XMLToJSON("<greeting>hello &amp; bye</greeting>")
	require.NoError(t, err)
	assert.Equal(t, value.Str("hello & bye"), v)
}

func TestXMLToJSON_LeafKeepsWhitespace(t *testing.T) {
	v, err := XMLToJSON("<r><a>\n  hi \n</a><b> x </b></r>")
	require.NoError(t, err)

	expected := value.NewObject()
	expected.Set("a", value.Str("\n  hi \n"))
	expected.Set("b", value.Str(" x "))
	assert.True(t, value.Equal(value.Obj(expected), v), "got %s", v)
}

func TestXMLToJSON_Namespaces(t *testing.T) {
	v, err := XMLToJSON(`<r xmlns:x="urn:x"><x:a>1</x:a></r>`)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"1"}`, v.String())
}

func TestXMLToJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed", "<a><b></a>"},
		{"truncated", "<a><b>1</b>"},
		{"no root", "   "},
		{"text only", "hello"},
		{"two roots", "<a/><b/>"},
		{"trailing text", "<a/>junk"},
		{"undefined entity", "<a>&nbsp;</a>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := XMLToJSON(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, convert.ErrInvalidXML)
			assert.Equal(t, convert.KindInvalidXML, convert.KindOf(err))
		})
	}
}

// A one-element array does not survive the round trip: it comes back as a scalar string.
func TestRoundTrip_SingleElementArrayCollapses(t *testing.T) {
	xmlText, err := JSONToXML(mustJSON(t, `{"a":[1]}`), "root")
	require.NoError(t, err)

	v, err := XMLToJSON(xmlText)
	require.NoError(t, err)

	assert.True(t, value.Equal(mustJSON(t, `{"a":"1"}`), v), "got %s", v)
}

func TestRoundTrip_MultiElementArray(t *testing.T) {
	xmlText, err := JSONToXML(mustJSON(t, `{"a":["x","y"],"b":"z"}`), "root")
	require.NoError(t, err)

	v, err := XMLToJSON(xmlText)
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x","y"],"b":"z"}`, v.String())
}

func TestResultWrappers(t *testing.T) {
	res := ConvertJSONToXML(`{"a":"b"}`, "root")
	require.True(t, res.Success, res.Error)
	assert.Equal(t, Declaration+"\n<root><a>b</a></root>", res.Data)

	bad := ConvertJSONToXML(`{`, "root")
	assert.False(t, bad.Success)
	assert.Equal(t, convert.KindParseError, bad.Kind())

	back := ConvertXMLToJSON("<root><a>b</a></root>")
	require.True(t, back.Success, back.Error)
	assert.Equal(t, "{\n  \"a\": \"b\"\n}", back.Data)

	invalid := ConvertXMLToJSON("<root>")
	assert.False(t, invalid.Success)
	assert.Equal(t, convert.KindInvalidXML, invalid.Kind())
	assert.Contains(t, invalid.Error, "Invalid XML")

	empty := ConvertXMLToJSON("")
	assert.Equal(t, convert.KindEmptyInput, empty.Kind())
}
