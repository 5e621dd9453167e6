// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package xmlconv

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jeranaias/toolbench/internal/convert"
	"github.com/jeranaias/toolbench/internal/value"
)

// Declaration is the header written before every generated document.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// DefaultRoot is the root element name used when the caller has none.
const DefaultRoot = "root"

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// =============================================================================
// JSON -> XML
// =============================================================================

// JSONToXML renders v as an XML document whose outermost element is rootName.
//
// Arrays do not get a wrapper element: every item is written as a sibling
// element carrying the array's name. Consequently a top-level array produces
// several root elements.
func JSONToXML(v value.Value, rootName string) (string, error) {
	if strings.TrimSpace(rootName) == "" {
		return "", convert.NewError(convert.KindInvalidShape, "to xml",
			"Root element name must not be empty", nil)
	}

	var b strings.Builder
	b.WriteString(Declaration)
	b.WriteByte('\n')
	buildXML(&b, v, rootName)
	return b.String(), nil
}

func buildXML(b *strings.Builder, v value.Value, name string) {
	switch v.Kind() {
	case value.KindArray:
		for _, item := range v.Items() {
			buildXML(b, item, name)
		}
	case value.KindObject:
		b.WriteString("<" + name + ">")
		for _, e := range v.Object().Entries() {
			buildXML(b, e.Value, e.Key)
		}
		b.WriteString("</" + name + ">")
	case value.KindNull:
		b.WriteString("<" + name + "></" + name + ">")
	default:
		b.WriteString("<" + name + ">")
		textEscaper.WriteString(b, v.String())
		b.WriteString("</" + name + ">")
	}
}

// =============================================================================
// XML -> JSON
// =============================================================================

type element struct {
	local    string
	text     strings.Builder
	children []*element
}

// XMLToJSON parses an XML document and returns the value of its root element.
// The root's own name is discarded. Attributes, comments and processing
// instructions are ignored.
//
// Failures are *convert.Error values of kind KindInvalidXML.
func XMLToJSON(text string) (value.Value, error) {
	root, err := parseTree(strings.NewReader(text))
	if err != nil {
		return value.Value{}, convert.NewError(convert.KindInvalidXML, "parse xml",
			"Invalid XML: "+err.Error(), err)
	}
	return toValue(root), nil
}

func parseTree(r io.Reader) (*element, error) {
	decoder := xml.NewDecoder(r)

	var stack []*element
	var root *element
	rootClosed := false

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if rootClosed {
				return nil, fmt.Errorf("unexpected element <%s> after document end", t.Name.Local)
			}
			el := &element{local: t.Name.Local}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			} else {
				root = el
			}
			stack = append(stack, el)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				if len(stack) == 0 {
					rootClosed = true
				}
			}

		case xml.CharData:
			if len(stack) == 0 {
				if !isBlank(string(t)) {
					return nil, errors.New("unexpected character data outside root element")
				}
				continue
			}
			stack[len(stack)-1].text.Write(t)
		}
	}

	if root == nil {
		return nil, errors.New("no root element")
	}
	if !rootClosed {
		return nil, io.ErrUnexpectedEOF
	}
	return root, nil
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != '\uFEFF' && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// toValue never yields an array for a single element, so an array already
// stored under a name always comes from an earlier repeat.
func toValue(el *element) value.Value {
	if len(el.children) == 0 {
		return value.Str(el.text.String())
	}

	obj := value.NewObject()
	for _, child := range el.children {
		v := toValue(child)
		existing, ok := obj.Get(child.local)
		switch {
		case !ok:
			obj.Set(child.local, v)
		case existing.Kind() == value.KindArray:
			items := append([]value.Value{}, existing.Items()...)
			obj.Set(child.local, value.Arr(append(items, v)...))
		default:
			obj.Set(child.local, value.Arr(existing, v))
		}
	}
	return value.Obj(obj)
}

// =============================================================================
// RESULT WRAPPERS
// =============================================================================

// ConvertJSONToXML parses jsonText and renders it as XML under rootName.
func ConvertJSONToXML(jsonText, rootName string) convert.Result {
	p := convert.ParseJSON(jsonText)
	if !p.Success {
		return convert.Result{Error: p.Error, Err: p.Err}
	}
	out, err := JSONToXML(p.Data, rootName)
	if err != nil {
		return convert.Failed(err)
	}
	return convert.Result{Success: true, Data: out}
}

// ConvertXMLToJSON parses xmlText and renders the result as indented JSON.
func ConvertXMLToJSON(xmlText string) convert.Result {
	if strings.TrimSpace(xmlText) == "" {
		return convert.Failed(convert.NewError(convert.KindEmptyInput, "parse xml",
			"Empty XML data", nil))
	}
	v, err := XMLToJSON(xmlText)
	if err != nil {
		return convert.Failed(err)
	}
	return convert.ToJSON(v)
}
