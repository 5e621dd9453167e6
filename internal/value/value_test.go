// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_SetKeepsPosition(t *testing.T) {
	o := NewObject()
	o.Set("b", Str("1"))
	o.Set("a", Str("2"))
	o.Set("b", Str("3"))

	require.Equal(t, []string{"b", "a"}, o.Keys())
	got, ok := o.Get("b")
	require.True(t, ok)
	assert.Equal(t, "3", got.Text())
	assert.Equal(t, 2, o.Len())
}

func TestObject_NilSafe(t *testing.T) {
	var o *Object
	assert.Equal(t, 0, o.Len())
	assert.Nil(t, o.Keys())
	_, ok := o.Get("x")
	assert.False(t, ok)
}

func TestValue_String(t *testing.T) {
	o := NewObject()
	o.Set("name", Str("a<b"))
	o.Set("n", Num("1.50"))
	o.Set("ok", Bool(true))
	o.Set("nothing", Null())
	o.Set("list", Arr(Num("1"), Str("x")))

	tests := []struct {
		name     string
		v        Value
		expected string
	}{
		{"string", Str("hello"), "hello"},
		{"number keeps literal", Num("2e3"), "2e3"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"null", Null(), "null"},
		{"zero value is null", Value{}, "null"},
		{"empty array", Arr(), "[]"},
		{"object", Obj(o), `{"name":"a<b","n":1.50,"ok":true,"nothing":null,"list":[1,"x"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.v.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := NewObject()
	a.Set("x", Num("1"))
	a.Set("y", Str("2"))
	b := NewObject()
	b.Set("y", Str("2"))
	b.Set("x", Num("1"))

	assert.True(t, Equal(Obj(a), Obj(b)), "key order does not affect equality")
	assert.False(t, Equal(Num("1"), Str("1")))
	assert.False(t, Equal(Arr(Num("1")), Arr(Num("1"), Num("2"))))
	assert.True(t, Equal(Null(), Value{}))
}

func TestRecords_FillsMissingCells(t *testing.T) {
	v := Records([]string{"a", "b", "c"}, [][]string{{"1", "2"}, {"3", "4", "5"}})

	require.Equal(t, KindArray, v.Kind())
	require.Len(t, v.Items(), 2)

	first := v.Items()[0].Object()
	require.Equal(t, []string{"a", "b", "c"}, first.Keys())
	c, _ := first.Get("c")
	assert.Equal(t, Str(""), c)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
