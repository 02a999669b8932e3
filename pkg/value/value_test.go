// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package value

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleValues() map[string]Value {
	return map[string]Value{
		"null":         Null{},
		"bool":         Bool(true),
		"int":          Int(-42),
		"int max":      Int(math.MaxInt64),
		"float":        Float(0.92),
		"float whole":  Float(3),
		"string":       String("Alice Chen"),
		"empty string": String(""),
		"bytes":        Bytes{0x00, 0xff, 0x10},
		"empty bytes":  Bytes{},
		"array":        ArrayOf(Int(1), String("two"), Null{}),
		"empty array":  Array{},
		"object": ObjectOf(
			P("name", String("Alice Chen")),
			P("age", Int(30)),
			P("active", Bool(true)),
			P("tags", Strings("admin", "dev")),
		),
		"nested": ObjectOf(
			P("changes", ArrayOf(
				ObjectOf(P("type", String("feature")), P("weight", Float(1.5))),
			)),
		),
	}
}

// TestRoundTrip verifies every variant survives Marshal then Unmarshal.
func TestRoundTrip(t *testing.T) {
	for name, v := range sampleValues() {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(v)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			assert.True(t, Equal(v, got), "round trip changed value: %s -> %s", v, got)
			assert.Equal(t, v.Kind(), got.Kind())
		})
	}
}

func TestMarshal_WireForm(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"null", Null{}, `"Null"`},
		{"nil is null", nil, `"Null"`},
		{"bool", Bool(false), `{"Bool":false}`},
		{"int", Int(1), `{"Int":1}`},
		{"float", Float(0.5), `{"Float":0.5}`},
		{"string", String("a"), `{"String":"a"}`},
		{"bytes", Bytes("hello"), `{"Bytes":"aGVsbG8="}`},
		{"array", ArrayOf(Int(1), Null{}), `{"Array":[{"Int":1},"Null"]}`},
		{"object", ObjectOf(P("b", Int(2)), P("a", Int(1))), `{"Object":{"a":{"Int":1},"b":{"Int":2}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.in)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestMarshal_NonFiniteFloat(t *testing.T) {
	_, err := Marshal(Float(math.NaN()))
	assert.Error(t, err)

	_, err = Marshal(ArrayOf(Float(math.Inf(1))))
	assert.Error(t, err)
}

func TestUnmarshal_Accepts(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"tagged null", `{"Null":null}`, Null{}},
		{"bytes as ints", `{"Bytes":[104,105]}`, Bytes("hi")},
		{"whitespace", "  {\"Int\" : 7}\n", Int(7)},
		{"float without fraction", `{"Float":2}`, Float(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Unmarshal([]byte(tt.in))
			require.NoError(t, err)
			assert.True(t, Equal(tt.want, got), "got %s", got)
		})
	}
}

func TestUnmarshal_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ``},
		{"plain number", `1`},
		{"unknown unit", `"Nothing"`},
		{"unknown tag", `{"Decimal":"1.0"}`},
		{"two tags", `{"Int":1,"Bool":true}`},
		{"no tags", `{}`},
		{"int type mismatch", `{"Int":"1"}`},
		{"int with fraction", `{"Int":1.5}`},
		{"bool mismatch", `{"Bool":1}`},
		{"bad base64", `{"Bytes":"***"}`},
		{"byte out of range", `{"Bytes":[256]}`},
		{"array payload", `{"Array":{}}`},
		{"null array", `{"Array":null}`},
		{"object payload", `{"Object":[]}`},
		{"bad nested", `{"Array":[{"Int":1},{"Nope":1}]}`},
		{"null with payload", `{"Null":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestBox(t *testing.T) {
	type holder struct {
		Value    Box  `json:"value"`
		Metadata *Box `json:"metadata,omitempty"`
	}

	in := holder{Value: Box{V: ObjectOf(P("k", Int(1)))}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":{"Object":{"k":{"Int":1}}}}`, string(data))

	var out holder
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, Equal(in.Value.V, out.Value.V))
	assert.Nil(t, out.Metadata)

	require.NoError(t, json.Unmarshal([]byte(`{"value":null}`), &out))
	assert.Nil(t, out.Value.V)

	assert.Error(t, json.Unmarshal([]byte(`{"value":5}`), &out))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(nil, Null{}))
	assert.True(t, Equal(Bytes("a"), Bytes("a")))
	assert.False(t, Equal(Int(1), Float(1)))
	assert.False(t, Equal(ArrayOf(Int(1)), ArrayOf(Int(1), Int(2))))
	assert.False(t, Equal(ObjectOf(P("a", Int(1))), ObjectOf(P("b", Int(1)))))
	assert.False(t, Equal(Float(math.NaN()), Float(math.NaN())))
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON(`{"name":"alice","age":30,"score":0.5,"tags":["a"],"none":null,"ok":true}`)
	require.NoError(t, err)

	want := ObjectOf(
		P("name", String("alice")),
		P("age", Int(30)),
		P("score", Float(0.5)),
		P("tags", Strings("a")),
		P("none", Null{}),
		P("ok", Bool(true)),
	)
	assert.True(t, Equal(want, got), "got %s", got)

	big, err := ParseJSON(`1e3`)
	require.NoError(t, err)
	assert.Equal(t, Float(1000), big)

	_, err = ParseJSON(`{"a":1} {"b":2}`)
	assert.Error(t, err)

	_, err = ParseJSON(`{`)
	assert.Error(t, err)
}

func TestFromPlain(t *testing.T) {
	v, err := FromPlain(map[string]any{"n": 3, "f": float32(0.5), "b": []byte("x")})
	require.NoError(t, err)
	assert.True(t, Equal(ObjectOf(P("n", Int(3)), P("f", Float(0.5)), P("b", Bytes("x"))), v))

	_, err = FromPlain(struct{}{})
	assert.Error(t, err)
}

func TestPlain(t *testing.T) {
	v := ObjectOf(
		P("n", Int(3)),
		P("raw", Bytes("hi")),
		P("list", ArrayOf(Null{}, Bool(false))),
	)
	assert.Equal(t, map[string]any{
		"n":    int64(3),
		"raw":  "aGk=",
		"list": []any{nil, false},
	}, Plain(v))
}

func TestString(t *testing.T) {
	tests := []struct {
		in   Value
		want string
	}{
		{Null{}, "null"},
		{Int(5), "5"},
		{Float(5), "5.0"},
		{Float(0.25), "0.25"},
		{String("plain"), "plain"},
		{Bytes{1, 2, 3}, "<3 bytes>"},
		{Strings("a, b"), `["a, b"]`},
		{ObjectOf(P("b", Int(2)), P("a", String("x"))), `{"a": "x", "b": 2}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}
