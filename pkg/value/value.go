// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package value defines the closed value union exchanged with the Strata engine.
//
// A Value is one of Null, Bool, Int, Float, String, Bytes, Array or Object.
// The set is sealed: only the types in this package implement Value, so a
// type switch over the eight variants is exhaustive.
//
// # Wire Format
//
// Values cross the bridge in the engine's externally tagged form:
//
//	"Null"
//	{"Bool": true}
//	{"Int": 42}
//	{"Float": 0.5}
//	{"String": "hello"}
//	{"Bytes": "aGVsbG8="}          // standard base64, padded
//	{"Array": [{"Int": 1}, "Null"]}
//	{"Object": {"name": {"String": "alice"}}}
//
// Use Marshal and Unmarshal for this form. For human-entered or plain JSON
// (no tags) use ParseJSON, FromPlain and Plain.
package value

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a sealed interface over the engine's value variants.
type Value interface {
	// Kind returns the variant tag used on the wire ("Int", "Object", ...).
	Kind() string

	// String returns a compact, human-readable rendering.
	String() string

	value()
}

// Variant tags.
const (
	KindNull   = "Null"
	KindBool   = "Bool"
	KindInt    = "Int"
	KindFloat  = "Float"
	KindString = "String"
	KindBytes  = "Bytes"
	KindArray  = "Array"
	KindObject = "Object"
)

// Null is the absent value. Use an explicit Null rather than a nil Value.
type Null struct{}

// Bool is a boolean value.
type Bool bool

// Int is a signed 64-bit integer value.
type Int int64

// Float is a 64-bit floating point value. NaN and infinities cannot be encoded.
type Float float64

// String is a UTF-8 string value.
type String string

// Bytes is an opaque byte string, base64 encoded on the wire.
type Bytes []byte

// Array is an ordered sequence of values.
type Array []Value

// Object maps unique field names to values. Field order is not significant.
type Object map[string]Value

func (Null) value()   {}
func (Bool) value()   {}
func (Int) value()    {}
func (Float) value()  {}
func (String) value() {}
func (Bytes) value()  {}
func (Array) value()  {}
func (Object) value() {}

// Kind implements Value.
func (Null) Kind() string { return KindNull }

// Kind implements Value.
func (Bool) Kind() string { return KindBool }

// Kind implements Value.
func (Int) Kind() string { return KindInt }

// Kind implements Value.
func (Float) Kind() string { return KindFloat }

// Kind implements Value.
func (String) Kind() string { return KindString }

// Kind implements Value.
func (Bytes) Kind() string { return KindBytes }

// Kind implements Value.
func (Array) Kind() string { return KindArray }

// Kind implements Value.
func (Object) Kind() string { return KindObject }

// String returns "null".
func (Null) String() string { return "null" }

// String implements fmt.Stringer.
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String implements fmt.Stringer.
func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String formats f so it never reads as an Int: 1 prints as "1.0".
func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	// Keep floats visually distinct from ints.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// String returns the text unquoted.
func (s String) String() string { return string(s) }

// String returns the length only, e.g. "<3 bytes>".
func (b Bytes) String() string { return fmt.Sprintf("<%d bytes>", len(b)) }

// String implements fmt.Stringer. Nested strings are quoted.
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = nested(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// String lists the fields in key order.
func (o Object) String() string {
	keys := o.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = strconv.Quote(k) + ": " + nested(o[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// nested renders a value inside a container, quoting strings so that
// ["a, b"] and ["a", "b"] stay distinguishable.
func nested(v Value) string {
	if v == nil {
		return "null"
	}
	if s, ok := v.(String); ok {
		return strconv.Quote(string(s))
	}
	return v.String()
}

// Keys returns the object's field names in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether a and b are structurally equal. A nil Value is
// treated as Null. Floats compare by value, so NaN is never equal to itself.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Array:
		bv, ok := b.(Array)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Object:
		bv, ok := b.(Object)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, exists := bv[k]
			if !exists || !Equal(v, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Pair is a field for ObjectOf.
type Pair struct {
	Key   string
	Value Value
}

// P is shorthand for a Pair.
func P(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// ObjectOf builds an Object from pairs. Later pairs overwrite earlier ones
// with the same key.
func ObjectOf(pairs ...Pair) Object {
	obj := make(Object, len(pairs))
	for _, p := range pairs {
		obj[p.Key] = p.Value
	}
	return obj
}

// ArrayOf builds an Array from values.
func ArrayOf(vals ...Value) Array {
	return Array(vals)
}

// Strings builds an Array of String values.
func Strings(ss ...string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}
