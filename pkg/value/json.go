// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Marshal encodes v in the engine's externally tagged wire form.
// A nil Value encodes as Null.
func Marshal(v Value) ([]byte, error) {
	if v == nil {
		return Null{}.MarshalJSON()
	}
	return json.Marshal(v)
}

// MarshalJSON implements json.Marshaler.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte(`"Null"`), nil
}

// MarshalJSON implements json.Marshaler.
func (b Bool) MarshalJSON() ([]byte, error) {
	return tagged(KindBool, bool(b))
}

// MarshalJSON implements json.Marshaler.
func (i Int) MarshalJSON() ([]byte, error) {
	return tagged(KindInt, int64(i))
}

// MarshalJSON implements json.Marshaler. NaN and infinities return an error.
func (f Float) MarshalJSON() ([]byte, error) {
	return tagged(KindFloat, float64(f))
}

// MarshalJSON implements json.Marshaler.
func (s String) MarshalJSON() ([]byte, error) {
	return tagged(KindString, string(s))
}

// MarshalJSON implements json.Marshaler. The payload is standard padded base64.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return tagged(KindBytes, base64.StdEncoding.EncodeToString(b))
}

// MarshalJSON implements json.Marshaler.
func (a Array) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(a))
	for i, v := range a {
		raw, err := Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		items[i] = raw
	}
	return tagged(KindArray, items)
}

// MarshalJSON implements json.Marshaler.
func (o Object) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage, len(o))
	for k, v := range o {
		raw, err := Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		fields[k] = raw
	}
	return tagged(KindObject, fields)
}

func tagged(kind string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	var buf bytes.Buffer
	buf.Grow(len(kind) + len(body) + 5)
	buf.WriteString(`{"`)
	buf.WriteString(kind)
	buf.WriteString(`":`)
	buf.Write(body)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Unmarshal decodes a value from the engine's externally tagged wire form.
//
// "Null" and {"Null": null} both decode to Null. Bytes accept either a
// base64 string or an array of integers in 0..255. Any other shape, an
// unknown tag, or a payload of the wrong type is an error.
func Unmarshal(data []byte) (Value, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("empty value")
	}

	if data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return nil, err
		}
		if tag != KindNull {
			return nil, fmt.Errorf("unknown unit value %q", tag)
		}
		return Null{}, nil
	}

	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("value is not a tagged object: %w", err)
	}
	if len(outer) != 1 {
		return nil, fmt.Errorf("value must have exactly one tag, got %d", len(outer))
	}

	for kind, payload := range outer {
		return decodeTagged(kind, payload)
	}
	panic("unreachable")
}

func decodeTagged(kind string, payload json.RawMessage) (Value, error) {
	switch kind {
	case KindNull:
		if !isNull(payload) {
			return nil, fmt.Errorf("Null payload must be null")
		}
		return Null{}, nil

	case KindBool:
		var b bool
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, fmt.Errorf("Bool: %w", err)
		}
		return Bool(b), nil

	case KindInt:
		var i int64
		if err := json.Unmarshal(payload, &i); err != nil {
			return nil, fmt.Errorf("Int: %w", err)
		}
		return Int(i), nil

	case KindFloat:
		var f float64
		if err := json.Unmarshal(payload, &f); err != nil {
			return nil, fmt.Errorf("Float: %w", err)
		}
		return Float(f), nil

	case KindString:
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, fmt.Errorf("String: %w", err)
		}
		return String(s), nil

	case KindBytes:
		return decodeBytes(payload)

	case KindArray:
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return nil, fmt.Errorf("Array: %w", err)
		}
		if items == nil {
			return nil, fmt.Errorf("Array payload must be an array")
		}
		arr := make(Array, len(items))
		for i, item := range items {
			v, err := Unmarshal(item)
			if err != nil {
				return nil, fmt.Errorf("array[%d]: %w", i, err)
			}
			arr[i] = v
		}
		return arr, nil

	case KindObject:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(payload, &fields); err != nil {
			return nil, fmt.Errorf("Object: %w", err)
		}
		if fields == nil {
			return nil, fmt.Errorf("Object payload must be an object")
		}
		obj := make(Object, len(fields))
		for k, raw := range fields {
			v, err := Unmarshal(raw)
			if err != nil {
				return nil, fmt.Errorf("object[%q]: %w", k, err)
			}
			obj[k] = v
		}
		return obj, nil

	default:
		return nil, fmt.Errorf("unknown value tag %q", kind)
	}
}

func decodeBytes(payload json.RawMessage) (Value, error) {
	var s string
	if err := json.Unmarshal(payload, &s); err == nil {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("Bytes: %w", err)
		}
		return Bytes(b), nil
	}

	// serde's default Vec<u8> form.
	var ints []int
	if err := json.Unmarshal(payload, &ints); err != nil || ints == nil {
		return nil, fmt.Errorf("Bytes payload must be base64 or an array of bytes")
	}
	b := make([]byte, len(ints))
	for i, n := range ints {
		if n < 0 || n > 255 {
			return nil, fmt.Errorf("Bytes[%d]: %d out of range", i, n)
		}
		b[i] = byte(n)
	}
	return Bytes(b), nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// Box carries a Value through encoding/json. It exists because struct fields
// of interface type cannot be decoded directly. A nil V encodes as JSON null
// and JSON null decodes to a nil V, which is how optional values are absent.
type Box struct {
	V Value
}

// MarshalJSON implements json.Marshaler.
func (b Box) MarshalJSON() ([]byte, error) {
	if b.V == nil {
		return []byte("null"), nil
	}
	return Marshal(b.V)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Box) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		b.V = nil
		return nil
	}
	v, err := Unmarshal(data)
	if err != nil {
		return err
	}
	b.V = v
	return nil
}
