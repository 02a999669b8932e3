// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

func TestJSONTo(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]any{"branch": "default", "keys": 3}

	if err := JSONTo(&buf, data); err != nil {
		t.Fatalf("JSONTo failed: %v", err)
	}
	want := "{\n  \"branch\": \"default\",\n  \"keys\": 3\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONCompactTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONCompactTo(&buf, map[string]int{"n": 1}); err != nil {
		t.Fatalf("JSONCompactTo failed: %v", err)
	}
	if buf.String() != "{\"n\":1}\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestJSONTo_Unencodable(t *testing.T) {
	var buf bytes.Buffer
	err := JSONTo(&buf, make(chan int))
	if err == nil || !strings.Contains(err.Error(), "JSON encoding failed") {
		t.Errorf("expected encoding error, got %v", err)
	}
}

func TestReply(t *testing.T) {
	tests := []struct {
		name string
		out  protocol.Output
		want string
	}{
		{"unit", protocol.OutUnit{}, "\"Unit\"\n"},
		{"version", protocol.OutVersion(3), "{\n  \"Version\": 3\n}\n"},
		{"missing value", protocol.OutMaybeVersioned{}, "{\n  \"MaybeVersioned\": null\n}\n"},
		{"keys", protocol.OutKeys{"a"}, "{\n  \"Keys\": [\n    \"a\"\n  ]\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Reply(&buf, tt.out); err != nil {
				t.Fatalf("Reply failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestReply_Nil(t *testing.T) {
	var buf bytes.Buffer
	if err := Reply(&buf, nil); err == nil {
		t.Error("expected error for nil output")
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written, got %q", buf.String())
	}
}

func TestRawReply(t *testing.T) {
	var buf bytes.Buffer
	if err := RawReply(&buf, `{"ok":{"Bool":true}}`); err != nil {
		t.Fatalf("RawReply failed: %v", err)
	}
	if !strings.Contains(buf.String(), "\"Bool\": true") {
		t.Errorf("expected indented reply, got %q", buf.String())
	}

	buf.Reset()
	if err := RawReply(&buf, "not json"); err != nil {
		t.Fatalf("RawReply failed: %v", err)
	}
	if buf.String() != "not json\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestValue(t *testing.T) {
	var buf bytes.Buffer
	v := value.ObjectOf(value.P("name", value.String("Alice")), value.P("age", value.Int(30)))
	if err := Value(&buf, v); err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	want := "{\n  \"age\": 30,\n  \"name\": \"Alice\"\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestJSONErrorTo(t *testing.T) {
	var buf bytes.Buffer
	if err := JSONErrorTo(&buf, errors.New("branch not found: ghost")); err != nil {
		t.Fatalf("JSONErrorTo failed: %v", err)
	}
	want := "{\n  \"error\": \"branch not found: ghost\"\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}
