// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
)

// noColor disables colors for the duration of a test.
func noColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = original })
}

func TestInitColors(t *testing.T) {
	original := color.NoColor
	defer func() { color.NoColor = original }()

	for _, want := range []bool{false, true} {
		InitColors(want)
		if color.NoColor != want {
			t.Errorf("InitColors(%v): color.NoColor = %v", want, color.NoColor)
		}
	}
}

func TestMessages(t *testing.T) {
	noColor(t)

	tests := []struct {
		name  string
		write func(*bytes.Buffer)
		want  string
	}{
		{"success", func(b *bytes.Buffer) { Success(b, "Seeded") }, "✓ Seeded\n"},
		{"successf", func(b *bytes.Buffer) { Successf(b, "Wrote %d keys", 15) }, "✓ Wrote 15 keys\n"},
		{"warning", func(b *bytes.Buffer) { Warning(b, "No vectors") }, "⚠ No vectors\n"},
		{"warningf", func(b *bytes.Buffer) { Warningf(b, "%s skipped", "x") }, "⚠ x skipped\n"},
		{"error", func(b *bytes.Buffer) { Error(b, "Failed") }, "✗ Failed\n"},
		{"info", func(b *bytes.Buffer) { Info(b, "Opening") }, "ℹ Opening\n"},
		{"infof", func(b *bytes.Buffer) { Infof(b, "Opening %s", "/tmp/db") }, "ℹ Opening /tmp/db\n"},
		{"header", func(b *bytes.Buffer) { Header(b, "Branches") }, "Branches\n========\n"},
		{"field", func(b *bytes.Buffer) { Field(b, "Keys:", 8, "3") }, "  Keys:   3\n"},
		{"field overflow", func(b *bytes.Buffer) { Field(b, "Very long:", 4, "3") }, "  Very long: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.write(&buf)
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestInlineHelpers(t *testing.T) {
	noColor(t)

	if got := Label("Path:"); got != "Path:" {
		t.Errorf("Label() = %q", got)
	}
	if got := DimText("/tmp/db"); got != "/tmp/db" {
		t.Errorf("DimText() = %q", got)
	}
	if got := CountText(42); got != "42" {
		t.Errorf("CountText() = %q", got)
	}
	if got := VersionText(7); got != "v7" {
		t.Errorf("VersionText() = %q", got)
	}
}
