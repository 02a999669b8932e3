// Copyright 2026 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides colored terminal output for the foundry CLI.
//
// Helpers write to an io.Writer so commands can be tested against a buffer.
// Colors follow the --no-color flag and the NO_COLOR environment variable,
// and fatih/color turns them off when stdout is not a TTY.
//
// Color usage:
//   - Red: errors
//   - Yellow: warnings, versions
//   - Green: success
//   - Cyan: info, counts
//   - Bold: headers, labels
//   - Dim: timestamps, paths
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Shared color instances. They read the global color.NoColor each time they
// print, so InitColors applies to all of them.
var (
	// Red marks errors.
	Red = color.New(color.FgRed)

	// Yellow marks warnings and versions.
	Yellow = color.New(color.FgYellow)

	// Green marks success.
	Green = color.New(color.FgGreen)

	// Cyan marks info lines and counts.
	Cyan = color.New(color.FgCyan)

	// Bold marks headers and field labels.
	Bold = color.New(color.Bold)

	// Dim marks timestamps and paths.
	Dim = color.New(color.Faint)
)

// InitColors sets global color output. Call it right after flag parsing so
// every later helper honors --no-color. fatih/color already reads NO_COLOR;
// the flag default in main mirrors it.
func InitColors(noColor bool) {
	color.NoColor = noColor
}

// Success writes "✓ msg" in green.
//
// Example output: "✓ Sample dataset written"
func Success(w io.Writer, msg string) {
	_, _ = Green.Fprintln(w, "✓ "+msg)
}

// Successf is Success with a format string.
//
// Example output: "✓ user:alice = "Alice" (v3)"
func Successf(w io.Writer, format string, args ...any) {
	_, _ = Green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Warning writes "⚠ msg" in yellow.
func Warning(w io.Writer, msg string) {
	_, _ = Yellow.Fprintln(w, "⚠ "+msg)
}

// Warningf is Warning with a format string.
func Warningf(w io.Writer, format string, args ...any) {
	_, _ = Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Error writes "✗ msg" in red.
func Error(w io.Writer, msg string) {
	_, _ = Red.Fprintln(w, "✗ "+msg)
}

// Info writes "ℹ msg" in cyan.
func Info(w io.Writer, msg string) {
	_, _ = Cyan.Fprintln(w, "ℹ "+msg)
}

// Infof is Info with a format string.
func Infof(w io.Writer, format string, args ...any) {
	_, _ = Cyan.Fprintf(w, "ℹ "+format+"\n", args...)
}

// Header writes a bold header underlined with '='.
//
//	Strata Database
//	===============
func Header(w io.Writer, text string) {
	_, _ = Bold.Fprintln(w, text)
	fmt.Fprintln(w, strings.Repeat("=", len(text)))
}

// Field writes an indented "label value" line, padding the label to width.
func Field(w io.Writer, label string, width int, value string) {
	pad := width - len(label)
	if pad < 1 {
		pad = 1
	}
	fmt.Fprintf(w, "  %s%s%s\n", Label(label), strings.Repeat(" ", pad), value)
}

// Label returns text in bold.
func Label(text string) string {
	return Bold.Sprint(text)
}

// DimText returns text dimmed.
func DimText(text string) string {
	return Dim.Sprint(text)
}

// CountText returns a count in cyan.
func CountText(count uint64) string {
	return Cyan.Sprint(count)
}

// VersionText returns "v<version>" in yellow.
func VersionText(version uint64) string {
	return Yellow.Sprintf("v%d", version)
}
