// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package output writes machine-readable results for the foundry CLI.
//
// Engine outputs are printed in their wire form, so `foundry exec` and
// `foundry inspect --json` show exactly what the bridge returned:
//
//	out, err := client.Execute(ctx, protocol.KvGet{Key: "user:alice"})
//	if err != nil {
//	    errors.FatalError(errors.FromBridge("Cannot read key", err), jsonMode)
//	}
//	_ = output.Reply(os.Stdout, out)
//
// Stored values can also be printed as plain JSON, dropping the type tags:
//
//	_ = output.Value(os.Stdout, v)
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
	"github.com/kraklabs/strata-foundry/pkg/value"
)

// JSON writes data as pretty-printed JSON to stdout.
func JSON(data any) error {
	return JSONTo(os.Stdout, data)
}

// JSONTo writes data as JSON indented by two spaces, followed by a newline.
func JSONTo(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// JSONCompactTo writes data as single-line JSON.
func JSONCompactTo(w io.Writer, data any) error {
	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("JSON encoding failed: %w", err)
	}
	return nil
}

// Reply writes out in its externally tagged wire form, indented.
func Reply(w io.Writer, out protocol.Output) error {
	data, err := protocol.EncodeOutput(out)
	if err != nil {
		return err
	}
	return indentTo(w, data)
}

// RawReply re-indents a raw reply. Text that is not JSON is written as is.
func RawReply(w io.Writer, raw string) error {
	if !json.Valid([]byte(raw)) {
		_, err := fmt.Fprintln(w, raw)
		return err
	}
	return indentTo(w, []byte(raw))
}

// Value writes v as plain JSON without type tags. Bytes become base64.
func Value(w io.Writer, v value.Value) error {
	return JSONTo(w, value.Plain(v))
}

func indentTo(w io.Writer, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return fmt.Errorf("JSON indent failed: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

// ErrorJSON is the shape of an error printed in --json mode.
type ErrorJSON struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// JSONErrorTo writes err as an ErrorJSON object.
func JSONErrorTo(w io.Writer, err error) error {
	if encErr := JSONTo(w, ErrorJSON{Error: err.Error()}); encErr != nil {
		return fmt.Errorf("JSON error encoding failed: %w", encErr)
	}
	return nil
}
