// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// maxRawReply bounds how much of a malformed reply an error keeps.
const maxRawReply = 512

// Kind classifies a BridgeError.
type Kind int

const (
	// KindNotOpen means no database handle was open when the call ran.
	KindNotOpen Kind = iota + 1
	// KindBridge means the engine replied with an error envelope.
	KindBridge
	// KindInvalidResponse means the reply could not be decoded, or decoded
	// to a variant other than the one the operation produces.
	KindInvalidResponse
)

// String returns the snake_case name used in logs and metrics labels.
func (k Kind) String() string {
	switch k {
	case KindNotOpen:
		return "not_open"
	case KindBridge:
		return "bridge"
	case KindInvalidResponse:
		return "invalid_response"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrNotOpen matches every KindNotOpen error via errors.Is.
var ErrNotOpen = errors.New("database not open")

// ErrShutdown is returned by calls made after Transport.Shutdown.
var ErrShutdown = errors.New("strata transport shut down")

// BridgeError is the error returned by the transport and client for
// everything the engine or the wire got wrong.
type BridgeError struct {
	Kind Kind

	// Op is the failing operation, e.g. "open" or "execute KvGet".
	Op string

	// Detail is the engine's error detail (KindBridge).
	Detail json.RawMessage

	// Raw is the start of the undecodable reply (KindInvalidResponse),
	// at most 512 bytes.
	Raw string

	// Expected and Actual name the output variants of a shape mismatch.
	Expected string
	Actual   string

	// Err is the underlying decode error, if any.
	Err error
}

// Error implements the error interface.
func (e *BridgeError) Error() string {
	var b strings.Builder
	b.WriteString("strata")
	if e.Op != "" {
		b.WriteString(": ")
		b.WriteString(e.Op)
	}
	switch e.Kind {
	case KindNotOpen:
		b.WriteString(": ")
		b.WriteString(ErrNotOpen.Error())
	case KindBridge:
		b.WriteString(": bridge error: ")
		if d, ok := protocol.ParseErrorDetail(e.Detail); ok {
			b.WriteString(d.Kind)
			if d.Reason != "" {
				b.WriteString(": ")
				b.WriteString(d.Reason)
			}
		} else {
			b.Write(e.Detail)
		}
	case KindInvalidResponse:
		b.WriteString(": invalid response")
		if e.Expected != "" {
			fmt.Fprintf(&b, ": expected %s, got %s", e.Expected, e.Actual)
		} else if e.Err != nil {
			b.WriteString(": ")
			b.WriteString(e.Err.Error())
		}
		if e.Raw != "" && e.Expected == "" {
			fmt.Fprintf(&b, " (reply: %q)", e.Raw)
		}
	default:
		b.WriteString(": ")
		b.WriteString(e.Kind.String())
	}
	return b.String()
}

// Unwrap returns the decode error, if any.
func (e *BridgeError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrNotOpen) report KindNotOpen errors.
func (e *BridgeError) Is(target error) bool {
	return target == ErrNotOpen && e.Kind == KindNotOpen
}

// DetailKind returns the outer tag of the engine error detail, such as
// "Internal". It is empty for non-bridge errors.
func (e *BridgeError) DetailKind() string {
	d, _ := protocol.ParseErrorDetail(e.Detail)
	return d.Kind
}

// Reason returns the engine's human-readable reason, such as
// "invalid handle" or "panic in Rust bridge".
func (e *BridgeError) Reason() string {
	d, _ := protocol.ParseErrorDetail(e.Detail)
	return d.Reason
}

func newNotOpen(op string) *BridgeError {
	recordError(KindNotOpen)
	return &BridgeError{Kind: KindNotOpen, Op: op}
}

func newBridgeError(op string, detail json.RawMessage) *BridgeError {
	recordError(KindBridge)
	return &BridgeError{Kind: KindBridge, Op: op, Detail: detail}
}

// newLocalError reports a failure on the Go side of the boundary in the
// engine's own error shape.
func newLocalError(op string, err error) *BridgeError {
	detail, mErr := json.Marshal(protocol.InternalError(err.Error()))
	if mErr != nil {
		detail = json.RawMessage(`{"Internal":{"reason":"encode failed"}}`)
	}
	be := newBridgeError(op, detail)
	be.Err = err
	return be
}

func newInvalidResponse(op, raw string, err error) *BridgeError {
	recordError(KindInvalidResponse)
	return &BridgeError{Kind: KindInvalidResponse, Op: op, Raw: truncate(raw, maxRawReply), Err: err}
}

func newVariantMismatch(op, expected, actual, raw string) *BridgeError {
	recordError(KindInvalidResponse)
	return &BridgeError{
		Kind:     KindInvalidResponse,
		Op:       op,
		Raw:      truncate(raw, maxRawReply),
		Expected: expected,
		Actual:   actual,
	}
}

// withOp fills in the operation of a BridgeError that does not have one.
func withOp(err error, op string) error {
	var be *BridgeError
	if errors.As(err, &be) && be.Op == "" {
		be.Op = op
	}
	return err
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func kindOf(err error) Kind {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

// IsNotOpen reports whether err is a KindNotOpen error.
func IsNotOpen(err error) bool { return kindOf(err) == KindNotOpen }

// IsBridge reports whether err carries an engine error envelope.
func IsBridge(err error) bool { return kindOf(err) == KindBridge }

// IsInvalidResponse reports whether err is a decode or shape failure.
func IsInvalidResponse(err error) bool { return kindOf(err) == KindInvalidResponse }

// IsUnsupported reports whether the engine rejected a command it does not
// know, which happens when the engine is older than this client.
func IsUnsupported(err error) bool {
	var be *BridgeError
	if !errors.As(err, &be) || be.Kind != KindBridge {
		return false
	}
	return strings.Contains(be.Reason(), "unknown variant") ||
		strings.Contains(string(be.Detail), "unknown variant")
}
