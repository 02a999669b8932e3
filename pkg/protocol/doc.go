// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package protocol defines the closed request and response unions spoken
// across the Strata bridge.
//
// A Command is one request the client may issue; an Output is one response
// shape the engine may return. Both are sealed interfaces whose JSON form is
// externally tagged by variant name:
//
//	{"KvGet": {"key": "user:alice"}}      // Command
//	{"MaybeVersioned": {"value": {"Int": 1}, "version": 1, "timestamp": 0}}  // Output
//	{"Ping": null}                        // Command with no fields
//	"Unit"                                // Output with no payload
//
// Optional parameters are pointer (or nil-able) fields tagged omitempty, so
// an absent parameter is absent on the wire rather than a sentinel value.
//
// Each Command type documents the single Output variant it produces. The
// pairing is enforced by the service facades, not by this package.
//
// # Envelopes
//
// Replies from open, open_memory and ping are wrapped as {"ok": ...} or
// {"error": ...}. Replies from execute are either a bare Output or an
// {"error": ...} envelope. See ParseEnvelope.
package protocol
