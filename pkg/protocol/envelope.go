// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is a protocol-level wrapper around a raw reply. Exactly one of
// OK and Error is non-nil.
type Envelope struct {
	OK    json.RawMessage
	Error json.RawMessage
}

// IsError reports whether the envelope carries an error detail.
func (e Envelope) IsError() bool { return e.Error != nil }

// ParseEnvelope recognizes {"ok": ...} and {"error": ...}. It returns false
// for anything else, including bare outputs and malformed JSON.
func ParseEnvelope(data []byte) (Envelope, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Envelope{}, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil || len(obj) != 1 {
		return Envelope{}, false
	}
	if payload, ok := obj["ok"]; ok {
		return Envelope{OK: payload}, true
	}
	if detail, ok := obj["error"]; ok {
		return Envelope{Error: detail}, true
	}
	return Envelope{}, false
}

// EncodeOK wraps payload as {"ok": payload}.
func EncodeOK(payload any) ([]byte, error) {
	data, err := json.Marshal(map[string]any{"ok": payload})
	if err != nil {
		return nil, fmt.Errorf("encode ok envelope: %w", err)
	}
	return data, nil
}

// EncodeError wraps an engine error detail as {"error": detail}.
func EncodeError(detail any) ([]byte, error) {
	data, err := json.Marshal(map[string]any{"error": detail})
	if err != nil {
		return nil, fmt.Errorf("encode error envelope: %w", err)
	}
	return data, nil
}

// ErrorDetail is the externally tagged engine error, e.g.
// {"Internal": {"reason": "invalid handle"}}.
type ErrorDetail struct {
	Kind   string
	Reason string
}

// InternalError builds the detail the bridge uses for its own failures.
func InternalError(reason string) ErrorDetail {
	return ErrorDetail{Kind: "Internal", Reason: reason}
}

// MarshalJSON implements json.Marshaler.
func (d ErrorDetail) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{d.Kind: map[string]string{"reason": d.Reason}})
}

// ParseErrorDetail extracts the tag and reason of an engine error detail.
// Details that are a bare string yield that string as the kind. Details of
// any other shape yield ok == false.
func ParseErrorDetail(detail json.RawMessage) (ErrorDetail, bool) {
	tag, payload, err := splitTagged(detail)
	if err != nil {
		return ErrorDetail{}, false
	}
	out := ErrorDetail{Kind: tag}
	if payload == nil || isNullJSON(payload) {
		return out, true
	}
	var fields struct {
		Reason *string `json:"reason"`
	}
	if err := json.Unmarshal(payload, &fields); err == nil && fields.Reason != nil {
		out.Reason = *fields.Reason
		return out, true
	}
	var reason string
	if err := json.Unmarshal(payload, &reason); err == nil {
		out.Reason = reason
	}
	return out, true
}
