// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"

	"github.com/kraklabs/strata-foundry/pkg/value"
)

// KvPut writes a key. Produces Version.
type KvPut struct {
	Target
	Key   string      `json:"key"`
	Value value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *KvPut) UnmarshalJSON(data []byte) error {
	type plain KvPut
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Value = aux.Value.V
	return nil
}

// KvGet reads a key, optionally as of a past timestamp. Produces MaybeVersioned.
type KvGet struct {
	Target
	Key  string  `json:"key"`
	AsOf *uint64 `json:"as_of,omitempty"`
}

// KvDelete removes a key. Produces Bool (whether the key existed).
type KvDelete struct {
	Target
	Key string `json:"key"`
}

// KvList lists keys. Produces Keys.
type KvList struct {
	Target
	Prefix *string `json:"prefix,omitempty"`
	Cursor *string `json:"cursor,omitempty"`
	Limit  *uint64 `json:"limit,omitempty"`
	AsOf   *uint64 `json:"as_of,omitempty"`
}

// KvGetv reads the version history of a key. Produces VersionHistory.
type KvGetv struct {
	Target
	Key  string  `json:"key"`
	AsOf *uint64 `json:"as_of,omitempty"`
}

// KvBatchPut writes several keys at once. Produces BatchResults.
type KvBatchPut struct {
	Target
	Entries []KvEntry `json:"entries"`
}

// JsonSet writes the value at a JSONPath inside a document ("$" is the
// root). Produces Version.
type JsonSet struct {
	Target
	Key   string      `json:"key"`
	Path  string      `json:"path"`
	Value value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *JsonSet) UnmarshalJSON(data []byte) error {
	type plain JsonSet
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Value = aux.Value.V
	return nil
}

// JsonGet reads the value at a path. Produces MaybeVersioned.
type JsonGet struct {
	Target
	Key  string  `json:"key"`
	Path string  `json:"path"`
	AsOf *uint64 `json:"as_of,omitempty"`
}

// JsonDelete removes the value at a path. Produces Uint (entries removed).
type JsonDelete struct {
	Target
	Key  string `json:"key"`
	Path string `json:"path"`
}

// JsonGetv reads the version history of a document. Produces VersionHistory.
type JsonGetv struct {
	Target
	Key  string  `json:"key"`
	AsOf *uint64 `json:"as_of,omitempty"`
}

// JsonList lists document keys. Produces JsonListResult.
type JsonList struct {
	Target
	Prefix *string `json:"prefix,omitempty"`
	Cursor *string `json:"cursor,omitempty"`
	Limit  *uint64 `json:"limit,omitempty"`
	AsOf   *uint64 `json:"as_of,omitempty"`
}

// EventAppend appends an event to the log. Produces Version (the sequence).
type EventAppend struct {
	Target
	EventType string      `json:"event_type"`
	Payload   value.Value `json:"payload"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *EventAppend) UnmarshalJSON(data []byte) error {
	type plain EventAppend
	aux := struct {
		*plain
		Payload value.Box `json:"payload"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Payload = aux.Payload.V
	return nil
}

// EventGet reads one event by sequence. Produces MaybeVersioned.
type EventGet struct {
	Target
	Sequence uint64  `json:"sequence"`
	AsOf     *uint64 `json:"as_of,omitempty"`
}

// EventGetByType reads events of one type. Produces VersionedValues.
type EventGetByType struct {
	Target
	EventType     string  `json:"event_type"`
	Limit         *uint64 `json:"limit,omitempty"`
	AfterSequence *uint64 `json:"after_sequence,omitempty"`
	AsOf          *uint64 `json:"as_of,omitempty"`
}

// EventLen counts events. Produces Uint.
type EventLen struct {
	Target
}

// StateSet writes a cell unconditionally. Produces Version.
type StateSet struct {
	Target
	Cell  string      `json:"cell"`
	Value value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *StateSet) UnmarshalJSON(data []byte) error {
	type plain StateSet
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Value = aux.Value.V
	return nil
}

// StateGet reads a cell. Produces MaybeVersioned.
type StateGet struct {
	Target
	Cell string  `json:"cell"`
	AsOf *uint64 `json:"as_of,omitempty"`
}

// StateInit creates a cell if it does not exist. Produces Version.
type StateInit struct {
	Target
	Cell  string      `json:"cell"`
	Value value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *StateInit) UnmarshalJSON(data []byte) error {
	type plain StateInit
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Value = aux.Value.V
	return nil
}

// StateCas writes a cell only if its counter equals ExpectedCounter. A nil
// ExpectedCounter means the cell must not exist yet. Produces MaybeVersion,
// which is empty when the comparison failed.
type StateCas struct {
	Target
	Cell            string      `json:"cell"`
	ExpectedCounter *uint64     `json:"expected_counter,omitempty"`
	Value           value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *StateCas) UnmarshalJSON(data []byte) error {
	type plain StateCas
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Value = aux.Value.V
	return nil
}

// StateDelete removes a cell. Produces Bool.
type StateDelete struct {
	Target
	Cell string `json:"cell"`
}

// StateList lists cell names. Produces Keys.
type StateList struct {
	Target
	Prefix *string `json:"prefix,omitempty"`
	AsOf   *uint64 `json:"as_of,omitempty"`
}

// StateGetv reads the version history of a cell. Produces VersionHistory.
type StateGetv struct {
	Target
	Cell string  `json:"cell"`
	AsOf *uint64 `json:"as_of,omitempty"`
}

func (KvPut) Variant() string      { return "KvPut" }
func (KvGet) Variant() string      { return "KvGet" }
func (KvDelete) Variant() string   { return "KvDelete" }
func (KvList) Variant() string     { return "KvList" }
func (KvGetv) Variant() string     { return "KvGetv" }
func (KvBatchPut) Variant() string { return "KvBatchPut" }

func (JsonSet) Variant() string    { return "JsonSet" }
func (JsonGet) Variant() string    { return "JsonGet" }
func (JsonDelete) Variant() string { return "JsonDelete" }
func (JsonGetv) Variant() string   { return "JsonGetv" }
func (JsonList) Variant() string   { return "JsonList" }

func (EventAppend) Variant() string    { return "EventAppend" }
func (EventGet) Variant() string       { return "EventGet" }
func (EventGetByType) Variant() string { return "EventGetByType" }
func (EventLen) Variant() string       { return "EventLen" }

func (StateSet) Variant() string    { return "StateSet" }
func (StateGet) Variant() string    { return "StateGet" }
func (StateInit) Variant() string   { return "StateInit" }
func (StateCas) Variant() string    { return "StateCas" }
func (StateDelete) Variant() string { return "StateDelete" }
func (StateList) Variant() string   { return "StateList" }
func (StateGetv) Variant() string   { return "StateGetv" }

func (KvPut) command()      {}
func (KvGet) command()      {}
func (KvDelete) command()   {}
func (KvList) command()     {}
func (KvGetv) command()     {}
func (KvBatchPut) command() {}

func (JsonSet) command()    {}
func (JsonGet) command()    {}
func (JsonDelete) command() {}
func (JsonGetv) command()   {}
func (JsonList) command()   {}

func (EventAppend) command()    {}
func (EventGet) command()       {}
func (EventGetByType) command() {}
func (EventLen) command()       {}

func (StateSet) command()    {}
func (StateGet) command()    {}
func (StateInit) command()   {}
func (StateCas) command()    {}
func (StateDelete) command() {}
func (StateList) command()   {}
func (StateGetv) command()   {}
