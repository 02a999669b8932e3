// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Command is one request the engine understands. The set of implementations
// is closed; see the catalogue in this package.
type Command interface {
	// Variant returns the wire tag, e.g. "KvGet".
	Variant() string
	command()
}

// unitCommand marks commands that carry no fields. They encode as
// {"Variant": null}.
type unitCommand interface {
	Command
	unit()
}

// Target selects the branch and space a command applies to. Nil fields use
// the engine defaults ("default" branch, "default" space).
type Target struct {
	Branch *string `json:"branch,omitempty"`
	Space  *string `json:"space,omitempty"`
}

// EncodeCommand returns the externally tagged JSON form of cmd.
func EncodeCommand(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, errors.New("encode command: nil command")
	}
	var payload any = cmd
	if _, ok := cmd.(unitCommand); ok {
		payload = nil
	}
	data, err := json.Marshal(map[string]any{cmd.Variant(): payload})
	if err != nil {
		return nil, fmt.Errorf("encode command %s: %w", cmd.Variant(), err)
	}
	return data, nil
}

// DecodeCommand parses the externally tagged JSON form of a command.
// Commands without fields are also accepted as a bare string ("Ping").
func DecodeCommand(data []byte) (Command, error) {
	tag, payload, err := splitTagged(data)
	if err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	decode, ok := commandDecoders[tag]
	if !ok {
		return nil, fmt.Errorf("decode command: unknown variant %q", tag)
	}
	cmd, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode command %s: %w", tag, err)
	}
	return cmd, nil
}

// CommandVariants lists every known command tag in sorted order.
func CommandVariants() []string {
	return sortedKeys(commandDecoders)
}

// decodeCommandAs decodes payload into a T. A missing payload (bare string
// or null) is only valid for unit commands.
func decodeCommandAs[T Command](payload json.RawMessage) (Command, error) {
	var cmd T
	if payload == nil || isNullJSON(payload) {
		if _, ok := any(cmd).(unitCommand); ok {
			return cmd, nil
		}
		return nil, errors.New("missing payload")
	}
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return nil, err
	}
	return cmd, nil
}

var commandDecoders = map[string]func(json.RawMessage) (Command, error){
	// KV
	"KvPut":      decodeCommandAs[KvPut],
	"KvGet":      decodeCommandAs[KvGet],
	"KvDelete":   decodeCommandAs[KvDelete],
	"KvList":     decodeCommandAs[KvList],
	"KvGetv":     decodeCommandAs[KvGetv],
	"KvBatchPut": decodeCommandAs[KvBatchPut],

	// JSON
	"JsonSet":    decodeCommandAs[JsonSet],
	"JsonGet":    decodeCommandAs[JsonGet],
	"JsonDelete": decodeCommandAs[JsonDelete],
	"JsonGetv":   decodeCommandAs[JsonGetv],
	"JsonList":   decodeCommandAs[JsonList],

	// Event
	"EventAppend":    decodeCommandAs[EventAppend],
	"EventGet":       decodeCommandAs[EventGet],
	"EventGetByType": decodeCommandAs[EventGetByType],
	"EventLen":       decodeCommandAs[EventLen],

	// State
	"StateSet":    decodeCommandAs[StateSet],
	"StateGet":    decodeCommandAs[StateGet],
	"StateInit":   decodeCommandAs[StateInit],
	"StateCas":    decodeCommandAs[StateCas],
	"StateDelete": decodeCommandAs[StateDelete],
	"StateList":   decodeCommandAs[StateList],
	"StateGetv":   decodeCommandAs[StateGetv],

	// Vector
	"VectorCreateCollection": decodeCommandAs[VectorCreateCollection],
	"VectorDeleteCollection": decodeCommandAs[VectorDeleteCollection],
	"VectorListCollections":  decodeCommandAs[VectorListCollections],
	"VectorCollectionStats":  decodeCommandAs[VectorCollectionStats],
	"VectorUpsert":           decodeCommandAs[VectorUpsert],
	"VectorGet":              decodeCommandAs[VectorGet],
	"VectorDelete":           decodeCommandAs[VectorDelete],
	"VectorSearch":           decodeCommandAs[VectorSearch],

	// Graph
	"GraphCreate":     decodeCommandAs[GraphCreate],
	"GraphDelete":     decodeCommandAs[GraphDelete],
	"GraphList":       decodeCommandAs[GraphList],
	"GraphAddNode":    decodeCommandAs[GraphAddNode],
	"GraphGetNode":    decodeCommandAs[GraphGetNode],
	"GraphRemoveNode": decodeCommandAs[GraphRemoveNode],
	"GraphListNodes":  decodeCommandAs[GraphListNodes],
	"GraphAddEdge":    decodeCommandAs[GraphAddEdge],
	"GraphRemoveEdge": decodeCommandAs[GraphRemoveEdge],
	"GraphNeighbors":  decodeCommandAs[GraphNeighbors],
	"GraphBfs":        decodeCommandAs[GraphBfs],

	// Branch
	"BranchCreate": decodeCommandAs[BranchCreate],
	"BranchGet":    decodeCommandAs[BranchGet],
	"BranchList":   decodeCommandAs[BranchList],
	"BranchExists": decodeCommandAs[BranchExists],
	"BranchDelete": decodeCommandAs[BranchDelete],
	"BranchFork":   decodeCommandAs[BranchFork],
	"BranchDiff":   decodeCommandAs[BranchDiff],
	"BranchMerge":  decodeCommandAs[BranchMerge],

	// Space
	"SpaceList":   decodeCommandAs[SpaceList],
	"SpaceCreate": decodeCommandAs[SpaceCreate],
	"SpaceDelete": decodeCommandAs[SpaceDelete],
	"SpaceExists": decodeCommandAs[SpaceExists],

	// Search
	"Search": decodeCommandAs[Search],

	// Models
	"ModelsList":  decodeCommandAs[ModelsList],
	"ModelsLocal": decodeCommandAs[ModelsLocal],
	"ModelsPull":  decodeCommandAs[ModelsPull],
	"Embed":       decodeCommandAs[Embed],
	"EmbedBatch":  decodeCommandAs[EmbedBatch],

	// Generation
	"Generate":       decodeCommandAs[Generate],
	"Tokenize":       decodeCommandAs[Tokenize],
	"Detokenize":     decodeCommandAs[Detokenize],
	"GenerateUnload": decodeCommandAs[GenerateUnload],

	// Admin
	"Ping":               decodeCommandAs[Ping],
	"Info":               decodeCommandAs[Info],
	"Flush":              decodeCommandAs[Flush],
	"Compact":            decodeCommandAs[Compact],
	"TimeRange":          decodeCommandAs[TimeRange],
	"ConfigGet":          decodeCommandAs[ConfigGet],
	"ConfigSetAutoEmbed": decodeCommandAs[ConfigSetAutoEmbed],
	"AutoEmbedStatus":    decodeCommandAs[AutoEmbedStatus],
	"DurabilityCounters": decodeCommandAs[DurabilityCounters],
}

// splitTagged separates an externally tagged document into its tag and
// payload. A bare string yields a nil payload.
func splitTagged(data []byte) (string, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", nil, errors.New("empty input")
	}
	if trimmed[0] == '"' {
		var tag string
		if err := json.Unmarshal(trimmed, &tag); err != nil {
			return "", nil, err
		}
		return tag, nil, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", nil, err
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("expected exactly one variant tag, got %d", len(obj))
	}
	for tag, payload := range obj {
		return tag, payload, nil
	}
	panic("unreachable")
}

func isNullJSON(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
