// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kraklabs/strata-foundry/pkg/value"
)

// Output is one successful reply shape. The set of implementations is
// closed. Go type names carry an Out prefix; Variant returns the wire tag.
type Output interface {
	Variant() string
	output()
}

// nullableOutput marks outputs whose payload may be JSON null (the engine's
// optional results). Any other output with a null payload is malformed.
type nullableOutput interface {
	Output
	nullable()
}

// OutUnit is the empty reply. It encodes as the bare string "Unit".
type OutUnit struct{}

// OutBool is a boolean reply.
type OutBool bool

// OutUint is a count.
type OutUint uint64

// OutVersion is the version assigned by a write.
type OutVersion uint64

// OutMaybeVersion is an optional version. Version is nil when absent.
type OutMaybeVersion struct {
	Version *uint64
}

// OutMaybe is an optional value. Value is nil when absent.
type OutMaybe struct {
	Value value.Value
}

// OutMaybeVersioned is an optional versioned value. Value is nil when absent.
type OutMaybeVersioned struct {
	Value *VersionedValue
}

// OutVersionHistory is the optional history of a key, newest first. Versions
// is nil when the key never existed.
type OutVersionHistory struct {
	Versions []VersionedValue
}

// OutVersionedValues is a list of versioned values.
type OutVersionedValues []VersionedValue

// OutKeys is a list of names.
type OutKeys []string

// OutJsonListResult is one page of document keys.
type OutJsonListResult struct {
	Keys   []string `json:"keys"`
	Cursor *string  `json:"cursor,omitempty"`
}

// OutBatchResults holds one result per batch item, in input order.
type OutBatchResults []BatchItemResult

// OutVectorCollectionList lists collections.
type OutVectorCollectionList []CollectionInfo

// OutVectorData is an optional vector. Entry is nil when absent.
type OutVectorData struct {
	Entry *VectorEntry
}

// OutVectorMatches are vector search hits, best first.
type OutVectorMatches []VectorMatch

// OutGraphNeighbors lists adjacent nodes.
type OutGraphNeighbors []GraphNeighbor

// OutGraphBfs is a traversal result.
type OutGraphBfs GraphBfsResult

// OutBranchWithVersion is a created branch.
type OutBranchWithVersion struct {
	Info    BranchInfo `json:"info"`
	Version uint64     `json:"version"`
}

// OutMaybeBranchInfo is optional branch metadata. Branch is nil when absent.
type OutMaybeBranchInfo struct {
	Branch *VersionedBranchInfo
}

// OutBranchInfoList lists branches.
type OutBranchInfoList []VersionedBranchInfo

// OutBranchForked is a completed fork.
type OutBranchForked ForkInfo

// OutBranchDiff is a branch comparison.
type OutBranchDiff BranchDiffResult

// OutBranchMerged is a completed merge.
type OutBranchMerged MergeInfo

// OutSpaceList lists space names.
type OutSpaceList []string

// OutSearchResults are ranked search hits.
type OutSearchResults []SearchHit

// OutModelsList lists models.
type OutModelsList []ModelInfo

// OutModelsPulled reports where a pulled model was stored.
type OutModelsPulled struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// OutEmbedding is one embedding vector.
type OutEmbedding []float32

// OutEmbeddings holds one embedding per input text.
type OutEmbeddings [][]float32

// OutGenerated is a generation result.
type OutGenerated GenerationResult

// OutTokenIds is a tokenization result.
type OutTokenIds TokenizeResult

// OutText is a plain string reply.
type OutText string

// OutPong is the reply to Ping.
type OutPong struct {
	Version string `json:"version"`
}

// OutDatabaseInfo is the reply to Info.
type OutDatabaseInfo DatabaseInfo

// OutTimeRange holds the oldest and latest timestamps of a branch. Both are
// nil for an empty branch.
type OutTimeRange struct {
	OldestTS *uint64 `json:"oldest_ts"`
	LatestTS *uint64 `json:"latest_ts"`
}

// OutConfig is the effective engine configuration.
type OutConfig StrataConfig

// OutDurabilityCounters reports WAL activity.
type OutDurabilityCounters DurabilityCounterSet

// EncodeOutput returns the externally tagged JSON form of out.
func EncodeOutput(out Output) ([]byte, error) {
	if out == nil {
		return nil, errors.New("encode output: nil output")
	}
	if _, ok := out.(OutUnit); ok {
		return []byte(`"Unit"`), nil
	}
	data, err := json.Marshal(map[string]any{out.Variant(): out})
	if err != nil {
		return nil, fmt.Errorf("encode output %s: %w", out.Variant(), err)
	}
	return data, nil
}

// DecodeOutput parses a bare (unwrapped) output. Unknown tags, missing
// payloads, missing required fields and type mismatches are errors.
func DecodeOutput(data []byte) (Output, error) {
	tag, payload, err := splitTagged(data)
	if err != nil {
		return nil, fmt.Errorf("decode output: %w", err)
	}
	decode, ok := outputDecoders[tag]
	if !ok {
		return nil, fmt.Errorf("decode output: unknown variant %q", tag)
	}
	out, err := decode(payload)
	if err != nil {
		return nil, fmt.Errorf("decode output %s: %w", tag, err)
	}
	return out, nil
}

// OutputVariants lists every known output tag in sorted order.
func OutputVariants() []string {
	return sortedKeys(outputDecoders)
}

func decodeOutputAs[T Output](payload json.RawMessage) (Output, error) {
	var out T
	if payload == nil {
		return nil, errors.New("missing payload")
	}
	if isNullJSON(payload) {
		if _, ok := any(out).(nullableOutput); ok {
			return out, nil
		}
		return nil, errors.New("null payload")
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeUnit(payload json.RawMessage) (Output, error) {
	if payload == nil || isNullJSON(payload) {
		return OutUnit{}, nil
	}
	return nil, errors.New("unexpected payload")
}

var outputDecoders = map[string]func(json.RawMessage) (Output, error){
	"Unit":                 decodeUnit,
	"Bool":                 decodeOutputAs[OutBool],
	"Uint":                 decodeOutputAs[OutUint],
	"Version":              decodeOutputAs[OutVersion],
	"MaybeVersion":         decodeOutputAs[OutMaybeVersion],
	"Maybe":                decodeOutputAs[OutMaybe],
	"MaybeVersioned":       decodeOutputAs[OutMaybeVersioned],
	"VersionHistory":       decodeOutputAs[OutVersionHistory],
	"VersionedValues":      decodeOutputAs[OutVersionedValues],
	"Keys":                 decodeOutputAs[OutKeys],
	"JsonListResult":       decodeOutputAs[OutJsonListResult],
	"BatchResults":         decodeOutputAs[OutBatchResults],
	"VectorCollectionList": decodeOutputAs[OutVectorCollectionList],
	"VectorData":           decodeOutputAs[OutVectorData],
	"VectorMatches":        decodeOutputAs[OutVectorMatches],
	"GraphNeighbors":       decodeOutputAs[OutGraphNeighbors],
	"GraphBfs":             decodeOutputAs[OutGraphBfs],
	"BranchWithVersion":    decodeOutputAs[OutBranchWithVersion],
	"MaybeBranchInfo":      decodeOutputAs[OutMaybeBranchInfo],
	"BranchInfoList":       decodeOutputAs[OutBranchInfoList],
	"BranchForked":         decodeOutputAs[OutBranchForked],
	"BranchDiff":           decodeOutputAs[OutBranchDiff],
	"BranchMerged":         decodeOutputAs[OutBranchMerged],
	"SpaceList":            decodeOutputAs[OutSpaceList],
	"SearchResults":        decodeOutputAs[OutSearchResults],
	"ModelsList":           decodeOutputAs[OutModelsList],
	"ModelsPulled":         decodeOutputAs[OutModelsPulled],
	"Embedding":            decodeOutputAs[OutEmbedding],
	"Embeddings":           decodeOutputAs[OutEmbeddings],
	"Generated":            decodeOutputAs[OutGenerated],
	"TokenIds":             decodeOutputAs[OutTokenIds],
	"Text":                 decodeOutputAs[OutText],
	"Pong":                 decodeOutputAs[OutPong],
	"DatabaseInfo":         decodeOutputAs[OutDatabaseInfo],
	"TimeRange":            decodeOutputAs[OutTimeRange],
	"Config":               decodeOutputAs[OutConfig],
	"DurabilityCounters":   decodeOutputAs[OutDurabilityCounters],
}

// MarshalJSON implements json.Marshaler.
func (o OutMaybeVersion) MarshalJSON() ([]byte, error) { return json.Marshal(o.Version) }

// UnmarshalJSON implements json.Unmarshaler.
func (o *OutMaybeVersion) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &o.Version) }

// MarshalJSON implements json.Marshaler.
func (o OutMaybe) MarshalJSON() ([]byte, error) { return value.Box{V: o.Value}.MarshalJSON() }

// UnmarshalJSON implements json.Unmarshaler.
func (o *OutMaybe) UnmarshalJSON(data []byte) error {
	var box value.Box
	if err := box.UnmarshalJSON(data); err != nil {
		return err
	}
	o.Value = box.V
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OutMaybeVersioned) MarshalJSON() ([]byte, error) { return json.Marshal(o.Value) }

// UnmarshalJSON implements json.Unmarshaler.
func (o *OutMaybeVersioned) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &o.Value) }

// MarshalJSON implements json.Marshaler.
func (o OutVersionHistory) MarshalJSON() ([]byte, error) { return json.Marshal(o.Versions) }

// UnmarshalJSON implements json.Unmarshaler. An empty list decodes to a
// non-nil slice so it stays distinguishable from an absent history.
func (o *OutVersionHistory) UnmarshalJSON(data []byte) error {
	if isNullJSON(data) {
		o.Versions = nil
		return nil
	}
	versions := []VersionedValue{}
	if err := json.Unmarshal(data, &versions); err != nil {
		return err
	}
	o.Versions = versions
	return nil
}

// MarshalJSON implements json.Marshaler.
func (o OutVectorData) MarshalJSON() ([]byte, error) { return json.Marshal(o.Entry) }

// UnmarshalJSON implements json.Unmarshaler.
func (o *OutVectorData) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &o.Entry) }

// MarshalJSON implements json.Marshaler.
func (o OutMaybeBranchInfo) MarshalJSON() ([]byte, error) { return json.Marshal(o.Branch) }

// UnmarshalJSON implements json.Unmarshaler.
func (o *OutMaybeBranchInfo) UnmarshalJSON(data []byte) error { return json.Unmarshal(data, &o.Branch) }

// UnmarshalJSON implements json.Unmarshaler. keys is required.
func (o *OutJsonListResult) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "keys"); err != nil {
		return err
	}
	type plain OutJsonListResult
	return json.Unmarshal(data, (*plain)(o))
}

// UnmarshalJSON implements json.Unmarshaler. info and version are required.
func (o *OutBranchWithVersion) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "info", "version"); err != nil {
		return err
	}
	type plain OutBranchWithVersion
	return json.Unmarshal(data, (*plain)(o))
}

// UnmarshalJSON implements json.Unmarshaler. version is required.
func (o *OutPong) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "version"); err != nil {
		return err
	}
	type plain OutPong
	return json.Unmarshal(data, (*plain)(o))
}

func (OutUnit) Variant() string                 { return "Unit" }
func (OutBool) Variant() string                 { return "Bool" }
func (OutUint) Variant() string                 { return "Uint" }
func (OutVersion) Variant() string              { return "Version" }
func (OutMaybeVersion) Variant() string         { return "MaybeVersion" }
func (OutMaybe) Variant() string                { return "Maybe" }
func (OutMaybeVersioned) Variant() string       { return "MaybeVersioned" }
func (OutVersionHistory) Variant() string       { return "VersionHistory" }
func (OutVersionedValues) Variant() string      { return "VersionedValues" }
func (OutKeys) Variant() string                 { return "Keys" }
func (OutJsonListResult) Variant() string       { return "JsonListResult" }
func (OutBatchResults) Variant() string         { return "BatchResults" }
func (OutVectorCollectionList) Variant() string { return "VectorCollectionList" }
func (OutVectorData) Variant() string           { return "VectorData" }
func (OutVectorMatches) Variant() string        { return "VectorMatches" }
func (OutGraphNeighbors) Variant() string       { return "GraphNeighbors" }
func (OutGraphBfs) Variant() string             { return "GraphBfs" }
func (OutBranchWithVersion) Variant() string    { return "BranchWithVersion" }
func (OutMaybeBranchInfo) Variant() string      { return "MaybeBranchInfo" }
func (OutBranchInfoList) Variant() string       { return "BranchInfoList" }
func (OutBranchForked) Variant() string         { return "BranchForked" }
func (OutBranchDiff) Variant() string           { return "BranchDiff" }
func (OutBranchMerged) Variant() string         { return "BranchMerged" }
func (OutSpaceList) Variant() string            { return "SpaceList" }
func (OutSearchResults) Variant() string        { return "SearchResults" }
func (OutModelsList) Variant() string           { return "ModelsList" }
func (OutModelsPulled) Variant() string         { return "ModelsPulled" }
func (OutEmbedding) Variant() string            { return "Embedding" }
func (OutEmbeddings) Variant() string           { return "Embeddings" }
func (OutGenerated) Variant() string            { return "Generated" }
func (OutTokenIds) Variant() string             { return "TokenIds" }
func (OutText) Variant() string                 { return "Text" }
func (OutPong) Variant() string                 { return "Pong" }
func (OutDatabaseInfo) Variant() string         { return "DatabaseInfo" }
func (OutTimeRange) Variant() string            { return "TimeRange" }
func (OutConfig) Variant() string               { return "Config" }
func (OutDurabilityCounters) Variant() string   { return "DurabilityCounters" }

func (OutUnit) output()                 {}
func (OutBool) output()                 {}
func (OutUint) output()                 {}
func (OutVersion) output()              {}
func (OutMaybeVersion) output()         {}
func (OutMaybe) output()                {}
func (OutMaybeVersioned) output()       {}
func (OutVersionHistory) output()       {}
func (OutVersionedValues) output()      {}
func (OutKeys) output()                 {}
func (OutJsonListResult) output()       {}
func (OutBatchResults) output()         {}
func (OutVectorCollectionList) output() {}
func (OutVectorData) output()           {}
func (OutVectorMatches) output()        {}
func (OutGraphNeighbors) output()       {}
func (OutGraphBfs) output()             {}
func (OutBranchWithVersion) output()    {}
func (OutMaybeBranchInfo) output()      {}
func (OutBranchInfoList) output()       {}
func (OutBranchForked) output()         {}
func (OutBranchDiff) output()           {}
func (OutBranchMerged) output()         {}
func (OutSpaceList) output()            {}
func (OutSearchResults) output()        {}
func (OutModelsList) output()           {}
func (OutModelsPulled) output()         {}
func (OutEmbedding) output()            {}
func (OutEmbeddings) output()           {}
func (OutGenerated) output()            {}
func (OutTokenIds) output()             {}
func (OutText) output()                 {}
func (OutPong) output()                 {}
func (OutDatabaseInfo) output()         {}
func (OutTimeRange) output()            {}
func (OutConfig) output()               {}
func (OutDurabilityCounters) output()   {}

func (OutMaybeVersion) nullable()    {}
func (OutMaybe) nullable()           {}
func (OutMaybeVersioned) nullable()  {}
func (OutVersionHistory) nullable()  {}
func (OutVectorData) nullable()      {}
func (OutMaybeBranchInfo) nullable() {}
