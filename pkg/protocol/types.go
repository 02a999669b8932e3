// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/kraklabs/strata-foundry/pkg/value"
)

// VersionedValue is a value together with the version that wrote it.
type VersionedValue struct {
	Value     value.Value
	Version   uint64
	Timestamp uint64
}

type versionedValueJSON struct {
	Value     value.Box `json:"value"`
	Version   uint64    `json:"version"`
	Timestamp uint64    `json:"timestamp"`
}

// MarshalJSON implements json.Marshaler.
func (v VersionedValue) MarshalJSON() ([]byte, error) {
	val := v.Value
	if val == nil {
		val = value.Null{}
	}
	return json.Marshal(versionedValueJSON{Value: value.Box{V: val}, Version: v.Version, Timestamp: v.Timestamp})
}

// UnmarshalJSON implements json.Unmarshaler. value and version are required.
func (v *VersionedValue) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "value", "version"); err != nil {
		return fmt.Errorf("versioned value: %w", err)
	}
	var aux versionedValueJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Value.V == nil {
		return fmt.Errorf("versioned value: value is null")
	}
	*v = VersionedValue{Value: aux.Value.V, Version: aux.Version, Timestamp: aux.Timestamp}
	return nil
}

// KvEntry is one item of a batch put.
type KvEntry struct {
	Key   string      `json:"key"`
	Value value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *KvEntry) UnmarshalJSON(data []byte) error {
	type plain KvEntry
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Value = aux.Value.V
	return nil
}

// BatchItemResult is the per-item outcome of a batch operation. Exactly one
// of Version and Error is set.
type BatchItemResult struct {
	Version *uint64 `json:"version,omitempty"`
	Error   *string `json:"error,omitempty"`
}

// DistanceMetric selects the vector similarity function.
type DistanceMetric string

const (
	MetricCosine     DistanceMetric = "cosine"
	MetricEuclidean  DistanceMetric = "euclidean"
	MetricDotProduct DistanceMetric = "dot_product"
)

// CollectionInfo describes a vector collection.
type CollectionInfo struct {
	Name        string         `json:"name"`
	Dimension   uint64         `json:"dimension"`
	Metric      DistanceMetric `json:"metric"`
	Count       uint64         `json:"count"`
	IndexType   string         `json:"index_type,omitempty"`
	MemoryBytes uint64         `json:"memory_bytes,omitempty"`
}

// VectorEntry is a stored vector with its metadata and version.
type VectorEntry struct {
	Key       string      `json:"key"`
	Embedding []float32   `json:"embedding"`
	Metadata  value.Value `json:"metadata,omitempty"`
	Version   uint64      `json:"version"`
	Timestamp uint64      `json:"timestamp"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *VectorEntry) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "key", "embedding"); err != nil {
		return fmt.Errorf("vector entry: %w", err)
	}
	type plain VectorEntry
	aux := struct {
		*plain
		Metadata value.Box `json:"metadata"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Metadata = aux.Metadata.V
	return nil
}

// VectorMatch is one vector search hit.
type VectorMatch struct {
	Key      string      `json:"key"`
	Score    float32     `json:"score"`
	Metadata value.Value `json:"metadata,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *VectorMatch) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "key", "score"); err != nil {
		return fmt.Errorf("vector match: %w", err)
	}
	type plain VectorMatch
	aux := struct {
		*plain
		Metadata value.Box `json:"metadata"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Metadata = aux.Metadata.V
	return nil
}

// FilterOp is a metadata filter comparison.
type FilterOp string

const (
	FilterEq       FilterOp = "eq"
	FilterNe       FilterOp = "ne"
	FilterGt       FilterOp = "gt"
	FilterGte      FilterOp = "gte"
	FilterLt       FilterOp = "lt"
	FilterLte      FilterOp = "lte"
	FilterIn       FilterOp = "in"
	FilterContains FilterOp = "contains"
)

// MetadataFilter restricts vector search results by a metadata field.
type MetadataFilter struct {
	Field string      `json:"field"`
	Op    FilterOp    `json:"op"`
	Value value.Value `json:"value"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *MetadataFilter) UnmarshalJSON(data []byte) error {
	type plain MetadataFilter
	aux := struct {
		*plain
		Value value.Box `json:"value"`
	}{plain: (*plain)(f)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.Value = aux.Value.V
	return nil
}

// Direction selects which edges a graph traversal follows.
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionBoth     Direction = "both"
)

// GraphNeighbor is one adjacent node.
type GraphNeighbor struct {
	NodeID   string  `json:"node_id"`
	EdgeType string  `json:"edge_type"`
	Weight   float64 `json:"weight"`
}

// GraphEdge is a directed, typed edge.
type GraphEdge struct {
	Src      string `json:"src"`
	Dst      string `json:"dst"`
	EdgeType string `json:"edge_type"`
}

// GraphBfsResult is the outcome of a breadth-first traversal.
type GraphBfsResult struct {
	Visited []string          `json:"visited"`
	Depths  map[string]uint64 `json:"depths"`
	Edges   []GraphEdge       `json:"edges"`
}

// BranchInfo describes a branch.
type BranchInfo struct {
	ID        string  `json:"id"`
	Status    string  `json:"status"`
	CreatedAt uint64  `json:"created_at"`
	UpdatedAt uint64  `json:"updated_at"`
	ParentID  *string `json:"parent_id,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler. id is required.
func (b *BranchInfo) UnmarshalJSON(data []byte) error {
	if err := requireFields(data, "id"); err != nil {
		return fmt.Errorf("branch info: %w", err)
	}
	type plain BranchInfo
	return json.Unmarshal(data, (*plain)(b))
}

// VersionedBranchInfo is branch metadata with the version that wrote it.
type VersionedBranchInfo struct {
	Info      BranchInfo `json:"info"`
	Version   uint64     `json:"version"`
	Timestamp uint64     `json:"timestamp"`
}

// ForkInfo summarizes a completed fork.
type ForkInfo struct {
	Source       string `json:"source"`
	Destination  string `json:"destination"`
	KeysCopied   uint64 `json:"keys_copied"`
	SpacesCopied uint64 `json:"spaces_copied"`
}

// DiffEntry is one key that differs between two branches.
type DiffEntry struct {
	Key       string `json:"key"`
	Primitive string `json:"primitive"`
}

// SpaceDiff groups diff entries of one space.
type SpaceDiff struct {
	Space    string      `json:"space"`
	Added    []DiffEntry `json:"added"`
	Removed  []DiffEntry `json:"removed"`
	Modified []DiffEntry `json:"modified"`
}

// DiffSummary counts the entries of a branch diff.
type DiffSummary struct {
	TotalAdded    uint64 `json:"total_added"`
	TotalRemoved  uint64 `json:"total_removed"`
	TotalModified uint64 `json:"total_modified"`
}

// BranchDiffResult compares two branches.
type BranchDiffResult struct {
	BranchA string      `json:"branch_a"`
	BranchB string      `json:"branch_b"`
	Spaces  []SpaceDiff `json:"spaces"`
	Summary DiffSummary `json:"summary"`
}

// MergeStrategy decides how conflicting keys are resolved.
type MergeStrategy string

const (
	MergeLastWriterWins MergeStrategy = "last_writer_wins"
	MergeStrict         MergeStrategy = "strict"
)

// MergeConflict is a key both branches modified.
type MergeConflict struct {
	Key       string `json:"key"`
	Primitive string `json:"primitive"`
	Space     string `json:"space"`
}

// MergeInfo summarizes a completed merge.
type MergeInfo struct {
	KeysApplied  uint64          `json:"keys_applied"`
	SpacesMerged uint64          `json:"spaces_merged"`
	Conflicts    []MergeConflict `json:"conflicts"`
}

// TimeRangeInput bounds a search by timestamp (RFC 3339).
type TimeRangeInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SearchQuery is the body of a Search command.
type SearchQuery struct {
	Query      string          `json:"query"`
	K          *uint64         `json:"k,omitempty"`
	Primitives []string        `json:"primitives,omitempty"`
	TimeRange  *TimeRangeInput `json:"time_range,omitempty"`
	Mode       *string         `json:"mode,omitempty"`
	Expand     *bool           `json:"expand,omitempty"`
	Rerank     *bool           `json:"rerank,omitempty"`
}

// SearchHit is one ranked search result.
type SearchHit struct {
	Entity    string  `json:"entity"`
	Primitive string  `json:"primitive"`
	Score     float32 `json:"score"`
	Rank      uint32  `json:"rank"`
	Snippet   *string `json:"snippet,omitempty"`
}

// ModelInfo describes a model known to the engine.
type ModelInfo struct {
	Name         string `json:"name"`
	Task         string `json:"task"`
	Architecture string `json:"architecture"`
	DefaultQuant string `json:"default_quant,omitempty"`
	EmbeddingDim uint64 `json:"embedding_dim,omitempty"`
	IsLocal      bool   `json:"is_local"`
	SizeBytes    uint64 `json:"size_bytes,omitempty"`
}

// GenerationResult is the outcome of a text generation.
type GenerationResult struct {
	Text             string `json:"text"`
	StopReason       string `json:"stop_reason"`
	PromptTokens     uint64 `json:"prompt_tokens"`
	CompletionTokens uint64 `json:"completion_tokens"`
	Model            string `json:"model"`
}

// TokenizeResult holds the token ids of a tokenized text.
type TokenizeResult struct {
	IDs   []uint32 `json:"ids"`
	Count uint64   `json:"count"`
	Model string   `json:"model"`
}

// DatabaseInfo is the reply to Info.
type DatabaseInfo struct {
	Version     string `json:"version"`
	UptimeSecs  uint64 `json:"uptime_secs"`
	BranchCount uint64 `json:"branch_count"`
	TotalKeys   uint64 `json:"total_keys"`
}

// ModelConfig is the model section of the engine configuration.
type ModelConfig struct {
	Endpoint  string  `json:"endpoint"`
	Model     string  `json:"model"`
	APIKey    *string `json:"api_key,omitempty"`
	TimeoutMS uint64  `json:"timeout_ms"`
}

// StrataConfig is the engine's effective configuration.
type StrataConfig struct {
	Durability     string       `json:"durability"`
	AutoEmbed      bool         `json:"auto_embed"`
	Model          *ModelConfig `json:"model,omitempty"`
	EmbedBatchSize *uint64      `json:"embed_batch_size,omitempty"`
}

// DurabilityCounterSet reports WAL activity.
type DurabilityCounterSet struct {
	WalAppends   uint64 `json:"wal_appends"`
	SyncCalls    uint64 `json:"sync_calls"`
	BytesWritten uint64 `json:"bytes_written"`
	SyncNanos    uint64 `json:"sync_nanos"`
}

// requireFields fails if data is not an object holding every named field.
func requireFields(data []byte, names ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("expected an object")
	}
	for _, name := range names {
		if _, ok := fields[name]; !ok {
			return fmt.Errorf("missing field %q", name)
		}
	}
	return nil
}
