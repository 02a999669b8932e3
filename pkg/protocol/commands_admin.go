// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package protocol

import (
	"encoding/json"

	"github.com/kraklabs/strata-foundry/pkg/value"
)

// BranchCreate creates a branch. A nil BranchID lets the engine pick one.
// Produces BranchWithVersion.
type BranchCreate struct {
	BranchID *string     `json:"branch_id,omitempty"`
	Metadata value.Value `json:"metadata,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *BranchCreate) UnmarshalJSON(data []byte) error {
	type plain BranchCreate
	aux := struct {
		*plain
		Metadata value.Box `json:"metadata"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.Metadata = aux.Metadata.V
	return nil
}

// BranchGet reads branch metadata. Produces MaybeBranchInfo.
type BranchGet struct {
	Branch string `json:"branch"`
}

// BranchList lists branches. Produces BranchInfoList.
type BranchList struct {
	State  *string `json:"state,omitempty"`
	Limit  *uint64 `json:"limit,omitempty"`
	Offset *uint64 `json:"offset,omitempty"`
}

// BranchExists checks for a branch. Produces Bool.
type BranchExists struct {
	Branch string `json:"branch"`
}

// BranchDelete deletes a branch. Produces Unit.
type BranchDelete struct {
	Branch string `json:"branch"`
}

// BranchFork copies a branch. Produces BranchForked.
type BranchFork struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// BranchDiff compares two branches. Produces BranchDiff.
type BranchDiff struct {
	BranchA string `json:"branch_a"`
	BranchB string `json:"branch_b"`
}

// BranchMerge merges source into target. Produces BranchMerged.
type BranchMerge struct {
	Source   string        `json:"source"`
	Target   string        `json:"target"`
	Strategy MergeStrategy `json:"strategy"`
}

// SpaceList lists the spaces of a branch. Produces SpaceList.
type SpaceList struct {
	Branch *string `json:"branch,omitempty"`
}

// SpaceCreate creates a space. Produces Unit.
type SpaceCreate struct {
	Branch *string `json:"branch,omitempty"`
	Space  string  `json:"space"`
}

// SpaceDelete deletes a space; Force deletes a non-empty one. Produces Unit.
type SpaceDelete struct {
	Branch *string `json:"branch,omitempty"`
	Space  string  `json:"space"`
	Force  bool    `json:"force"`
}

// SpaceExists checks for a space. Produces Bool.
type SpaceExists struct {
	Branch *string `json:"branch,omitempty"`
	Space  string  `json:"space"`
}

// Search runs a cross-primitive search. Produces SearchResults.
type Search struct {
	Target
	Query SearchQuery `json:"query"`
}

// ModelsList lists the model registry. Produces ModelsList.
type ModelsList struct{}

// ModelsLocal lists downloaded models. Produces ModelsList.
type ModelsLocal struct{}

// ModelsPull downloads a model. Produces ModelsPulled.
type ModelsPull struct {
	Name string `json:"name"`
}

// Embed embeds one text. Produces Embedding.
type Embed struct {
	Text string `json:"text"`
}

// EmbedBatch embeds several texts. Produces Embeddings.
type EmbedBatch struct {
	Texts []string `json:"texts"`
}

// Generate runs text generation. Produces Generated.
type Generate struct {
	Model       string   `json:"model"`
	Prompt      string   `json:"prompt"`
	MaxTokens   *uint64  `json:"max_tokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopK        *uint64  `json:"top_k,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
	Seed        *uint64  `json:"seed,omitempty"`
	StopTokens  []uint32 `json:"stop_tokens,omitempty"`
}

// Tokenize converts text into token ids. Produces TokenIds.
type Tokenize struct {
	Model            string `json:"model"`
	Text             string `json:"text"`
	AddSpecialTokens *bool  `json:"add_special_tokens,omitempty"`
}

// Detokenize converts token ids back into text. Produces Text.
type Detokenize struct {
	Model string   `json:"model"`
	IDs   []uint32 `json:"ids"`
}

// GenerateUnload releases a loaded model. Produces Bool.
type GenerateUnload struct {
	Model string `json:"model"`
}

// Ping checks the connection. Produces Pong.
type Ping struct{}

// Info reads database statistics. Produces DatabaseInfo.
type Info struct{}

// Flush persists pending writes. Produces Unit.
type Flush struct{}

// Compact compacts storage. Produces Unit.
type Compact struct{}

// TimeRange reads the oldest and latest timestamps of a branch. Produces
// TimeRange.
type TimeRange struct {
	Branch *string `json:"branch,omitempty"`
}

// ConfigGet reads the effective configuration. Produces Config.
type ConfigGet struct{}

// ConfigSetAutoEmbed toggles automatic embedding. Produces Unit.
type ConfigSetAutoEmbed struct {
	Enabled bool `json:"enabled"`
}

// AutoEmbedStatus reports whether automatic embedding is on. Produces Bool.
type AutoEmbedStatus struct{}

// DurabilityCounters reads WAL counters. Produces DurabilityCounters.
type DurabilityCounters struct{}

func (BranchCreate) Variant() string { return "BranchCreate" }
func (BranchGet) Variant() string    { return "BranchGet" }
func (BranchList) Variant() string   { return "BranchList" }
func (BranchExists) Variant() string { return "BranchExists" }
func (BranchDelete) Variant() string { return "BranchDelete" }
func (BranchFork) Variant() string   { return "BranchFork" }
func (BranchDiff) Variant() string   { return "BranchDiff" }
func (BranchMerge) Variant() string  { return "BranchMerge" }

func (SpaceList) Variant() string   { return "SpaceList" }
func (SpaceCreate) Variant() string { return "SpaceCreate" }
func (SpaceDelete) Variant() string { return "SpaceDelete" }
func (SpaceExists) Variant() string { return "SpaceExists" }

func (Search) Variant() string { return "Search" }

func (ModelsList) Variant() string  { return "ModelsList" }
func (ModelsLocal) Variant() string { return "ModelsLocal" }
func (ModelsPull) Variant() string  { return "ModelsPull" }
func (Embed) Variant() string       { return "Embed" }
func (EmbedBatch) Variant() string  { return "EmbedBatch" }

func (Generate) Variant() string       { return "Generate" }
func (Tokenize) Variant() string       { return "Tokenize" }
func (Detokenize) Variant() string     { return "Detokenize" }
func (GenerateUnload) Variant() string { return "GenerateUnload" }

func (Ping) Variant() string               { return "Ping" }
func (Info) Variant() string               { return "Info" }
func (Flush) Variant() string              { return "Flush" }
func (Compact) Variant() string            { return "Compact" }
func (TimeRange) Variant() string          { return "TimeRange" }
func (ConfigGet) Variant() string          { return "ConfigGet" }
func (ConfigSetAutoEmbed) Variant() string { return "ConfigSetAutoEmbed" }
func (AutoEmbedStatus) Variant() string    { return "AutoEmbedStatus" }
func (DurabilityCounters) Variant() string { return "DurabilityCounters" }

func (BranchCreate) command() {}
func (BranchGet) command()    {}
func (BranchList) command()   {}
func (BranchExists) command() {}
func (BranchDelete) command() {}
func (BranchFork) command()   {}
func (BranchDiff) command()   {}
func (BranchMerge) command()  {}

func (SpaceList) command()   {}
func (SpaceCreate) command() {}
func (SpaceDelete) command() {}
func (SpaceExists) command() {}

func (Search) command() {}

func (ModelsList) command()  {}
func (ModelsLocal) command() {}
func (ModelsPull) command()  {}
func (Embed) command()       {}
func (EmbedBatch) command()  {}

func (Generate) command()       {}
func (Tokenize) command()       {}
func (Detokenize) command()     {}
func (GenerateUnload) command() {}

func (Ping) command()               {}
func (Info) command()               {}
func (Flush) command()              {}
func (Compact) command()            {}
func (TimeRange) command()          {}
func (ConfigGet) command()          {}
func (ConfigSetAutoEmbed) command() {}
func (AutoEmbedStatus) command()    {}
func (DurabilityCounters) command() {}

func (ModelsList) unit()         {}
func (ModelsLocal) unit()        {}
func (Ping) unit()               {}
func (Info) unit()               {}
func (Flush) unit()              {}
func (Compact) unit()            {}
func (ConfigGet) unit()          {}
func (AutoEmbedStatus) unit()    {}
func (DurabilityCounters) unit() {}
