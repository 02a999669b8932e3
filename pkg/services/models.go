// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package services

import (
	"context"

	"github.com/kraklabs/strata-foundry/pkg/bridge"
	"github.com/kraklabs/strata-foundry/pkg/protocol"
)

// Models manages the model registry and embeddings.
type Models struct {
	c *bridge.Client
}

// List returns every model the engine knows about.
func (s *Models) List(ctx context.Context) ([]protocol.ModelInfo, error) {
	out, err := bridge.Expect[protocol.OutModelsList](ctx, s.c, protocol.ModelsList{})
	return []protocol.ModelInfo(out), err
}

// Local returns the models already downloaded.
func (s *Models) Local(ctx context.Context) ([]protocol.ModelInfo, error) {
	out, err := bridge.Expect[protocol.OutModelsList](ctx, s.c, protocol.ModelsLocal{})
	return []protocol.ModelInfo(out), err
}

// Pull downloads a model and returns its name and local path.
func (s *Models) Pull(ctx context.Context, name string) (string, string, error) {
	out, err := bridge.Expect[protocol.OutModelsPulled](ctx, s.c, protocol.ModelsPull{Name: name})
	return out.Name, out.Path, err
}

// Embed returns the embedding of text using the configured model.
func (s *Models) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := bridge.Expect[protocol.OutEmbedding](ctx, s.c, protocol.Embed{Text: text})
	return []float32(out), err
}

// EmbedBatch embeds texts in order.
func (s *Models) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out, err := bridge.Expect[protocol.OutEmbeddings](ctx, s.c, protocol.EmbedBatch{Texts: texts})
	return [][]float32(out), err
}

// Generation runs local text generation.
type Generation struct {
	c *bridge.Client
}

// GenerateParams are the optional sampling settings.
type GenerateParams struct {
	MaxTokens   *uint64
	Temperature *float32
	TopK        *uint64
	TopP        *float32
	Seed        *uint64
	StopTokens  []uint32
}

// Generate runs a completion of prompt on model.
func (s *Generation) Generate(ctx context.Context, model, prompt string, p GenerateParams) (protocol.GenerationResult, error) {
	out, err := bridge.Expect[protocol.OutGenerated](ctx, s.c, protocol.Generate{
		Model:       model,
		Prompt:      prompt,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
		TopK:        p.TopK,
		TopP:        p.TopP,
		Seed:        p.Seed,
		StopTokens:  p.StopTokens,
	})
	return protocol.GenerationResult(out), err
}

// Tokenize returns the token ids of text for model.
func (s *Generation) Tokenize(ctx context.Context, model, text string, addSpecialTokens *bool) (protocol.TokenizeResult, error) {
	out, err := bridge.Expect[protocol.OutTokenIds](ctx, s.c, protocol.Tokenize{
		Model: model, Text: text, AddSpecialTokens: addSpecialTokens,
	})
	return protocol.TokenizeResult(out), err
}

// Detokenize turns token ids back into text.
func (s *Generation) Detokenize(ctx context.Context, model string, ids []uint32) (string, error) {
	out, err := bridge.Expect[protocol.OutText](ctx, s.c, protocol.Detokenize{Model: model, IDs: ids})
	return string(out), err
}

// Unload releases a loaded model and reports whether it was loaded.
func (s *Generation) Unload(ctx context.Context, model string) (bool, error) {
	out, err := bridge.Expect[protocol.OutBool](ctx, s.c, protocol.GenerateUnload{Model: model})
	return bool(out), err
}
