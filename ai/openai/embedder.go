// Copyright 2025 Lingxi AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/lingxi-ai/retrieva/ai"
)

// Embedder implements ai.Embedder against any OpenAI-compatible
// embeddings endpoint (OpenAI, Ollama, LocalAI, vLLM).
type Embedder struct {
	embedder embeddings.Embedder
	model    string
}

// NewEmbedder creates an Embedder from the provider configuration.
func NewEmbedder(cfg *ai.Config) (*Embedder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	return &Embedder{
		embedder: embedder,
		model:    cfg.EmbeddingModel,
	}, nil
}

// EmbedText generates a vector embedding for a single text string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding text with model %s: %w", e.model, err)
	}
	return vector, nil
}

// EmbedTexts generates vector embeddings for multiple texts in one batch.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d texts with model %s: %w", len(texts), e.model, err)
	}
	return vectors, nil
}

var _ ai.Embedder = (*Embedder)(nil)
