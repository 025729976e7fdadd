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
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/lingxi-ai/retrieva/ai"
)

// Generator implements ai.Generator against any OpenAI-compatible
// chat completions endpoint.
type Generator struct {
	client *openai.LLM
	model  string
}

// NewGenerator creates a Generator from the provider configuration.
func NewGenerator(cfg *ai.Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client, err := openai.New(
		openai.WithBaseURL(cfg.GenerationHost),
		openai.WithToken("none"),
		openai.WithModel(cfg.GenerationModel),
	)
	if err != nil {
		return nil, fmt.Errorf("creating openai client: %w", err)
	}

	return &Generator{
		client: client,
		model:  cfg.GenerationModel,
	}, nil
}

// Generate returns the model completion for the prompt.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}

	resp, err := g.client.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("generating with model %s: %w", g.model, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("generation returned no choices")
	}
	return resp.Choices[0].Content, nil
}

var _ ai.Generator = (*Generator)(nil)
