package openai

import (
	"fmt"

	"github.com/lingxi-ai/retrieva/ai"
)

// Provider implements ai.Provider for OpenAI-compatible services.
type Provider struct {
	embedder  *Embedder
	generator *Generator
}

// NewProvider creates a Provider with an Embedder and a Generator built
// from the same configuration.
func NewProvider(cfg *ai.Config) (*Provider, error) {
	embedder, err := NewEmbedder(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}

	generator, err := NewGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	return &Provider{
		embedder:  embedder,
		generator: generator,
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the text generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases resources held by the provider. The underlying HTTP
// clients hold no persistent connections that need explicit shutdown.
func (p *Provider) Close() error {
	return nil
}

var _ ai.Provider = (*Provider)(nil)
