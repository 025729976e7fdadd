package mock

import "github.com/lingxi-ai/retrieva/ai"

// Provider bundles the mock embedder and generator behind ai.Provider.
type Provider struct {
	MockEmbedder  *Embedder
	MockGenerator *Generator
}

// NewProvider creates a provider with fresh mock services.
func NewProvider() *Provider {
	return &Provider{
		MockEmbedder:  NewEmbedder(),
		MockGenerator: NewGenerator(),
	}
}

// Embedder returns the mock embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.MockEmbedder
}

// Generator returns the mock generation service.
func (p *Provider) Generator() ai.Generator {
	return p.MockGenerator
}

// Close is a no-op for mocks.
func (p *Provider) Close() error {
	return nil
}

var _ ai.Provider = (*Provider)(nil)
