package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// a batch, in input order. Batch calls are cheaper than repeated
	// EmbedText calls. Returns an error if any embedding fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces free-form text from a prompt. The retrieval core
// uses it for document summarization and hypothetical-answer generation,
// never for user-facing answers.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate returns the model completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Embedder and
// Generator instances sharing configuration and resources.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Generator returns the text generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	Close() error
}
