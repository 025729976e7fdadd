package vectorstore

import (
	"context"

	"github.com/lingxi-ai/retrieva/core"
)

// Match is a similarity search hit. Distance is store-native (for cosine
// stores, 1 - cosine similarity), so lower means more similar. Distances
// from different stores are not comparable to each other.
type Match struct {
	Chunk    core.Chunk
	Distance float32
}

// Store is the vector store port the retrieval core depends on.
// Implementations must be thread-safe.
type Store interface {
	// AddChunks embeds and persists chunks. Chunks keep their KB scope.
	AddChunks(ctx context.Context, chunks ...core.Chunk) error

	// SimilaritySearch returns up to k matches for the query within one
	// knowledge base, ordered by distance ascending.
	SimilaritySearch(ctx context.Context, query string, k int, kbID int64) ([]Match, error)
}
