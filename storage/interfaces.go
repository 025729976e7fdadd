package storage

import (
	"context"

	"github.com/lingxi-ai/retrieva/core"
)

// ChunkMatch is a similarity search hit. Distance is the store-native
// distance (1 - cosine similarity), so lower is better.
type ChunkMatch struct {
	Chunk    core.Chunk
	Distance float32
}

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ChunkRepository provides operations for managing embedded chunks.
type ChunkRepository interface {
	Repository
	// AddChunks adds one or more embedded chunks to storage.
	// Chunks with ID=0 get a content-based ID assigned.
	// Re-adding an existing ID overwrites the stored chunk.
	AddChunks(ctx context.Context, chunks ...*core.EmbeddedChunk) ([]*core.EmbeddedChunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.EmbeddedChunk, error)

	// GetChunksByKB retrieves every chunk belonging to a knowledge base.
	GetChunksByKB(ctx context.Context, kbID int64) ([]*core.EmbeddedChunk, error)

	// DeleteChunks removes chunks by their IDs.
	// Returns ErrNotFound if any chunk doesn't exist.
	DeleteChunks(ctx context.Context, ids ...core.ID) error

	// FindSimilar finds chunks in one knowledge base similar to the given
	// vector. Returns up to limit matches ordered by distance (closest
	// first). A kbID of zero searches all knowledge bases.
	FindSimilar(ctx context.Context, vector []float32, kbID int64, limit int) ([]*ChunkMatch, error)
}

// IndexRepository persists the two tiers of the hierarchical index so an
// index survives restarts without re-embedding every document.
type IndexRepository interface {
	Repository
	// PutSummary stores a document-level summary entry, replacing any
	// existing entry for the same document.
	PutSummary(ctx context.Context, entry *core.SummaryEntry) error

	// PutChunkEntry stores a chunk-level entry, replacing any existing
	// entry for the same document.
	PutChunkEntry(ctx context.Context, entry *core.ChunkEntry) error

	// LoadSummaries retrieves all stored summary entries.
	LoadSummaries(ctx context.Context) ([]*core.SummaryEntry, error)

	// LoadChunkEntries retrieves all stored chunk entries.
	LoadChunkEntries(ctx context.Context) ([]*core.ChunkEntry, error)

	// DeleteDocument removes both tiers for one document.
	// Missing entries are not an error.
	DeleteDocument(ctx context.Context, docID string) error
}
