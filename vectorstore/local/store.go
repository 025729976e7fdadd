package local

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lingxi-ai/retrieva/ai"
	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage"
	"github.com/lingxi-ai/retrieva/vectorstore"
)

// Store is a vector store backed by a chunk repository and an embedder.
// Search is a brute-force scan over the knowledge base, which is fine for
// the corpus sizes this engine targets.
type Store struct {
	embedder ai.Embedder
	repo     storage.ChunkRepository
	logger   *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a local vector store.
func NewStore(embedder ai.Embedder, repo storage.ChunkRepository, opts ...Option) (*Store, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if repo == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Store{
		embedder: embedder,
		repo:     repo,
		logger:   slog.Default().With("component", "vectorstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddChunks embeds the chunk texts in one batch and persists them.
func (s *Store) AddChunks(ctx context.Context, chunks ...core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	embedded := make([]*core.EmbeddedChunk, len(chunks))
	for i, chunk := range chunks {
		embedded[i] = &core.EmbeddedChunk{Chunk: chunk, Vector: vectors[i]}
	}

	if _, err := s.repo.AddChunks(ctx, embedded...); err != nil {
		return fmt.Errorf("storing chunks: %w", err)
	}

	s.logger.Debug("added chunks", "count", len(chunks), "kb_id", chunks[0].KBID)
	return nil
}

// SimilaritySearch embeds the query and scans the knowledge base.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int, kbID int64) ([]vectorstore.Match, error) {
	if err := core.ValidateTopK(k); err != nil {
		return nil, err
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := s.repo.FindSimilar(ctx, vector, kbID, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	results := make([]vectorstore.Match, len(matches))
	for i, m := range matches {
		results[i] = vectorstore.Match{Chunk: m.Chunk, Distance: m.Distance}
	}
	return results, nil
}

var _ vectorstore.Store = (*Store)(nil)
