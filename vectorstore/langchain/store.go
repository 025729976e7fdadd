package langchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tmc/langchaingo/schema"
	"github.com/tmc/langchaingo/vectorstores"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/vectorstore"
)

// Metadata keys used on langchaingo documents.
const (
	metaKBID       = "kb_id"
	metaSource     = "source"
	metaChunkIndex = "chunk_index"
)

// Store adapts any langchaingo vector store (Chroma, pgvector, Qdrant,
// ...) to the vectorstore.Store port. Knowledge-base scoping is done
// with a kb_id metadata filter, so the backing store must support
// metadata filtering.
type Store struct {
	store  vectorstores.VectorStore
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore wraps a langchaingo vector store.
func NewStore(store vectorstores.VectorStore, opts ...Option) (*Store, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}

	s := &Store{
		store:  store,
		logger: slog.Default().With("component", "vectorstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AddChunks converts chunks to documents and delegates to the backing store.
func (s *Store) AddChunks(ctx context.Context, chunks ...core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	docs := make([]schema.Document, len(chunks))
	for i, chunk := range chunks {
		docs[i] = schema.Document{
			PageContent: chunk.Text,
			Metadata: map[string]any{
				metaKBID:       chunk.KBID,
				metaSource:     chunk.Source,
				metaChunkIndex: chunk.ChunkIndex,
			},
		}
	}

	if _, err := s.store.AddDocuments(ctx, docs); err != nil {
		return fmt.Errorf("adding %d documents: %w", len(docs), err)
	}

	s.logger.Debug("added chunks", "count", len(chunks), "kb_id", chunks[0].KBID)
	return nil
}

// SimilaritySearch queries the backing store scoped to one knowledge base.
// Document scores are relevance scores (higher is better) and are
// converted to the port's distance convention, where lower is closer.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int, kbID int64) ([]vectorstore.Match, error) {
	if err := core.ValidateTopK(k); err != nil {
		return nil, err
	}

	docs, err := s.store.SimilaritySearch(ctx, query, k,
		vectorstores.WithFilters(map[string]any{metaKBID: kbID}),
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	matches := make([]vectorstore.Match, 0, len(docs))
	for _, doc := range docs {
		matches = append(matches, vectorstore.Match{
			Chunk:    chunkFromDocument(doc, kbID),
			Distance: 1 - doc.Score,
		})
	}
	return matches, nil
}

// chunkFromDocument rebuilds a chunk from a stored document. IDs are
// content-based, so round-tripping through the store keeps them stable.
func chunkFromDocument(doc schema.Document, kbID int64) core.Chunk {
	chunk := core.Chunk{
		ID:   core.IDFromContent(doc.PageContent),
		Text: doc.PageContent,
		KBID: kbID,
	}
	if source, ok := doc.Metadata[metaSource].(string); ok {
		chunk.Source = source
	}
	switch idx := doc.Metadata[metaChunkIndex].(type) {
	case int:
		chunk.ChunkIndex = idx
	case float64:
		chunk.ChunkIndex = int(idx)
	}
	return chunk
}

var _ vectorstore.Store = (*Store)(nil)
