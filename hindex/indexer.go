package hindex

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/lingxi-ai/retrieva/ai"
	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/storage"
)

const (
	// summaryInputCap bounds how much document text goes into the
	// summarization prompt.
	summaryInputCap = 2000

	// summaryFallbackLen is the prefix length used when generation fails.
	summaryFallbackLen = 200

	defaultPoolSize = 4
)

const summaryPromptFormat = "请用一段话概括以下文档的主要内容，直接给出概括，不要添加任何前缀说明。\n\n%s"

// Hit is a chunk returned by a hierarchical search. Score is cosine
// similarity, higher is better.
type Hit struct {
	DocID string
	KBID  int64
	Text  string
	Score float64
}

// Indexer maintains a two-tier index: document summaries for coarse
// search and chunk vectors for fine search within the selected
// documents. All vectors are stored L2-normalized, so cosine similarity
// reduces to a dot product.
type Indexer struct {
	mu        sync.RWMutex
	summaries map[string]*core.SummaryEntry
	chunks    map[string]*core.ChunkEntry

	embedder  ai.Embedder
	generator ai.Generator
	repo      storage.IndexRepository
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Indexer.
type Option func(*Indexer) error

// WithRepository sets an index repository for persistence. Call Load to
// restore previously persisted entries.
func WithRepository(repo storage.IndexRepository) Option {
	return func(idx *Indexer) error {
		idx.repo = repo
		return nil
	}
}

// WithPoolSize sets the embedding worker pool size.
func WithPoolSize(size int) Option {
	return func(idx *Indexer) error {
		if size <= 0 {
			return fmt.Errorf("pool size must be positive, got %d", size)
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		idx.pool.Release()
		idx.pool = pool
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Indexer) error {
		idx.logger = logger
		return nil
	}
}

// NewIndexer creates an Indexer. The generator is used for document
// summaries; when it fails, a text prefix is used instead.
func NewIndexer(embedder ai.Embedder, generator ai.Generator, opts ...Option) (*Indexer, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	idx := &Indexer{
		summaries: make(map[string]*core.SummaryEntry),
		chunks:    make(map[string]*core.ChunkEntry),
		embedder:  embedder,
		generator: generator,
		pool:      pool,
		logger:    slog.Default().With("component", "hindex"),
	}
	for _, opt := range opts {
		if err := opt(idx); err != nil {
			pool.Release()
			return nil, err
		}
	}
	return idx, nil
}

// Close releases the worker pool.
func (idx *Indexer) Close() error {
	idx.pool.Release()
	return nil
}

// Load restores persisted index entries. Without a repository it is a no-op.
func (idx *Indexer) Load(ctx context.Context) error {
	if idx.repo == nil {
		return nil
	}

	summaries, err := idx.repo.LoadSummaries(ctx)
	if err != nil {
		return fmt.Errorf("loading summaries: %w", err)
	}
	entries, err := idx.repo.LoadChunkEntries(ctx)
	if err != nil {
		return fmt.Errorf("loading chunk entries: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, s := range summaries {
		idx.summaries[s.DocID] = s
	}
	for _, e := range entries {
		idx.chunks[e.DocID] = e
	}

	idx.logger.Info("loaded index", "documents", len(summaries))
	return nil
}

// AddDocument indexes a document from its chunk texts, replacing any
// existing entries for the same docID.
func (idx *Indexer) AddDocument(ctx context.Context, docID string, kbID int64, chunkTexts []string) error {
	if docID == "" {
		return core.ErrEmptyDocID
	}
	if len(chunkTexts) == 0 {
		return ErrNoChunks
	}

	summary := idx.summarize(ctx, chunkTexts)
	summaryVec, err := idx.embedder.EmbedText(ctx, summary)
	if err != nil {
		return fmt.Errorf("embedding summary: %w", err)
	}
	normalize(summaryVec)

	vectors, err := idx.embedChunks(ctx, chunkTexts)
	if err != nil {
		return err
	}

	summaryEntry := &core.SummaryEntry{
		DocID:   docID,
		KBID:    kbID,
		Summary: summary,
		Vector:  summaryVec,
	}
	chunkEntry := &core.ChunkEntry{
		DocID:   docID,
		KBID:    kbID,
		Chunks:  slices.Clone(chunkTexts),
		Vectors: vectors,
	}

	if idx.repo != nil {
		if err := idx.repo.PutSummary(ctx, summaryEntry); err != nil {
			return fmt.Errorf("persisting summary: %w", err)
		}
		if err := idx.repo.PutChunkEntry(ctx, chunkEntry); err != nil {
			return fmt.Errorf("persisting chunk entry: %w", err)
		}
	}

	idx.mu.Lock()
	idx.summaries[docID] = summaryEntry
	idx.chunks[docID] = chunkEntry
	idx.mu.Unlock()

	idx.logger.Debug("indexed document", "doc_id", docID, "kb_id", kbID, "chunks", len(chunkTexts))
	return nil
}

// RemoveDocument drops both index tiers for a document.
func (idx *Indexer) RemoveDocument(ctx context.Context, docID string) error {
	if docID == "" {
		return core.ErrEmptyDocID
	}

	if idx.repo != nil {
		if err := idx.repo.DeleteDocument(ctx, docID); err != nil {
			return fmt.Errorf("deleting persisted entries: %w", err)
		}
	}

	idx.mu.Lock()
	delete(idx.summaries, docID)
	delete(idx.chunks, docID)
	idx.mu.Unlock()
	return nil
}

// DocumentCount returns the number of indexed documents.
func (idx *Indexer) DocumentCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.summaries)
}

// Search runs a coarse-to-fine search: pick the topDocs documents whose
// summaries are closest to the query, then rank the chunks of those
// documents and return the topChunks best hits.
func (idx *Indexer) Search(ctx context.Context, query string, kbID int64, topDocs, topChunks int) ([]Hit, error) {
	if err := core.ValidateTopK(topChunks); err != nil {
		return nil, err
	}
	if topDocs <= 0 {
		topDocs = 1
	}

	queryVec, err := idx.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	normalize(queryVec)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	// Coarse tier: rank documents by summary similarity.
	type docScore struct {
		docID string
		score float64
	}
	var docs []docScore
	for docID, entry := range idx.summaries {
		if kbID != 0 && entry.KBID != kbID {
			continue
		}
		docs = append(docs, docScore{docID, dot(queryVec, entry.Vector)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].score > docs[j].score })
	if len(docs) > topDocs {
		docs = docs[:topDocs]
	}

	// Fine tier: rank chunks within the selected documents.
	var hits []Hit
	for _, d := range docs {
		entry, ok := idx.chunks[d.docID]
		if !ok {
			continue
		}
		for i, vec := range entry.Vectors {
			hits = append(hits, Hit{
				DocID: entry.DocID,
				KBID:  entry.KBID,
				Text:  entry.Chunks[i],
				Score: dot(queryVec, vec),
			})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if len(hits) > topChunks {
		hits = hits[:topChunks]
	}
	return hits, nil
}

// summarize asks the generator for a document summary, falling back to a
// text prefix on failure.
func (idx *Indexer) summarize(ctx context.Context, chunkTexts []string) string {
	full := joinRunesCapped(chunkTexts, summaryInputCap)

	summary, err := idx.generator.Generate(ctx, fmt.Sprintf(summaryPromptFormat, full))
	if err != nil || summary == "" {
		if err != nil {
			idx.logger.Warn("summary generation failed, using prefix", "error", err)
		}
		runes := []rune(full)
		if len(runes) > summaryFallbackLen {
			runes = runes[:summaryFallbackLen]
		}
		return string(runes)
	}
	return summary
}

// embedChunks embeds chunk texts concurrently on the worker pool and
// normalizes the results, preserving input order.
func (idx *Indexer) embedChunks(ctx context.Context, chunkTexts []string) ([][]float32, error) {
	vectors := make([][]float32, len(chunkTexts))
	errs := make([]error, len(chunkTexts))

	var wg sync.WaitGroup
	for i, text := range chunkTexts {
		wg.Add(1)
		i, text := i, text
		submitErr := idx.pool.Submit(func() {
			defer wg.Done()
			vec, err := idx.embedder.EmbedText(ctx, text)
			if err != nil {
				errs[i] = err
				return
			}
			normalize(vec)
			vectors[i] = vec
		})
		if submitErr != nil {
			wg.Done()
			// Already-submitted tasks still write into vectors and errs;
			// wait for them before letting the slices go out of scope.
			wg.Wait()
			return nil, fmt.Errorf("submitting embed task: %w", submitErr)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("embedding chunk %d: %w", i, err)
		}
	}
	return vectors, nil
}

// joinRunesCapped concatenates texts with newlines up to a rune budget.
func joinRunesCapped(texts []string, budget int) string {
	var runes []rune
	for _, text := range texts {
		if len(runes) > 0 {
			runes = append(runes, '\n')
		}
		runes = append(runes, []rune(text)...)
		if len(runes) >= budget {
			return string(runes[:budget])
		}
	}
	return string(runes)
}

// normalize scales a vector to unit length in place.
func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}

// dot computes the dot product; for normalized vectors this is cosine
// similarity.
func dot(a, b []float32) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	var sum float64
	for i := 0; i < minLen; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
