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


package retrieva

import (
	"context"
	"log/slog"

	"github.com/lingxi-ai/retrieva/ai"
	"github.com/lingxi-ai/retrieva/ai/openai"
	"github.com/lingxi-ai/retrieva/confidence"
	"github.com/lingxi-ai/retrieva/dialogue"
	"github.com/lingxi-ai/retrieva/entity"
	"github.com/lingxi-ai/retrieva/expand"
	"github.com/lingxi-ai/retrieva/hindex"
	"github.com/lingxi-ai/retrieva/lexical"
	"github.com/lingxi-ai/retrieva/nlp"
	"github.com/lingxi-ai/retrieva/nlp/gse"
	"github.com/lingxi-ai/retrieva/retrieve"
	"github.com/lingxi-ai/retrieva/splitter"
	"github.com/lingxi-ai/retrieva/storage"
	"github.com/lingxi-ai/retrieva/storage/badger"
	"github.com/lingxi-ai/retrieva/timex"
	"github.com/lingxi-ai/retrieva/vectorstore"
	"github.com/lingxi-ai/retrieva/vectorstore/local"
)

// Engine bundles the storage backend, AI provider, text analysis, and
// vector store behind one handle, and hands out the retrieval pipeline
// components wired against them.
type Engine struct {
	backend   *badger.Backend
	chunkRepo storage.ChunkRepository
	indexRepo storage.IndexRepository
	provider  ai.Provider
	analyzer  nlp.Analyzer
	lex       *nlp.Lexicon
	store     vectorstore.Store
	split     *splitter.Splitter
	indexer   *hindex.Indexer
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	analyzer nlp.Analyzer
	lexicon  *nlp.Lexicon
	store    vectorstore.Store
	inMemory bool
}

// WithAIConfig sets the AI provider configuration used when no provider
// is injected.
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider injects an AI provider instead of constructing the
// OpenAI-compatible default. The engine takes ownership and closes it.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithAnalyzer injects a text analyzer instead of loading the gse
// segmenter dictionary.
func WithAnalyzer(analyzer nlp.Analyzer) EngineOption {
	return func(o *engineOptions) {
		o.analyzer = analyzer
	}
}

// WithLexicon replaces the built-in lexicon.
func WithLexicon(lex *nlp.Lexicon) EngineOption {
	return func(o *engineOptions) {
		if lex != nil {
			o.lexicon = lex
		}
	}
}

// WithVectorStore injects an external vector store. The default is the
// badger-backed local store.
func WithVectorStore(store vectorstore.Store) EngineOption {
	return func(o *engineOptions) {
		o.store = store
	}
}

// WithInMemoryStorage keeps all storage in memory. Intended for tests.
func WithInMemoryStorage() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
		lexicon:  nlp.DefaultLexicon(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create chunk repository
	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create hierarchical index repository
	indexRepo, err := badger.NewIndexRepository(backend)
	if err != nil {
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			indexRepo.Close()
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	analyzer := options.analyzer
	if analyzer == nil {
		analyzer, err = gse.NewAnalyzer(options.lexicon)
		if err != nil {
			provider.Close()
			indexRepo.Close()
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	store := options.store
	if store == nil {
		store, err = local.NewStore(provider.Embedder(), chunkRepo)
		if err != nil {
			provider.Close()
			indexRepo.Close()
			chunkRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	indexer, err := hindex.NewIndexer(provider.Embedder(), provider.Generator(),
		hindex.WithRepository(indexRepo))
	if err != nil {
		provider.Close()
		indexRepo.Close()
		chunkRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:   backend,
		chunkRepo: chunkRepo,
		indexRepo: indexRepo,
		provider:  provider,
		analyzer:  analyzer,
		lex:       options.lexicon,
		store:     store,
		split:     splitter.New(),
		indexer:   indexer,
		logger:    slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	// Release the indexer worker pool first
	if err := e.indexer.Close(); err != nil {
		e.logger.Error("error closing hierarchical indexer", "err", err)
	}

	// Close AI provider
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := e.indexRepo.Close(); err != nil {
		e.logger.Error("error closing index repository", "err", err)
		return err
	}
	if err := e.chunkRepo.Close(); err != nil {
		e.logger.Error("error closing chunk repository", "err", err)
		return err
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) ChunkRepository() storage.ChunkRepository {
	return e.chunkRepo
}

func (e *Engine) IndexRepository() storage.IndexRepository {
	return e.indexRepo
}

func (e *Engine) Store() vectorstore.Store {
	return e.store
}

func (e *Engine) Indexer() *hindex.Indexer {
	return e.indexer
}

// NewRetriever builds the hybrid retriever on the engine's vector store
// and text analysis stack.
func (e *Engine) NewRetriever(opts ...retrieve.Option) (*retrieve.Retriever, error) {
	expander, err := expand.NewExpander(e.analyzer, e.lex)
	if err != nil {
		return nil, err
	}
	extractor, err := entity.NewExtractor(e.analyzer, e.lex)
	if err != nil {
		return nil, err
	}
	tfidf, err := lexical.NewTFIDF(e.analyzer)
	if err != nil {
		return nil, err
	}

	components := retrieve.Components{
		Store:    e.store,
		Expander: expander,
		Entities: extractor,
		Times:    timex.NewManager(),
		TFIDF:    tfidf,
		Keywords: e.analyzer,
	}
	opts = append([]retrieve.Option{retrieve.WithLexicon(e.lex)}, opts...)
	return retrieve.NewRetriever(components, opts...)
}

// NewEvaluator builds a confidence evaluator sharing the engine's
// analysis stack.
func (e *Engine) NewEvaluator(opts ...confidence.Option) (*confidence.Evaluator, error) {
	tfidf, err := lexical.NewTFIDF(e.analyzer)
	if err != nil {
		return nil, err
	}
	return confidence.NewEvaluator(tfidf, opts...)
}

// NewHyDE builds a query rewriter on the engine's generator.
func (e *Engine) NewHyDE(opts ...retrieve.HyDEOption) (*retrieve.HyDE, error) {
	return retrieve.NewHyDE(e.provider.Generator(), opts...)
}

// NewDialogueManager builds a conversation context manager sharing the
// engine's entity extraction.
func (e *Engine) NewDialogueManager(opts ...dialogue.Option) (*dialogue.Manager, error) {
	extractor, err := entity.NewExtractor(e.analyzer, e.lex)
	if err != nil {
		return nil, err
	}
	return dialogue.NewManager(extractor, opts...)
}

// LoadIndex restores the persisted hierarchical index into memory.
func (e *Engine) LoadIndex(ctx context.Context) error {
	return e.indexer.Load(ctx)
}

// IndexDocument splits a document into chunks, embeds and stores them in
// the vector store, and registers the document with the hierarchical
// index under its source name.
func (e *Engine) IndexDocument(ctx context.Context, text, source string, kbID int64) error {
	chunks, err := e.split.SplitDocument(text, source, kbID)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	if err := e.store.AddChunks(ctx, chunks...); err != nil {
		return err
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return e.indexer.AddDocument(ctx, source, kbID, texts)
}

// RemoveDocument drops a document from the hierarchical index. Chunk
// records are content-addressed and may be shared between documents, so
// they are left in place.
func (e *Engine) RemoveDocument(ctx context.Context, docID string) error {
	return e.indexer.RemoveDocument(ctx, docID)
}
