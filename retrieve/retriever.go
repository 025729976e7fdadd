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


package retrieve

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/entity"
	"github.com/lingxi-ai/retrieva/expand"
	"github.com/lingxi-ai/retrieva/lexical"
	"github.com/lingxi-ai/retrieva/nlp"
	"github.com/lingxi-ai/retrieva/timex"
	"github.com/lingxi-ai/retrieva/vectorstore"
)

// Components are the collaborators a Retriever orchestrates.
type Components struct {
	Store    vectorstore.Store
	Expander *expand.Expander
	Entities *entity.Extractor
	Times    *timex.Manager
	TFIDF    *lexical.TFIDF
	Keywords nlp.KeywordExtractor
}

// Retriever is the hybrid retrieval orchestrator: it expands and
// classifies the query, pulls candidates from the vector store, scores
// them with lexical, entity, and temporal signals, filters and
// deduplicates, and falls back to a relaxed keyword search when the
// primary pass comes up empty.
type Retriever struct {
	store    vectorstore.Store
	expander *expand.Expander
	entities *entity.Extractor
	times    *timex.Manager
	tfidf    *lexical.TFIDF
	keywords nlp.KeywordExtractor
	lex      *nlp.Lexicon
	cfg      Config
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithConfig replaces the default configuration.
func WithConfig(cfg Config) Option {
	return func(r *Retriever) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		r.cfg = cfg
		return nil
	}
}

// WithLexicon sets the lexicon used for person-related query biasing.
// Default is the built-in lexicon.
func WithLexicon(lex *nlp.Lexicon) Option {
	return func(r *Retriever) error {
		if lex != nil {
			r.lex = lex
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// NewRetriever creates a hybrid retriever.
func NewRetriever(c Components, opts ...Option) (*Retriever, error) {
	if c.Store == nil {
		return nil, ErrStoreRequired
	}
	if c.Expander == nil {
		return nil, ErrExpanderRequired
	}
	if c.Entities == nil {
		return nil, ErrExtractorRequired
	}
	if c.Times == nil {
		return nil, ErrTimeManagerRequired
	}
	if c.TFIDF == nil {
		return nil, ErrSimilarityRequired
	}
	if c.Keywords == nil {
		return nil, ErrKeywordsRequired
	}

	r := &Retriever{
		store:    c.Store,
		expander: c.Expander,
		entities: c.Entities,
		times:    c.Times,
		tfidf:    c.TFIDF,
		keywords: c.Keywords,
		lex:      nlp.DefaultLexicon(),
		cfg:      DefaultConfig(),
		logger:   slog.Default().With("component", "retrieve"),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Config returns the active configuration.
func (r *Retriever) Config() Config {
	return r.cfg
}

// Retrieve returns the chunks most relevant to the query within one
// knowledge base, ordered descending by final score, at most RerankTopK.
// Backend failures degrade to an empty result, never an error.
func (r *Retriever) Retrieve(ctx context.Context, query string, kbID int64) ([]core.ScoredChunk, error) {
	return r.RetrieveWithMonitor(ctx, query, kbID, nil)
}

// queryAnalysis holds the per-request understanding of the query.
type queryAnalysis struct {
	expanded      string
	entities      core.EntitySet
	timeInfo      core.TimeInfo
	keywords      []string
	personNames   core.StringSet
	personRelated bool
}

// RetrieveWithMonitor is Retrieve with per-stage observation hooks.
func (r *Retriever) RetrieveWithMonitor(ctx context.Context, query string, kbID int64, monitor RetrievalMonitor) ([]core.ScoredChunk, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if strings.TrimSpace(query) == "" {
		return nil, core.ErrEmptyText
	}
	if kbID <= 0 {
		return nil, core.ErrInvalidKBID
	}

	monitor.Start(query, kbID)

	analysis := r.analyzeQuery(query)
	monitor.AfterQueryAnalysis(analysis.expanded, analysis.entities, analysis.timeInfo, analysis.keywords)

	matches, err := r.store.SimilaritySearch(ctx, analysis.expanded, r.cfg.TopKChunks, kbID)
	if err != nil {
		// Degrade to "no relevant content" rather than failing the request.
		r.logger.Error("vector search failed", "kb_id", kbID, "err", err)
		monitor.Finish(nil)
		return []core.ScoredChunk{}, nil
	}
	monitor.AfterVectorSearch(matches)

	candidates := r.scoreCandidates(query, analysis, matches)
	monitor.AfterScoring(candidates)

	results := r.filterAndDedup(candidates)
	monitor.AfterFiltering(results)

	if len(results) == 0 {
		results = r.fallback(ctx, query, kbID, monitor)
	}

	monitor.Finish(results)
	return results, nil
}

// analyzeQuery runs the independent query understanding steps
// concurrently. None of them touch I/O or fail.
func (r *Retriever) analyzeQuery(query string) queryAnalysis {
	var analysis queryAnalysis

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		analysis.expanded = r.expander.Expand(r.expander.Preprocess(query))
	}()
	go func() {
		defer wg.Done()
		analysis.entities = r.entities.Extract(query)
	}()
	go func() {
		defer wg.Done()
		analysis.timeInfo = r.times.ExtractTimeInfo(query)
	}()
	go func() {
		defer wg.Done()
		analysis.keywords = r.keywords.TopKeywords(query, r.cfg.QueryKeywords)
	}()
	wg.Wait()

	analysis.personNames = analysis.entities[core.EntityPerson]
	analysis.personRelated = len(analysis.personNames) > 0 || r.entities.IsPersonRelated(query)

	// Person-related queries get biased toward biographical chunks.
	if analysis.personRelated {
		var extra []string
		extra = append(extra, analysis.personNames.Values()...)
		extra = append(extra, r.lex.PersonRelated.Values()...)
		analysis.expanded = analysis.expanded + " " + strings.Join(extra, " ")
	}
	return analysis
}

// scoreCandidates computes the component and final scores for every
// vector store match.
func (r *Retriever) scoreCandidates(query string, analysis queryAnalysis, matches []vectorstore.Match) []core.ScoredChunk {
	candidates := make([]core.ScoredChunk, 0, len(matches))
	for _, match := range matches {
		text := match.Chunk.Text

		scored := core.ScoredChunk{Chunk: match.Chunk}
		scored.Semantic = r.tfidf.Cosine(query, text)
		scored.Keyword = r.keywordScore(analysis.keywords, text)
		if analysis.personRelated {
			scored.Entity = personNameScore(analysis.personNames, text)
		}
		scored.Time = r.times.Relevance(analysis.timeInfo, r.times.ExtractTimeInfo(text))
		scored.Final = r.combine(scored)

		candidates = append(candidates, scored)
	}
	return candidates
}

// keywordScore is the fraction of query keywords that also rank among
// the chunk's top keywords. Zero when the query has no keywords.
func (r *Retriever) keywordScore(queryKeywords []string, text string) float64 {
	if len(queryKeywords) == 0 {
		return 0
	}
	chunkKeywords := core.NewStringSet(r.keywords.TopKeywords(text, r.cfg.ChunkKeywords)...)
	hits := 0
	for _, kw := range queryKeywords {
		if chunkKeywords.Has(kw) {
			hits++
		}
	}
	return float64(hits) / float64(len(queryKeywords))
}

// personNameScore is 1.0 when any query person name appears verbatim in
// the chunk, else 0.0.
func personNameScore(names core.StringSet, text string) float64 {
	for name := range names {
		if strings.Contains(text, name) {
			return 1.0
		}
	}
	return 0.0
}

// filterAndDedup applies the similarity threshold, orders by final score,
// drops near-duplicates (first-seen by score order wins), and truncates
// to the rerank budget.
func (r *Retriever) filterAndDedup(candidates []core.ScoredChunk) []core.ScoredChunk {
	kept := make([]core.ScoredChunk, 0, len(candidates))
	for _, c := range candidates {
		if c.Final >= r.cfg.SimilarityThreshold {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Final > kept[j].Final })

	results := make([]core.ScoredChunk, 0, r.cfg.RerankTopK)
	for _, c := range kept {
		duplicate := false
		for _, existing := range results {
			if r.tfidf.Cosine(c.Chunk.Text, existing.Chunk.Text) > r.cfg.DedupThreshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		results = append(results, c)
		if len(results) == r.cfg.RerankTopK {
			break
		}
	}
	return results
}

// fallback re-queries the store with only the most salient query
// keywords and a relaxed, store-native distance bound. Results keep the
// store's distance ordering; Final is derived from the distance so the
// ordering conventions still agree.
func (r *Retriever) fallback(ctx context.Context, query string, kbID int64, monitor RetrievalMonitor) []core.ScoredChunk {
	keywords := r.keywords.TopKeywords(query, r.cfg.FallbackQueryKeywords)
	if len(keywords) == 0 {
		return []core.ScoredChunk{}
	}
	monitor.FallbackTriggered(keywords)

	matches, err := r.store.SimilaritySearch(ctx, strings.Join(keywords, " "), r.cfg.FallbackK, kbID)
	if err != nil {
		r.logger.Error("fallback search failed", "kb_id", kbID, "err", err)
		return []core.ScoredChunk{}
	}

	results := make([]core.ScoredChunk, 0, r.cfg.FallbackLimit)
	for _, match := range matches {
		if match.Distance >= r.cfg.FallbackMaxDistance {
			continue
		}
		results = append(results, core.ScoredChunk{
			Chunk: match.Chunk,
			Final: core.Clamp01(1 - float64(match.Distance)/2),
		})
		if len(results) == r.cfg.FallbackLimit {
			break
		}
	}

	r.logger.Info("fallback retrieval",
		"kb_id", kbID,
		"keywords", keywords,
		"results", len(results),
	)
	return results
}
