package retrieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingxi-ai/retrieva/core"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero top k", func(c *Config) { c.TopKChunks = 0 }},
		{"zero rerank", func(c *Config) { c.RerankTopK = 0 }},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }},
		{"negative dedup", func(c *Config) { c.DedupThreshold = -0.1 }},
		{"zero fallback pool", func(c *Config) { c.FallbackK = 0 }},
		{"zero fallback distance", func(c *Config) { c.FallbackMaxDistance = 0 }},
		{"zero keywords", func(c *Config) { c.QueryKeywords = 0 }},
		{"unknown policy", func(c *Config) { c.Scoring = "votes" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestCombineMean(t *testing.T) {
	retriever := newTestRetriever(t, &fakeStore{}, newTestAnalyzer(t))

	final := retriever.combine(core.ScoredChunk{
		Semantic: 0.6,
		Keyword:  0.3,
		Entity:   0.9,
		Time:     1.0, // ignored by the mean policy
	})
	assert.InDelta(t, 0.6, final, 1e-9)
}

func TestCombineWeighted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring = ScoringWeighted
	retriever := newTestRetriever(t, &fakeStore{}, newTestAnalyzer(t), WithConfig(cfg))

	final := retriever.combine(core.ScoredChunk{
		Semantic: 0.5,
		Keyword:  0.5,
		Entity:   1.0,
		Time:     1.0,
	})
	assert.InDelta(t, 0.4*0.5+0.4*0.5+0.1+0.1, final, 1e-9)
}

func TestCombineClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring = ScoringWeighted
	cfg.Weights = ScoreWeights{Semantic: 1, Keyword: 1, Entity: 1, Time: 1}
	retriever := newTestRetriever(t, &fakeStore{}, newTestAnalyzer(t), WithConfig(cfg))

	final := retriever.combine(core.ScoredChunk{Semantic: 1, Keyword: 1, Entity: 1, Time: 1})
	assert.Equal(t, 1.0, final)
}

func TestWithConfigRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RerankTopK = -1

	retriever := newTestRetriever(t, &fakeStore{}, newTestAnalyzer(t))
	require.NotNil(t, retriever)

	err := WithConfig(cfg)(retriever)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
