package retrieve

import "fmt"

// ScoringPolicy selects how component scores combine into a final score.
type ScoringPolicy string

const (
	// ScoringMean averages semantic, keyword, and entity scores.
	ScoringMean ScoringPolicy = "mean"

	// ScoringWeighted applies the configured weights to all four
	// component scores.
	ScoringWeighted ScoringPolicy = "weighted"
)

// ScoreWeights are the component weights used by ScoringWeighted.
type ScoreWeights struct {
	Semantic float64
	Keyword  float64
	Entity   float64
	Time     float64
}

// Config holds the retrieval tunables. SimilarityThreshold and
// DedupThreshold operate on [0,1] similarity scores; FallbackMaxDistance
// operates on the store-native distance where lower is better. The two
// scales are not interchangeable.
type Config struct {
	// TopKChunks is the primary vector store candidate pool size.
	TopKChunks int

	// RerankTopK caps the number of returned chunks.
	RerankTopK int

	// SimilarityThreshold is the minimum final score a candidate needs
	// to survive filtering.
	SimilarityThreshold float64

	// DedupThreshold drops a candidate whose TF-IDF cosine similarity
	// to an already-kept candidate exceeds it.
	DedupThreshold float64

	// FallbackK is the candidate pool size for fallback retrieval.
	FallbackK int

	// FallbackMaxDistance is the store-native distance bound accepted
	// during fallback.
	FallbackMaxDistance float32

	// FallbackLimit caps the number of fallback results.
	FallbackLimit int

	// QueryKeywords is how many keywords to extract from the query.
	QueryKeywords int

	// ChunkKeywords is how many keywords to extract from each chunk.
	ChunkKeywords int

	// FallbackQueryKeywords is how many query keywords form the
	// fallback query.
	FallbackQueryKeywords int

	// Scoring selects the score combination policy.
	Scoring ScoringPolicy

	// Weights are used when Scoring is ScoringWeighted.
	Weights ScoreWeights
}

// DefaultConfig returns the standard retrieval configuration.
func DefaultConfig() Config {
	return Config{
		TopKChunks:            10,
		RerankTopK:            5,
		SimilarityThreshold:   0.3,
		DedupThreshold:        0.7,
		FallbackK:             30,
		FallbackMaxDistance:   2.0,
		FallbackLimit:         5,
		QueryKeywords:         10,
		ChunkKeywords:         20,
		FallbackQueryKeywords: 3,
		Scoring:               ScoringMean,
		Weights: ScoreWeights{
			Semantic: 0.4,
			Keyword:  0.4,
			Entity:   0.1,
			Time:     0.1,
		},
	}
}

// Validate checks the configuration for caller errors.
func (c Config) Validate() error {
	if c.TopKChunks <= 0 {
		return fmt.Errorf("%w: TopKChunks must be positive", ErrInvalidConfig)
	}
	if c.RerankTopK <= 0 {
		return fmt.Errorf("%w: RerankTopK must be positive", ErrInvalidConfig)
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: SimilarityThreshold must be in [0,1]", ErrInvalidConfig)
	}
	if c.DedupThreshold < 0 || c.DedupThreshold > 1 {
		return fmt.Errorf("%w: DedupThreshold must be in [0,1]", ErrInvalidConfig)
	}
	if c.FallbackK <= 0 || c.FallbackLimit <= 0 || c.FallbackQueryKeywords <= 0 {
		return fmt.Errorf("%w: fallback parameters must be positive", ErrInvalidConfig)
	}
	if c.FallbackMaxDistance <= 0 {
		return fmt.Errorf("%w: FallbackMaxDistance must be positive", ErrInvalidConfig)
	}
	if c.QueryKeywords <= 0 || c.ChunkKeywords <= 0 {
		return fmt.Errorf("%w: keyword counts must be positive", ErrInvalidConfig)
	}
	switch c.Scoring {
	case ScoringMean, ScoringWeighted:
	default:
		return fmt.Errorf("%w: unknown scoring policy %q", ErrInvalidConfig, c.Scoring)
	}
	return nil
}
