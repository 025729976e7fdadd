package confidence

import (
	"errors"
	"log/slog"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/lexical"
)

// Thresholds on the combined confidence score.
const (
	highThreshold   = 0.8
	mediumThreshold = 0.5
)

// ErrSimilarityRequired indicates the evaluator was built without a
// similarity scorer.
var ErrSimilarityRequired = errors.New("similarity scorer is required")

// Evaluator rates how much an answer built from retrieved chunks can be
// trusted. The combined score averages three signals: how well the
// chunks scored during retrieval, how lexically close the answer stays
// to its sources, and whether retrieval filled its budget.
type Evaluator struct {
	tfidf  *lexical.TFIDF
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(tfidf *lexical.TFIDF, opts ...Option) (*Evaluator, error) {
	if tfidf == nil {
		return nil, ErrSimilarityRequired
	}

	e := &Evaluator{
		tfidf:  tfidf,
		logger: slog.Default().With("component", "confidence"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate returns the confidence level and the combined score for an
// answer built from the given chunks. rerankTopK is the retrieval budget
// the chunks were truncated to. No chunks always means low confidence.
func (e *Evaluator) Evaluate(chunks []core.ScoredChunk, answer string, rerankTopK int) (core.Confidence, float64) {
	if len(chunks) == 0 {
		return core.ConfidenceLow, 0
	}
	if rerankTopK <= 0 {
		rerankTopK = len(chunks)
	}

	var scoreSum, supportSum float64
	for _, chunk := range chunks {
		scoreSum += chunk.Final
		supportSum += e.tfidf.Cosine(answer, chunk.Chunk.Text)
	}
	meanScore := scoreSum / float64(len(chunks))
	meanSupport := supportSum / float64(len(chunks))

	coverage := float64(len(chunks)) / float64(rerankTopK)
	if coverage > 1 {
		coverage = 1
	}

	combined := (meanScore + meanSupport + coverage) / 3

	level := core.ConfidenceLow
	switch {
	case combined > highThreshold:
		level = core.ConfidenceHigh
	case combined > mediumThreshold:
		level = core.ConfidenceMedium
	}

	e.logger.Debug("evaluated confidence",
		"level", level.String(),
		"combined", combined,
		"mean_score", meanScore,
		"mean_support", meanSupport,
		"coverage", coverage,
	)
	return level, combined
}
