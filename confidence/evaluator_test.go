package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/lexical"
	"github.com/lingxi-ai/retrieva/nlp"
	"github.com/lingxi-ai/retrieva/nlp/mock"
)

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	analyzer := mock.NewAnalyzer(nlp.DefaultLexicon())
	analyzer.AddPerson("王明")
	analyzer.AddWord("站长", "nz")
	analyzer.AddWord("天气", "n")

	tfidf, err := lexical.NewTFIDF(analyzer)
	require.NoError(t, err)

	evaluator, err := NewEvaluator(tfidf)
	require.NoError(t, err)
	return evaluator
}

func scored(text string, final float64) core.ScoredChunk {
	return core.ScoredChunk{
		Chunk: core.Chunk{Text: text, KBID: 7},
		Final: final,
	}
}

func TestNewEvaluatorValidation(t *testing.T) {
	_, err := NewEvaluator(nil)
	assert.Equal(t, ErrSimilarityRequired, err)
}

func TestEvaluateNoChunks(t *testing.T) {
	evaluator := newEvaluator(t)

	level, score := evaluator.Evaluate(nil, "任何答案", 5)
	assert.Equal(t, core.ConfidenceLow, level)
	assert.Zero(t, score)
}

func TestEvaluateHighConfidence(t *testing.T) {
	evaluator := newEvaluator(t)

	// Full budget, perfect scores, answer lexically identical to sources.
	chunks := []core.ScoredChunk{
		scored("王明是站长", 1.0),
		scored("王明是站长", 1.0),
		scored("王明是站长", 1.0),
		scored("王明是站长", 1.0),
		scored("王明是站长", 1.0),
	}

	level, score := evaluator.Evaluate(chunks, "王明是站长", 5)
	assert.Equal(t, core.ConfidenceHigh, level)
	assert.Greater(t, score, 0.8)
}

func TestEvaluateLowConfidence(t *testing.T) {
	evaluator := newEvaluator(t)

	// One weak chunk out of five, answer unrelated to the source.
	chunks := []core.ScoredChunk{scored("王明是站长", 0.3)}

	level, score := evaluator.Evaluate(chunks, "天气", 5)
	assert.Equal(t, core.ConfidenceLow, level)
	assert.LessOrEqual(t, score, 0.5)
}

func TestEvaluateMediumConfidence(t *testing.T) {
	evaluator := newEvaluator(t)

	// Strong scores and support but only partial budget coverage.
	chunks := []core.ScoredChunk{
		scored("王明是站长", 0.9),
		scored("王明是站长", 0.9),
	}

	level, score := evaluator.Evaluate(chunks, "王明是站长", 5)
	assert.Equal(t, core.ConfidenceMedium, level)
	assert.Greater(t, score, 0.5)
	assert.LessOrEqual(t, score, 0.8)
}

func TestEvaluateCoverageCapped(t *testing.T) {
	evaluator := newEvaluator(t)

	// More chunks than budget must not push coverage above one.
	chunks := []core.ScoredChunk{
		scored("王明是站长", 1.0),
		scored("王明是站长", 1.0),
		scored("王明是站长", 1.0),
	}

	_, withBudget := evaluator.Evaluate(chunks, "王明是站长", 2)
	assert.LessOrEqual(t, withBudget, 1.0)

	// Non-positive budget falls back to the chunk count.
	level, _ := evaluator.Evaluate(chunks, "王明是站长", 0)
	assert.Equal(t, core.ConfidenceHigh, level)
}
