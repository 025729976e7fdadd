package mock

import (
	"context"
	"hash/fnv"
	"math"
	"sync"

	"github.com/lingxi-ai/retrieva/ai"
)

// Dimensions is the size of vectors produced by the mock embedder.
const Dimensions = 384

// Embedder is a deterministic test double for ai.Embedder. Identical
// input text always yields the identical unit vector, so similarity
// comparisons in tests are stable across runs.
type Embedder struct {
	mu        sync.Mutex
	callCount int

	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

// NewEmbedder creates a deterministic mock embedder.
func NewEmbedder() *Embedder {
	return &Embedder{}
}

// EmbedText returns a deterministic unit vector derived from the text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.callCount++
	override := e.EmbedTextFunc
	e.mu.Unlock()

	if override != nil {
		return override(ctx, text)
	}
	return deterministicVector(text), nil
}

// EmbedTexts returns deterministic unit vectors for each text, in order.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.callCount++
	override := e.EmbedTextsFunc
	e.mu.Unlock()

	if override != nil {
		return override(ctx, texts)
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = deterministicVector(text)
	}
	return vectors, nil
}

// CallCount returns how many embed calls have been made.
func (e *Embedder) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.callCount
}

// deterministicVector derives an L2-normalized vector from the FNV hash
// of the text, expanded by a small linear congruential generator.
func deterministicVector(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()

	vector := make([]float32, Dimensions)
	var sumSquares float64
	for i := range vector {
		state = state*6364136223846793005 + 1442695040888963407
		// Map the top bits onto [-1, 1).
		v := float64(int64(state>>11))/float64(1<<52) - 1
		vector[i] = float32(v)
		sumSquares += v * v
	}

	norm := math.Sqrt(sumSquares)
	if norm == 0 {
		vector[0] = 1
		return vector
	}
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
	return vector
}

var _ ai.Embedder = (*Embedder)(nil)
