package retrieve

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lingxi-ai/retrieva/ai"
)

const hydePromptFormat = "请针对下面的问题写一段简短的假设性回答，仅依据问题本身作答，不要添加任何前缀说明。\n\n问题：%s"

// HyDE rewrites a query by appending a generated hypothetical answer
// (Hypothetical Document Embeddings), which often lands closer to
// relevant chunks in embedding space than the bare question. Generation
// failures degrade to the original query.
type HyDE struct {
	generator ai.Generator
	logger    *slog.Logger
}

// HyDEOption configures a HyDE rewriter.
type HyDEOption func(*HyDE)

// WithHyDELogger sets the logger.
func WithHyDELogger(logger *slog.Logger) HyDEOption {
	return func(h *HyDE) {
		h.logger = logger
	}
}

// NewHyDE creates a HyDE query rewriter.
func NewHyDE(generator ai.Generator, opts ...HyDEOption) (*HyDE, error) {
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	h := &HyDE{
		generator: generator,
		logger:    slog.Default().With("component", "hyde"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Rewrite returns the query concatenated with a hypothetical answer.
// On generation failure the original query is returned unchanged.
func (h *HyDE) Rewrite(ctx context.Context, query string) string {
	answer, err := h.generator.Generate(ctx, fmt.Sprintf(hydePromptFormat, query))
	if err != nil {
		h.logger.Warn("hypothetical answer generation failed", "err", err)
		return query
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return query
	}
	return query + "\n" + answer
}
