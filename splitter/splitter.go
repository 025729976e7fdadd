package splitter

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/lingxi-ai/retrieva/core"
)

// Defaults tuned for Chinese regulatory and knowledge-base documents.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// chineseSeparators split on structure first, then on Chinese sentence
// punctuation, so chunks end at sentence boundaries whenever possible.
var chineseSeparators = []string{"\n\n", "\n", "。", "！", "？", "；", "，", ""}

// Splitter cuts documents into retrieval-sized chunks.
type Splitter struct {
	inner        textsplitter.RecursiveCharacter
	chunkSize    int
	chunkOverlap int
}

// Option configures a Splitter.
type Option func(*Splitter)

// WithChunkSize sets the target chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithChunkOverlap sets the overlap between consecutive chunks.
func WithChunkOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.chunkOverlap = overlap
	}
}

// New creates a Splitter with Chinese-aware separators.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.inner = textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(s.chunkSize),
		textsplitter.WithChunkOverlap(s.chunkOverlap),
		textsplitter.WithSeparators(chineseSeparators),
	)
	return s
}

// Split cuts a text into chunk strings. Blank lines are removed before
// splitting and empty fragments are dropped.
func (s *Splitter) Split(text string) ([]string, error) {
	cleaned := removeBlankLines(text)
	if cleaned == "" {
		return nil, nil
	}

	parts, err := s.inner.SplitText(cleaned)
	if err != nil {
		return nil, fmt.Errorf("splitting text: %w", err)
	}

	chunks := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			chunks = append(chunks, part)
		}
	}
	return chunks, nil
}

// SplitDocument cuts a document into chunks scoped to a knowledge base,
// preserving source and position.
func (s *Splitter) SplitDocument(text, source string, kbID int64) ([]core.Chunk, error) {
	parts, err := s.Split(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]core.Chunk, len(parts))
	for i, part := range parts {
		chunks[i] = core.Chunk{
			ID:         core.IDFromContent(part),
			Text:       part,
			KBID:       kbID,
			Source:     source,
			ChunkIndex: i,
		}
	}
	return chunks, nil
}

func removeBlankLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
