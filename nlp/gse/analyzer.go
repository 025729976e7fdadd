package gse

import (
	"log/slog"
	"strings"

	"github.com/go-ego/gse"
	"github.com/go-ego/gse/hmm/extracker"

	"github.com/lingxi-ai/retrieva/nlp"
)

// Analyzer implements nlp.Tagger and nlp.KeywordExtractor on top of the
// gse segmentation toolkit. The segmenter dictionary is loaded once at
// construction; afterwards the analyzer is safe for concurrent use.
type Analyzer struct {
	seg    gse.Segmenter
	tagger extracker.TagExtracter
	lex    *nlp.Lexicon
	logger *slog.Logger
}

var (
	_ nlp.Tagger           = (*Analyzer)(nil)
	_ nlp.KeywordExtractor = (*Analyzer)(nil)
)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// NewAnalyzer creates an analyzer with the embedded Chinese dictionary and
// registers the lexicon's custom words with the segmenter.
func NewAnalyzer(lex *nlp.Lexicon, opts ...Option) (*Analyzer, error) {
	if lex == nil {
		lex = nlp.DefaultLexicon()
	}

	a := &Analyzer{
		lex:    lex,
		logger: slog.Default().With("component", "gse-analyzer"),
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := a.seg.LoadDict(); err != nil {
		return nil, err
	}

	for _, word := range lex.CustomWords {
		if err := a.seg.AddToken(word, 100, nlp.TagProperNoun); err != nil {
			a.logger.Warn("failed to register custom word", "word", word, "err", err)
		}
	}

	a.tagger.WithGse(a.seg)
	if err := a.tagger.LoadIdf(); err != nil {
		return nil, err
	}

	return a, nil
}

// Tag splits text into (token, part-of-speech) pairs. Whitespace-only
// tokens are dropped; tokens the dictionary cannot classify keep whatever
// tag the segmenter assigned, which may be empty.
func (a *Analyzer) Tag(text string) []nlp.TaggedWord {
	segs := a.seg.Pos(text, true)
	words := make([]nlp.TaggedWord, 0, len(segs))
	for _, s := range segs {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		words = append(words, nlp.TaggedWord{Text: s.Text, Tag: s.Pos})
	}
	return words
}

// TopKeywords returns up to n keywords ranked by TF-IDF salience,
// with stopwords removed.
func (a *Analyzer) TopKeywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	segs := a.tagger.ExtractTags(text, n)
	keywords := make([]string, 0, len(segs))
	for _, s := range segs {
		kw := s.Text
		if kw == "" || a.lex.IsStopword(kw) {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords
}
