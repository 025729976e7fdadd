package expand

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/nlp"
)

// DefaultTopKeywords is the number of salience-ranked keywords considered
// for synonym expansion.
const DefaultTopKeywords = 5

var articlePattern = regexp.MustCompile(`第[一二三四五六七八九十百千万]+条|[0-9]+[.、]`)

// Expander widens a query with configured synonym groups so lexically
// different phrasings of the same request hit the same chunks.
type Expander struct {
	keywords    nlp.KeywordExtractor
	lex         *nlp.Lexicon
	topKeywords int
	logger      *slog.Logger
}

// Option configures an Expander.
type Option func(*Expander)

// WithTopKeywords sets how many keywords are extracted for expansion.
// Default is DefaultTopKeywords.
func WithTopKeywords(n int) Option {
	return func(e *Expander) {
		if n > 0 {
			e.topKeywords = n
		}
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Expander) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExpander creates a synonym query expander.
func NewExpander(keywords nlp.KeywordExtractor, lex *nlp.Lexicon, opts ...Option) (*Expander, error) {
	if keywords == nil {
		return nil, ErrKeywordExtractorRequired
	}
	if lex == nil {
		lex = nlp.DefaultLexicon()
	}
	e := &Expander{
		keywords:    keywords,
		lex:         lex,
		topKeywords: DefaultTopKeywords,
		logger:      slog.Default().With("component", "query-expander"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Expand returns the original query followed by its extracted keywords
// and their full synonym groups, space-joined and deduplicated. The
// result always contains the original query verbatim, and expanding an
// already-expanded query adds nothing new: synonym groups are transitive
// sets resolved in a single lookup, never chained.
func (e *Expander) Expand(query string) string {
	terms := e.expansionTerms(query)
	if len(terms) == 0 {
		return query
	}
	return query + " " + strings.Join(terms.Values(), " ")
}

// expansionTerms collects the keywords of the query plus the canonical
// term and every member of each keyword's synonym group.
func (e *Expander) expansionTerms(query string) core.StringSet {
	terms := make(core.StringSet)
	for _, keyword := range e.keywords.TopKeywords(query, e.topKeywords) {
		terms.Add(keyword)
		canonical, group, ok := e.lex.SynonymGroup(keyword)
		if !ok {
			continue
		}
		terms.Add(canonical)
		for _, member := range group {
			terms.Add(member)
		}
	}
	return terms
}

// Preprocess enriches a query for lexical search: article references
// (such as 第三条) are pulled to the front and the top keywords appended,
// mirroring how regulation text is cited.
func (e *Expander) Preprocess(query string) string {
	enhanced := query

	if articles := articlePattern.FindAllString(query, -1); len(articles) > 0 {
		enhanced = strings.Join(articles, " ") + " " + enhanced
	}
	if keywords := e.keywords.TopKeywords(query, e.topKeywords); len(keywords) > 0 {
		enhanced = enhanced + " " + strings.Join(keywords, " ")
	}
	return enhanced
}
