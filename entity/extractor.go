package entity

import (
	"log/slog"
	"regexp"

	"github.com/lingxi-ai/retrieva/core"
	"github.com/lingxi-ai/retrieva/nlp"
)

// Time expression patterns matched into the time entity type, beyond what
// the part-of-speech tagger labels.
var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}年\d{1,2}月\d{1,2}日`),
	regexp.MustCompile(`\d{4}年\d{1,2}月`),
	regexp.MustCompile(`\d{4}年`),
	regexp.MustCompile(`第[一二三四五六七八九十]季度`),
	regexp.MustCompile(`[一二三四五六七八九十]+月份?`),
}

// Extractor classifies text spans into typed entities using the
// part-of-speech tagger, the position-title vocabulary, and a fixed set
// of time expression patterns.
type Extractor struct {
	tagger nlp.Tagger
	lex    *nlp.Lexicon
	logger *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
	}
}

// NewExtractor creates an entity extractor.
func NewExtractor(tagger nlp.Tagger, lex *nlp.Lexicon, opts ...Option) (*Extractor, error) {
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	if lex == nil {
		lex = nlp.DefaultLexicon()
	}
	e := &Extractor{
		tagger: tagger,
		lex:    lex,
		logger: slog.Default().With("component", "entity-extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract classifies the entities in text. Every entity type is present
// in the result; types with no matches map to an empty set. Extraction
// never fails: a token the tagger cannot classify contributes no entity,
// and pattern matching proceeds regardless.
func (e *Extractor) Extract(text string) core.EntitySet {
	entities := core.NewEntitySet()

	for _, word := range e.tagger.Tag(text) {
		switch word.Tag {
		case nlp.TagPersonName:
			entities.Add(core.EntityPerson, word.Text)
		case nlp.TagPlaceName:
			entities.Add(core.EntityLocation, word.Text)
		case nlp.TagOrganization:
			entities.Add(core.EntityOrganization, word.Text)
		case nlp.TagProperNoun:
			if e.lex.IsPositionTitle(word.Text) {
				entities.Add(core.EntityPosition, word.Text)
			}
		}
	}

	for _, pattern := range timePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			entities.Add(core.EntityTime, match)
		}
	}

	return entities
}

// PersonNames returns the person names found in text.
func (e *Extractor) PersonNames(text string) core.StringSet {
	names := make(core.StringSet)
	for _, word := range e.tagger.Tag(text) {
		if word.Tag != nlp.TagPersonName {
			continue
		}
		names.Add(word.Text)
	}
	return names
}

// IsPersonRelated reports whether the text mentions a person or uses the
// appointment/removal vocabulary.
func (e *Extractor) IsPersonRelated(text string) bool {
	for _, word := range e.tagger.Tag(text) {
		if word.Tag == nlp.TagPersonName {
			return true
		}
	}
	return containsAnyOf(text, e.lex.PersonRelated)
}
