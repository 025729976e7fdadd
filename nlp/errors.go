package nlp

import "errors"

var (
	// ErrLexiconLoad is returned when a lexicon file cannot be read or parsed.
	ErrLexiconLoad = errors.New("lexicon load failed")
)
