package lexical

import "errors"

var (
	// ErrTaggerRequired is returned when a tokenizer is not provided.
	ErrTaggerRequired = errors.New("tagger required")
)
