package entity

import "errors"

var (
	// ErrTaggerRequired is returned when a part-of-speech tagger is not provided.
	ErrTaggerRequired = errors.New("tagger required")
)
