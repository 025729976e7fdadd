package expand

import "errors"

var (
	// ErrKeywordExtractorRequired is returned when a keyword extractor is not provided.
	ErrKeywordExtractorRequired = errors.New("keyword extractor required")
)
