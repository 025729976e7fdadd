package dialogue

import "errors"

// ErrExtractorRequired indicates the manager was built without an entity extractor.
var ErrExtractorRequired = errors.New("entity extractor is required")
