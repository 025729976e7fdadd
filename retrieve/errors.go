package retrieve

import "errors"

var (
	// ErrStoreRequired indicates the retriever was built without a vector store.
	ErrStoreRequired = errors.New("vector store is required")

	// ErrExpanderRequired indicates the retriever was built without a query expander.
	ErrExpanderRequired = errors.New("query expander is required")

	// ErrExtractorRequired indicates the retriever was built without an entity extractor.
	ErrExtractorRequired = errors.New("entity extractor is required")

	// ErrTimeManagerRequired indicates the retriever was built without a time manager.
	ErrTimeManagerRequired = errors.New("time manager is required")

	// ErrSimilarityRequired indicates the retriever was built without a TF-IDF scorer.
	ErrSimilarityRequired = errors.New("similarity scorer is required")

	// ErrKeywordsRequired indicates the retriever was built without a keyword extractor.
	ErrKeywordsRequired = errors.New("keyword extractor is required")

	// ErrGeneratorRequired indicates the optimizer was built without a generator.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrInvalidConfig indicates a configuration value is out of range.
	ErrInvalidConfig = errors.New("invalid retrieval config")
)
