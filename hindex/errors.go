package hindex

import "errors"

var (
	// ErrEmbedderRequired indicates the indexer was built without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrGeneratorRequired indicates the indexer was built without a generator.
	ErrGeneratorRequired = errors.New("generator is required")

	// ErrNoChunks indicates a document with no chunk texts was submitted.
	ErrNoChunks = errors.New("document has no chunks")
)
