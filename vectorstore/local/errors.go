package local

import "errors"

var (
	// ErrEmbedderRequired indicates the store was built without an embedder.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrRepositoryRequired indicates the store was built without a repository.
	ErrRepositoryRequired = errors.New("chunk repository is required")
)
