package search

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrCollectionRequired is returned when a collection is not provided.
	ErrCollectionRequired = errors.New("collection required")

	// ErrEmptyQuery is returned when the query text is empty after
	// whitespace trimming.
	ErrEmptyQuery = errors.New("query text cannot be empty")
)
