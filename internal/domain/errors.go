package domain

import "errors"

var (
	// ErrCatalogUnavailable signals a storefront catalog fetch failure.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAnswerModelError signals a QA model failure.
	ErrAnswerModelError = errors.New("answer model error")
	// ErrVectorDimMismatch signals a vector whose length differs from
	// the dimension the index was provisioned with.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
