package insight

import (
	"context"

	"github.com/storelens/storelens/internal/domain"
)

// Catalog fetches the current product list from the storefront.
type Catalog interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Index defines the vector index contract for the resolution pipeline.
type Index interface {
	Upsert(ctx context.Context, vectors []domain.ProductVector) error
	Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// AnswerModel extracts an answer span from a passage.
type AnswerModel interface {
	Answer(ctx context.Context, question, passage string) (domain.AnswerResult, error)
}

// FallbackComposer builds the heuristic answer for low-confidence queries.
type FallbackComposer interface {
	Compose(query string, catalog []domain.Product, matches []domain.VectorMatch, answer string, score float64) *domain.Fallback
}
