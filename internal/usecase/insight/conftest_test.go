package insight

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/storelens/storelens/internal/domain"
)

type mockCatalog struct {
	products []domain.Product
	err      error
	calls    int
}

func (m *mockCatalog) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.calls++
	return m.products, m.err
}

type mockEmbedder struct {
	vector []float32
	err    error
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vector, TotalTokens: 5}, nil
}

type mockIndex struct {
	upserted  []domain.ProductVector
	matches   []domain.VectorMatch
	upsertErr error
	queryErr  error
	queries   int
}

func (m *mockIndex) Upsert(_ context.Context, vectors []domain.ProductVector) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, vectors...)
	return nil
}

func (m *mockIndex) Query(_ context.Context, _ []float32, _ int) ([]domain.VectorMatch, error) {
	m.queries++
	return m.matches, m.queryErr
}

type mockQA struct {
	result   domain.AnswerResult
	err      error
	question string
	passage  string
}

func (m *mockQA) Answer(_ context.Context, question, passage string) (domain.AnswerResult, error) {
	m.question = question
	m.passage = passage
	return m.result, m.err
}

type mockFallback struct {
	fb     *domain.Fallback
	query  string
	answer string
	score  float64
	calls  int
}

func (m *mockFallback) Compose(query string, _ []domain.Product, _ []domain.VectorMatch, answer string, score float64) *domain.Fallback {
	m.calls++
	m.query = query
	m.answer = answer
	m.score = score
	if m.fb != nil {
		return m.fb
	}
	return &domain.Fallback{Message: "fallback", RelatedProducts: []any{}}
}

type fixture struct {
	catalog  *mockCatalog
	embedder *mockEmbedder
	index    *mockIndex
	qa       *mockQA
	fallback *mockFallback
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		catalog:  &mockCatalog{},
		embedder: &mockEmbedder{vector: []float32{0.1, 0.2, 0.3, 0.4}},
		index:    &mockIndex{},
		qa:       &mockQA{},
		fallback: &mockFallback{},
	}
	f.svc = New(f.catalog, f.embedder, f.index, f.qa, f.fallback, 4, 10, zap.NewNop())
	return f
}
