// Package insight implements the query resolution pipeline: exact title
// matching, per-query catalog re-indexing, KNN retrieval, extractive QA,
// and heuristic fallback for low-confidence answers.
package insight

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/storelens/storelens/internal/domain"
	"github.com/storelens/storelens/internal/metrics"
)

// Service resolves merchant queries against the live catalog.
type Service struct {
	catalog  Catalog
	embed    Embedder
	index    Index
	qa       AnswerModel
	fallback FallbackComposer
	dim      int
	topK     int
	logger   *zap.Logger
}

// New creates an insight service.
func New(catalog Catalog, embed Embedder, index Index, qa AnswerModel,
	fallback FallbackComposer, dim, topK int, logger *zap.Logger) *Service {
	return &Service{
		catalog:  catalog,
		embed:    embed,
		index:    index,
		qa:       qa,
		fallback: fallback,
		dim:      dim,
		topK:     topK,
		logger:   logger,
	}
}

// Resolve runs the full pipeline for one query. An empty query resolves
// immediately with no external calls and no side effects.
func (s *Service) Resolve(ctx context.Context, query string) (domain.QueryResult, error) {
	if query == "" {
		return domain.EmptyResult(), nil
	}

	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("list products: %w", err)
	}

	if matches := exactMatches(query, products); len(matches) > 0 {
		return domain.ExactResult(matches), nil
	}

	if err := s.reindex(ctx, products); err != nil {
		return domain.QueryResult{}, err
	}

	matches, err := s.retrieve(ctx, query)
	if err != nil {
		return domain.QueryResult{}, err
	}

	answer, err := s.qa.Answer(ctx, query, assembleContext(matches))
	if err != nil {
		return domain.QueryResult{}, fmt.Errorf("answer query: %w", err)
	}

	confidence := domain.ClassifyConfidence(answer.Score)
	metrics.QAConfidenceTotal.WithLabelValues(string(confidence)).Inc()

	s.logger.Debug("query resolved",
		zap.String("query", query),
		zap.Float64("score", answer.Score),
		zap.String("confidence", string(confidence)),
	)

	if confidence != domain.ConfidenceLow {
		return domain.InsightResult(domain.Insight{
			Answer:     answer.Answer,
			Score:      answer.Score,
			Confidence: confidence,
		}), nil
	}

	fb := s.fallback.Compose(query, products, matches, answer.Answer, answer.Score)
	return domain.FallbackResult(*fb), nil
}

// exactMatches collects products whose title equals the query
// case-insensitively and whose inventory is zero.
func exactMatches(query string, products []domain.Product) []domain.ExactMatch {
	var out []domain.ExactMatch
	for _, p := range products {
		if strings.EqualFold(p.Title, query) && p.InventoryQuantity == 0 {
			out = append(out, domain.ExactMatch{
				Title:             p.Title,
				Availability:      p.Availability(),
				InventoryQuantity: p.InventoryQuantity,
				Price:             p.Price,
			})
		}
	}
	return out
}

// reindex embeds every catalog product and upserts the full set. The index
// is rebuilt on each query; re-upserting an id overwrites its prior state.
func (s *Service) reindex(ctx context.Context, products []domain.Product) error {
	vectors := make([]domain.ProductVector, 0, len(products))
	for _, p := range products {
		emb, err := s.embed.Embed(ctx, p.EmbeddingText())
		if err != nil {
			return fmt.Errorf("vectorize product %s: %w", p.ID, err)
		}
		if len(emb.Embedding) != s.dim {
			return fmt.Errorf("product %s: got %d dimensions, want %d: %w",
				p.ID, len(emb.Embedding), s.dim, domain.ErrVectorDimMismatch)
		}
		vectors = append(vectors, domain.ProductVector{
			ID:                p.ID,
			Values:            emb.Embedding,
			Text:              p.MetadataText(),
			InventoryQuantity: p.InventoryQuantity,
			Price:             p.Price,
		})
	}

	if err := s.index.Upsert(ctx, vectors); err != nil {
		return fmt.Errorf("upsert vectors: %w", err)
	}
	return nil
}

// retrieve embeds the query as a pseudo-product and fetches the nearest
// product vectors.
func (s *Service) retrieve(ctx context.Context, query string) ([]domain.VectorMatch, error) {
	emb, err := s.embed.Embed(ctx, domain.QueryEmbeddingText(query))
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	matches, err := s.index.Query(ctx, emb.Embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return matches, nil
}

// assembleContext joins match metadata texts into the QA passage.
func assembleContext(matches []domain.VectorMatch) string {
	if len(matches) == 0 {
		return "No relevant data found"
	}
	texts := make([]string, len(matches))
	for i, m := range matches {
		texts[i] = m.Text
	}
	return strings.Join(texts, " ")
}
