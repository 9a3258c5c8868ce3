package vectorindex

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/storelens/storelens/internal/db"
	"github.com/storelens/storelens/internal/domain"
)

// store is the consumer interface for the product vector index (ISP).
type store interface {
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo stores product embeddings as Redis hashes under a common prefix
// and searches them via FT.SEARCH KNN.
type Repo struct {
	store     store
	keyPrefix string
	dim       int
}

// New creates a product vector index repository.
func New(s store, keyPrefix string, dim int) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, dim: dim}
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "products:idx"
}

func (r *Repo) docPrefix() string {
	return r.keyPrefix + "products:"
}

// EnsureIndex provisions the FLAT/L2 index. One-time setup step:
// an already existing index is left untouched.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName(), err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(r.indexName()).
		Prefix(r.docPrefix()).
		Text("text").
		Numeric("inventory_quantity").
		Numeric("price").
		VectorFlat("vector", r.dim, db.DistanceL2).
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// Upsert writes product vectors keyed by product id in a single
// pipelined round-trip. Re-upserting an id overwrites its prior
// vector and metadata.
func (r *Repo) Upsert(ctx context.Context, vectors []domain.ProductVector) error {
	if len(vectors) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(vectors))
	for i, v := range vectors {
		items[i] = db.HashSetItem{
			Key: r.docPrefix() + v.ID,
			Fields: map[string]string{
				"vector":             vectorToBytes(v.Values),
				"text":               v.Text,
				"inventory_quantity": strconv.Itoa(v.InventoryQuantity),
				"price":              strconv.FormatFloat(v.Price, 'f', -1, 64),
			},
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d product vectors: %w", len(vectors), err)
	}
	return nil
}

// Query returns the topK nearest product vectors with their metadata,
// ordered by ascending distance.
func (r *Repo) Query(ctx context.Context, vector []float32, topK int) ([]domain.VectorMatch, error) {
	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		K:            topK,
		ReturnFields: []string{"text", "inventory_quantity", "price", "__vector_score"},
	})
	if err != nil {
		return nil, fmt.Errorf("search knn %s: %w", r.indexName(), err)
	}

	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	matches := make([]domain.VectorMatch, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		m := domain.VectorMatch{
			ID:    strings.TrimPrefix(entry.Key, r.docPrefix()),
			Score: entry.Score,
			Text:  entry.Fields["text"],
		}
		if qty, err := strconv.Atoi(entry.Fields["inventory_quantity"]); err == nil {
			m.InventoryQuantity = qty
		}
		if price, err := strconv.ParseFloat(entry.Fields["price"], 64); err == nil {
			m.Price = price
		}
		matches = append(matches, m)
	}

	return matches, nil
}

// vectorToBytes serializes []float32 to a little-endian binary string.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
