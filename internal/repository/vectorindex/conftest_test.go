package vectorindex

import (
	"context"
	"testing"

	"github.com/storelens/storelens/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	searchKNNFn   func(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)

	upserted [][]db.HashSetItem
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	m.upserted = append(m.upserted, items)
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	if m.searchKNNFn != nil {
		return m.searchKNNFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "storelens:", 4), ms
}

// knnResult builds a search result the way a real server answers a RETURN
// clause: the distance is only available when __vector_score is among the
// requested fields, otherwise entries come back without a score.
func knnResult(q *db.KNNQuery, entries ...db.SearchEntry) *db.SearchResult {
	scored := false
	for _, f := range q.ReturnFields {
		if f == "__vector_score" {
			scored = true
		}
	}
	if !scored {
		for i := range entries {
			entries[i].Score = 0
		}
	}
	return &db.SearchResult{Total: len(entries), Entries: entries}
}
