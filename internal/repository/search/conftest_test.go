package search

import (
	"context"
	"testing"

	"github.com/kailas-cloud/storeguard/internal/db"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "articulos")
	return repo, ms
}

func mustQuery(t *testing.T, raw string, number, size int) query.Query {
	t.Helper()
	pg, err := page.New(number, size, query.DefaultLimits())
	if err != nil {
		t.Fatalf("page.New: %v", err)
	}
	q, err := query.New(raw, pg)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}
