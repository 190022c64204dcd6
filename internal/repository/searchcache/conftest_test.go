package searchcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storeguard/internal/db"
	"github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
)

type mockSearcher struct {
	result article.Result
	err    error
	calls  int
}

func (m *mockSearcher) Search(_ context.Context, _ query.Query) (article.Result, error) {
	m.calls++
	return m.result, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn        func(ctx context.Context, key string) ([]byte, error)
	setWithTTLFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setWithTTLFn != nil {
		return m.setWithTTLFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSearcher(t *testing.T, inner *mockSearcher) (*CachedSearcher, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, "articulos", time.Minute, nil, zap.NewNop())
	return cs, ms
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
