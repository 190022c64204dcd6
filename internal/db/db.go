package db

import (
	"context"
	"time"
)

// Pinger checks backend connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides the key-value operations used by the search cache.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close()
}

// Searcher runs query-string searches against a full-text index.
type Searcher interface {
	Pinger
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
	Driver() string
}
