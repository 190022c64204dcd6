// Package elastic implements db.Searcher over Elasticsearch 8.
package elastic

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/kailas-cloud/storeguard/internal/db"
)

// Driver is the config name of this backend.
const Driver = "elasticsearch"

// Compile-time check: Searcher implements db.Searcher.
var _ db.Searcher = (*Searcher)(nil)

// Config holds connection parameters for an Elasticsearch cluster.
type Config struct {
	Addresses []string
	Username  string
	Password  string
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
}

// Searcher wraps the Elasticsearch client.
type Searcher struct {
	client *elasticsearch.Client
}

// NewSearcher creates a client. Retries are disabled: callers decide whether to retry.
func NewSearcher(cfg Config) (*Searcher, error) {
	if len(cfg.Addresses) == 0 {
		return nil, fmt.Errorf("addresses is required")
	}

	esCfg := elasticsearch.Config{
		Addresses:    cfg.Addresses,
		DisableRetry: true,
		Transport:    cfg.Transport,
	}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}

	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &Searcher{client: es}, nil
}

// Driver returns the backend name.
func (s *Searcher) Driver() string { return Driver }

// Ping tests the cluster connection.
func (s *Searcher) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return db.ClassifyTransportError(db.OpPing, err)
	}
	defer res.Body.Close()

	return db.ClassifyStatus(db.OpPing, res.StatusCode, res.Status())
}

// Search runs a query-string search with from/size pagination.
func (s *Searcher) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(q.Index),
		s.client.Search.WithQuery(q.Query),
		s.client.Search.WithFrom(q.From),
		s.client.Search.WithSize(q.Size),
	)
	if err != nil {
		return nil, db.ClassifyTransportError(db.OpSearch, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, db.ClassifyStatus(db.OpSearch, res.StatusCode, string(body))
	}
	return db.DecodeSearchResponse(res.Body)
}
