package opensearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kailas-cloud/storeguard/internal/db"
)

const searchBody = `{"took":3,"hits":{"total":{"value":1,"relation":"eq"},"max_score":2.0,` +
	`"hits":[{"_id":"1","_score":2.0,"_source":{"title":"mouse"}}]}}`

// fakeCluster answers like an OpenSearch node. handler serves /articulos/_search.
func fakeCluster(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/articulos/_search" {
			handler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"version":{"number":"2.11.0","distribution":"opensearch"},"tagline":"The OpenSearch Project: https://opensearch.org/"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestSearcher(t *testing.T, url string) *Searcher {
	t.Helper()
	s, err := NewSearcher(Config{Addresses: []string{url}, Username: "admin", Password: "admin"})
	if err != nil {
		t.Fatalf("NewSearcher: %v", err)
	}
	return s
}

func TestNewSearcher_RequiresAddresses(t *testing.T) {
	if _, err := NewSearcher(Config{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSearch_SendsEscapedQueryAndPagination(t *testing.T) {
	var gotQuery, gotFrom, gotSize, gotUser string
	srv := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotFrom = r.URL.Query().Get("from")
		gotSize = r.URL.Query().Get("size")
		gotUser, _, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchBody))
	})
	s := newTestSearcher(t, srv.URL)

	res, err := s.Search(context.Background(), &db.SearchQuery{
		Index: "articulos", Query: `a\+b`, From: 20, Size: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != `a\+b` || gotFrom != "20" || gotSize != "10" {
		t.Errorf("unexpected params q=%q from=%q size=%q", gotQuery, gotFrom, gotSize)
	}
	if gotUser != "admin" {
		t.Errorf("basic auth user = %q", gotUser)
	}
	if res.Total != 1 || len(res.Hits) != 1 || res.Hits[0].ID != "1" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestSearch_AuthFailures(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		srv := fakeCluster(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"security_exception"}`))
		})
		s := newTestSearcher(t, srv.URL)

		_, err := s.Search(context.Background(), &db.SearchQuery{Index: "articulos", Query: "x", Size: 10})
		if !errors.Is(err, db.ErrBackendUnauthorized) {
			t.Errorf("status %d: expected ErrBackendUnauthorized, got %v", status, err)
		}
	}
}

func TestSearch_Timeout(t *testing.T) {
	srv := fakeCluster(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	s := newTestSearcher(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := s.Search(ctx, &db.SearchQuery{Index: "articulos", Query: "x", Size: 10})
	if !errors.Is(err, db.ErrBackendTimeout) {
		t.Fatalf("expected ErrBackendTimeout, got %v", err)
	}
}

func TestSearch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := newTestSearcher(t, url)
	_, err := s.Search(context.Background(), &db.SearchQuery{Index: "articulos", Query: "x", Size: 10})
	if !errors.Is(err, db.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}

func TestSearch_ServerError(t *testing.T) {
	srv := fakeCluster(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"query_shard_exception"}`))
	})
	s := newTestSearcher(t, srv.URL)

	_, err := s.Search(context.Background(), &db.SearchQuery{Index: "articulos", Query: "x", Size: 10})
	if !errors.Is(err, db.ErrBackendResponse) {
		t.Fatalf("expected ErrBackendResponse, got %v", err)
	}
}

func TestPing(t *testing.T) {
	srv := fakeCluster(t, func(http.ResponseWriter, *http.Request) {})
	s := newTestSearcher(t, srv.URL)

	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Driver() != Driver {
		t.Errorf("Driver() = %q", s.Driver())
	}
}
