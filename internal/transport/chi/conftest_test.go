package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	domarticle "github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/credential"
	domorder "github.com/kailas-cloud/storeguard/internal/domain/order"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
	domuser "github.com/kailas-cloud/storeguard/internal/domain/user"
	articleuc "github.com/kailas-cloud/storeguard/internal/usecase/article"
	authuc "github.com/kailas-cloud/storeguard/internal/usecase/auth"
	healthuc "github.com/kailas-cloud/storeguard/internal/usecase/health"
	orderuc "github.com/kailas-cloud/storeguard/internal/usecase/order"
)

const (
	testUser   = "api"
	testSecret = "s3cret"
)

// --- mocks ---

type mockUserRepo struct {
	user  domuser.User
	err   error
	calls int
}

func (m *mockUserRepo) FindByCredentials(_ context.Context, _, _ string) (domuser.User, error) {
	m.calls++
	return m.user, m.err
}

type mockOrderRepo struct {
	orders   []domorder.Order
	total    int64
	err      error
	inserted []domorder.Order
	offset   int
	limit    int
}

func (m *mockOrderRepo) Insert(_ context.Context, o domorder.Order) (domorder.Order, error) {
	if m.err != nil {
		return domorder.Order{}, m.err
	}
	m.inserted = append(m.inserted, o)
	return o.WithID("ord-1", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)), nil
}

func (m *mockOrderRepo) List(_ context.Context, offset, limit int) ([]domorder.Order, error) {
	m.offset, m.limit = offset, limit
	return m.orders, m.err
}

func (m *mockOrderRepo) Count(_ context.Context) (int64, error) {
	return m.total, m.err
}

type mockArticleRepo struct {
	result domarticle.Result
	err    error
	calls  int
	last   query.Query
}

func (m *mockArticleRepo) Search(_ context.Context, q query.Query) (domarticle.Result, error) {
	m.calls++
	m.last = q
	return m.result, m.err
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- helpers ---

type testDeps struct {
	users    *mockUserRepo
	orders   *mockOrderRepo
	articles *mockArticleRepo
	db       *mockPinger
	search   *mockPinger
	maxBody  int64
}

func newTestDeps() *testDeps {
	return &testDeps{
		users:    &mockUserRepo{},
		orders:   &mockOrderRepo{},
		articles: &mockArticleRepo{},
		db:       &mockPinger{},
		search:   &mockPinger{},
	}
}

// newTestHandler builds the routed server behind basic auth.
func newTestHandler(t *testing.T, d *testDeps) http.Handler {
	t.Helper()

	verifier, err := credential.NewVerifier(testUser, testSecret)
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	srv := NewServer(
		authuc.New(d.users),
		orderuc.New(d.orders, page.Limits{DefaultSize: 50, MaxSize: 200}),
		articleuc.New(d.articles, query.DefaultLimits(), time.Second),
		healthuc.New(d.db, d.search, nil),
		verifier.Challenge(),
		d.maxBody,
		zap.NewNop(),
	)

	r := gochi.NewRouter()
	r.Use(BasicAuthMiddleware(verifier))
	srv.Routes(r)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, http.NoBody)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.SetBasicAuth(testUser, testSecret)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v (body %q)", err, rr.Body.String())
	}
	return errResp
}
