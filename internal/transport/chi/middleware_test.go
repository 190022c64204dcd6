package chi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestJSONRecoverer(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := JSONRecoverer(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/orders", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusInternalServerError)
	}
	if code := decodeError(t, rr).Code; code != ErrorResponseCodeInternalError {
		t.Errorf("code: got %s", code)
	}
	if logs.FilterMessage("panic recovered").Len() != 1 {
		t.Error("expected panic to be logged")
	}
}

func TestWideEvent_CanonicalLine(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newTestHandler(t, newTestDeps())
	handler := chiMiddleware.RequestID(WideEventMiddleware(zap.New(core))(h))

	req := httptest.NewRequest("GET", "/orders", http.NoBody)
	req.SetBasicAuth(testUser, testSecret)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	lines := logs.FilterMessage("http_request").All()
	if len(lines) != 1 {
		t.Fatalf("expected 1 canonical line, got %d", len(lines))
	}
	fields := lines[0].ContextMap()
	if fields["user"] != testUser {
		t.Errorf("user: got %v", fields["user"])
	}
	if fields["status"] != int64(http.StatusOK) {
		t.Errorf("status: got %v", fields["status"])
	}
	if fields["request_id"] == "" {
		t.Error("expected request_id")
	}
}

func TestWideEvent_RejectedRequestHasNoUser(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := newTestHandler(t, newTestDeps())
	handler := WideEventMiddleware(zap.New(core))(h)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/orders", http.NoBody))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d", rr.Code)
	}
	if got := logs.FilterMessage("request rejected").Len(); got != 1 {
		t.Errorf("expected 1 rejection log, got %d", got)
	}
	lines := logs.FilterMessage("http_request").All()
	if len(lines) != 1 {
		t.Fatalf("expected 1 canonical line, got %d", len(lines))
	}
	if _, ok := lines[0].ContextMap()["user"]; ok {
		t.Error("rejected request must not carry a user")
	}
}
