package db

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"deadline", context.DeadlineExceeded, ErrBackendTimeout},
		{"wrapped deadline", fmt.Errorf("do: %w", context.DeadlineExceeded), ErrBackendTimeout},
		{"net timeout", timeoutErr{}, ErrBackendTimeout},
		{"refused", errors.New("dial tcp 127.0.0.1:9200: connect: connection refused"), ErrBackendUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyTransportError(OpSearch, tc.err)
			if !errors.Is(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if !errors.Is(got, tc.err) {
				t.Error("original error must stay in the chain")
			}
			var dbErr *Error
			if !errors.As(got, &dbErr) || dbErr.Op != OpSearch {
				t.Errorf("expected *Error with op %s, got %T", OpSearch, got)
			}
		})
	}
}

func TestClassifyTransportError_Nil(t *testing.T) {
	if err := ClassifyTransportError(OpSearch, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusOK, nil},
		{http.StatusUnauthorized, ErrBackendUnauthorized},
		{http.StatusForbidden, ErrBackendUnauthorized},
		{http.StatusGatewayTimeout, ErrBackendTimeout},
		{http.StatusBadRequest, ErrBackendResponse},
		{http.StatusServiceUnavailable, ErrBackendResponse},
	}
	for _, tc := range tests {
		got := ClassifyStatus(OpSearch, tc.status, "body")
		if tc.want == nil {
			if got != nil {
				t.Errorf("status %d: expected nil, got %v", tc.status, got)
			}
			continue
		}
		if !errors.Is(got, tc.want) {
			t.Errorf("status %d: got %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestClassifyStatus_TruncatesBody(t *testing.T) {
	err := ClassifyStatus(OpSearch, http.StatusBadRequest, strings.Repeat("x", 1000))
	if len(err.Error()) > 400 {
		t.Errorf("error message not truncated: %d bytes", len(err.Error()))
	}
}

func TestDecodeSearchResponse(t *testing.T) {
	body := `{
		"took": 4,
		"hits": {
			"total": {"value": 2, "relation": "eq"},
			"max_score": 1.5,
			"hits": [
				{"_id": "a1", "_score": 1.5, "_source": {"title": "ratón"}},
				{"_id": "a2", "_score": null, "_source": {"title": "teclado"}}
			]
		}
	}`
	res, err := DecodeSearchResponse(strings.NewReader(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 2 || res.Took != 4 || res.MaxScore != 1.5 {
		t.Errorf("unexpected totals: %+v", res)
	}
	if len(res.Hits) != 2 || res.Hits[0].ID != "a1" || res.Hits[1].Score != 0 {
		t.Fatalf("unexpected hits: %+v", res.Hits)
	}
	if !strings.Contains(string(res.Hits[0].Source), "ratón") {
		t.Errorf("unexpected source: %s", res.Hits[0].Source)
	}
}

func TestDecodeSearchResponse_Invalid(t *testing.T) {
	_, err := DecodeSearchResponse(strings.NewReader("<html>"))
	if !errors.Is(err, ErrBackendResponse) {
		t.Fatalf("expected ErrBackendResponse, got %v", err)
	}
}
