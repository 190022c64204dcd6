package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinel errors for backend operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")

	// ErrBackendUnauthorized means the backend rejected our credentials (401/403).
	ErrBackendUnauthorized = errors.New("db: backend rejected credentials")
	// ErrBackendTimeout means the backend did not answer before the deadline.
	ErrBackendTimeout = errors.New("db: backend timeout")
	// ErrBackendUnavailable means the backend could not be reached.
	ErrBackendUnavailable = errors.New("db: backend unavailable")
	// ErrBackendResponse means the backend answered with an unexpected status or body.
	ErrBackendResponse = errors.New("db: unexpected backend response")
)

// Op constants name backend operations for error context.
const (
	OpGet    = "GET"
	OpSet    = "SET"
	OpPing   = "PING"
	OpSearch = "SEARCH"
	OpFind   = "FIND"
	OpInsert = "INSERT"
	OpCount  = "COUNT"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// ClassifyTransportError maps a failed round trip to ErrBackendTimeout or ErrBackendUnavailable.
// The original error stays in the chain.
func ClassifyTransportError(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrBackendTimeout, err)}
	}
	return &Error{Op: op, Err: fmt.Errorf("%w: %w", ErrBackendUnavailable, err)}
}

// ClassifyStatus maps a non-2xx backend status to a sentinel. It returns nil for 2xx.
func ClassifyStatus(op string, status int, body string) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{Op: op, Err: fmt.Errorf("%w: status %d", ErrBackendUnauthorized, status)}
	case status == http.StatusGatewayTimeout || status == http.StatusRequestTimeout:
		return &Error{Op: op, Err: fmt.Errorf("%w: status %d", ErrBackendTimeout, status)}
	default:
		return &Error{Op: op, Err: fmt.Errorf("%w: status %d: %s", ErrBackendResponse, status, truncate(body, 256))}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
