package redis

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/storeguard/internal/db"
)

// classify wraps a rueidis error in db.Error, tagging timeouts and lost connections
// with the shared backend sentinels.
func classify(op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrBackendTimeout, err)}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrBackendTimeout, err)}
	case errors.Is(err, rueidis.ErrClosing), errors.As(err, &netErr):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrBackendUnavailable, err)}
	default:
		return &db.Error{Op: op, Err: err}
	}
}
