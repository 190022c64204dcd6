package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/kailas-cloud/storeguard/internal/db"
)

// Classify wraps a driver error into a *db.Error carrying the matching db sentinel.
func Classify(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrKeyNotFound, err)}
	case errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrBackendTimeout, err)}
	case mongo.IsNetworkError(err):
		return &db.Error{Op: op, Err: fmt.Errorf("%w: %w", db.ErrBackendUnavailable, err)}
	default:
		return &db.Error{Op: op, Err: err}
	}
}
