// Package dberr translates backend sentinels into domain errors at the repository boundary.
package dberr

import (
	"errors"
	"fmt"

	"github.com/kailas-cloud/storeguard/internal/db"
	"github.com/kailas-cloud/storeguard/internal/domain"
)

// Translate keeps err in the chain and adds the domain sentinel the transport maps to a status.
// Errors without a backend sentinel are returned unchanged.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrKeyNotFound):
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	case errors.Is(err, db.ErrBackendUnauthorized):
		return fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	case errors.Is(err, db.ErrBackendTimeout):
		return fmt.Errorf("%w: %w", domain.ErrGatewayTimeout, err)
	case errors.Is(err, db.ErrBackendUnavailable), errors.Is(err, db.ErrBackendResponse):
		return fmt.Errorf("%w: %w", domain.ErrBadGateway, err)
	default:
		return err
	}
}
