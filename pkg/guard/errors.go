package guard

import "github.com/kailas-cloud/storeguard/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrForbiddenOperator = domain.ErrForbiddenOperator
	ErrInvalidPayload    = domain.ErrInvalidPayload
	ErrQueryTooBroad     = domain.ErrQueryTooBroad
	ErrForbiddenPattern  = domain.ErrForbiddenPattern
	ErrUnauthorized      = domain.ErrUnauthorized
	ErrMisconfigured     = domain.ErrMisconfigured
)
