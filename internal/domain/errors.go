package domain

import "errors"

var (
	// ErrForbiddenOperator signals a payload key or value using the reserved operator prefix.
	ErrForbiddenOperator = errors.New("forbidden operator")
	// ErrInvalidPayload signals a request body that cannot be decoded into a payload.
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrQueryTooBroad signals an empty or match-everything search query.
	ErrQueryTooBroad = errors.New("search query too broad")
	// ErrForbiddenPattern signals a search query containing a blocklisted substring.
	ErrForbiddenPattern = errors.New("forbidden search pattern")
	// ErrInvalidPagination signals page or size outside the allowed range.
	ErrInvalidPagination = errors.New("invalid pagination")
	// ErrInvalidOrder signals an order that fails field validation.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrUnauthorized signals a credential mismatch or a backend that refused our credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMisconfigured signals missing required secrets. The service must not start.
	ErrMisconfigured = errors.New("misconfigured")

	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")

	// ErrGatewayTimeout signals a downstream call that did not answer in time.
	ErrGatewayTimeout = errors.New("gateway timeout")
	// ErrBadGateway signals a downstream that could not be reached or answered with an error.
	ErrBadGateway = errors.New("bad gateway")
)

// KeyPrefix namespaces every key storeguard writes to the cache store.
const KeyPrefix = "storeguard:"
