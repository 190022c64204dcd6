package guard

import (
	"io"

	"github.com/kailas-cloud/storeguard/internal/domain/credential"
	"github.com/kailas-cloud/storeguard/internal/domain/payload"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
)

type (
	// Payload is an ordered JSON object read from a request body.
	Payload = payload.Payload
	// Field is one key/value pair of a Payload.
	Field = payload.Field
	// Value is a payload value: text, number, boolean, null, list or nested object.
	Value = payload.Value
	// ViolationError locates the first rejected key or value.
	ViolationError = payload.ViolationError
	// Verifier checks Basic credentials in constant time.
	Verifier = credential.Verifier
	// UnauthorizedError carries the WWW-Authenticate challenge.
	UnauthorizedError = credential.UnauthorizedError
)

// ReservedPrefix is the operator prefix refused by ValidatePayload.
const ReservedPrefix = payload.ReservedPrefix

// DecodePayload reads exactly one JSON object from r, keeping key order.
func DecodePayload(r io.Reader) (Payload, error) {
	return payload.Decode(r)
}

// ValidatePayload rejects any key starting with ReservedPrefix and any text
// value containing it, at any depth. p is not modified.
func ValidatePayload(p Payload) error {
	return payload.Validate(p)
}

// PrepareQuery rejects empty, wildcard-only and blocklisted search terms and
// escapes the rest for a query-string search.
func PrepareQuery(raw string) (string, error) {
	return query.Prepare(raw)
}

// EscapeQuery escapes query-string reserved characters without other checks.
func EscapeQuery(raw string) string {
	return query.Escape(raw)
}

// NewVerifier fails with ErrMisconfigured when either value is empty.
func NewVerifier(username, secret string) (*Verifier, error) {
	return credential.NewVerifier(username, secret)
}

// NewVerifierWithRealm is NewVerifier with a custom challenge realm.
func NewVerifierWithRealm(username, secret, realm string) (*Verifier, error) {
	return credential.NewVerifierWithRealm(username, secret, realm)
}
