// Package credential verifies HTTP Basic credentials against the configured pair.
package credential

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"

	"github.com/kailas-cloud/storeguard/internal/domain"
)

// DefaultRealm is announced in the Basic challenge.
const DefaultRealm = "storeguard"

// UnauthorizedError carries the challenge the caller must send back to the client.
type UnauthorizedError struct {
	Challenge string
}

func (e *UnauthorizedError) Error() string { return domain.ErrUnauthorized.Error() }

func (e *UnauthorizedError) Unwrap() error { return domain.ErrUnauthorized }

// Verifier holds the expected credential pair. It is immutable and safe for concurrent use.
type Verifier struct {
	username  string
	userSum   [sha256.Size]byte
	secretSum [sha256.Size]byte
	challenge string
}

// NewVerifier fails with domain.ErrMisconfigured when either value is empty.
func NewVerifier(username, secret string) (*Verifier, error) {
	return NewVerifierWithRealm(username, secret, DefaultRealm)
}

// NewVerifierWithRealm is NewVerifier with a custom challenge realm.
func NewVerifierWithRealm(username, secret, realm string) (*Verifier, error) {
	if username == "" || secret == "" {
		return nil, fmt.Errorf("expected API credentials are not set: %w", domain.ErrMisconfigured)
	}
	if realm == "" {
		realm = DefaultRealm
	}
	return &Verifier{
		username:  username,
		userSum:   sha256.Sum256([]byte(username)),
		secretSum: sha256.Sum256([]byte(secret)),
		challenge: fmt.Sprintf("Basic realm=%q", realm),
	}, nil
}

// Verify returns the verified username, or an *UnauthorizedError.
// Both comparisons always run over fixed-size digests, so timing depends neither on
// where the inputs first differ nor on their length.
func (v *Verifier) Verify(username, secret string) (string, error) {
	userSum := sha256.Sum256([]byte(username))
	secretSum := sha256.Sum256([]byte(secret))

	userOK := subtle.ConstantTimeCompare(userSum[:], v.userSum[:])
	secretOK := subtle.ConstantTimeCompare(secretSum[:], v.secretSum[:])

	if userOK&secretOK != 1 {
		return "", &UnauthorizedError{Challenge: v.challenge}
	}
	return v.username, nil
}

// Challenge returns the WWW-Authenticate value for this verifier.
func (v *Verifier) Challenge() string { return v.challenge }
