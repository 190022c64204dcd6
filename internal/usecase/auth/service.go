package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/storeguard/internal/domain"
	"github.com/kailas-cloud/storeguard/internal/domain/payload"
	domuser "github.com/kailas-cloud/storeguard/internal/domain/user"
)

// Login payload fields.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// ErrBadCredentials is returned by Login when no account matches. It wraps
// domain.ErrUnauthorized.
var ErrBadCredentials = fmt.Errorf("bad creds: %w", domain.ErrUnauthorized)

// Service handles user login against the document store.
type Service struct {
	repo Repository
}

// New creates an auth service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login guards p, then looks the account up. The store is never queried for a
// rejected payload. Unknown accounts fail with domain.ErrUnauthorized.
func (s *Service) Login(ctx context.Context, p payload.Payload) (domuser.User, error) {
	if err := payload.Validate(p); err != nil {
		return domuser.User{}, fmt.Errorf("validate login: %w", err)
	}

	username, err := textField(p, FieldUsername)
	if err != nil {
		return domuser.User{}, err
	}
	password, err := textField(p, FieldPassword)
	if err != nil {
		return domuser.User{}, err
	}

	u, err := s.repo.FindByCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domuser.User{}, ErrBadCredentials
		}
		return domuser.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func textField(p payload.Payload, name string) (string, error) {
	v, ok := p.Get(name)
	if !ok {
		return "", fmt.Errorf("%s is required: %w", name, domain.ErrInvalidPayload)
	}
	s, ok := v.AsText()
	if !ok {
		return "", fmt.Errorf("%s must be text, got %s: %w", name, v.Kind(), domain.ErrInvalidPayload)
	}
	return s, nil
}
