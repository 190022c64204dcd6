package auth

import (
	"context"

	domuser "github.com/kailas-cloud/storeguard/internal/domain/user"
)

// Repository defines the storage contract for account lookups.
type Repository interface {
	FindByCredentials(ctx context.Context, username, password string) (domuser.User, error)
}
