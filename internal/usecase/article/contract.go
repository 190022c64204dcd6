package article

import (
	"context"

	domarticle "github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
)

// Repository defines the contract for article search.
type Repository interface {
	Search(ctx context.Context, q query.Query) (domarticle.Result, error)
}
