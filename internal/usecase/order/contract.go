package order

import (
	"context"

	domorder "github.com/kailas-cloud/storeguard/internal/domain/order"
)

// Repository defines the storage contract for orders.
type Repository interface {
	Insert(ctx context.Context, o domorder.Order) (domorder.Order, error)
	List(ctx context.Context, offset, limit int) ([]domorder.Order, error)
	Count(ctx context.Context) (int64, error)
}
