package order

import (
	"context"
	"fmt"

	domorder "github.com/kailas-cloud/storeguard/internal/domain/order"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
	"github.com/kailas-cloud/storeguard/internal/domain/payload"
)

// Listing is one page of orders plus the total count.
type Listing struct {
	Orders []domorder.Order
	Total  int64
	Page   page.Page
}

// Service handles order listing and creation.
type Service struct {
	repo   Repository
	limits page.Limits
}

// New creates an order service.
func New(repo Repository, limits page.Limits) *Service {
	return &Service{repo: repo, limits: limits}
}

// List returns the requested page. Nil parameters take their defaults.
func (s *Service) List(ctx context.Context, number, size *int) (Listing, error) {
	pg, err := page.FromParams(number, size, s.limits)
	if err != nil {
		return Listing{}, fmt.Errorf("list orders: %w", err)
	}

	orders, err := s.repo.List(ctx, pg.Offset(), pg.Limit())
	if err != nil {
		return Listing{}, fmt.Errorf("list orders: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return Listing{}, fmt.Errorf("count orders: %w", err)
	}

	return Listing{Orders: orders, Total: total, Page: pg}, nil
}

// Create guards p, builds the order and stores it. Nothing is written unless
// every check passes.
func (s *Service) Create(ctx context.Context, p payload.Payload) (domorder.Order, error) {
	if err := payload.Validate(p); err != nil {
		return domorder.Order{}, fmt.Errorf("validate order: %w", err)
	}

	o, err := domorder.FromPayload(p)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("build order: %w", err)
	}

	created, err := s.repo.Insert(ctx, o)
	if err != nil {
		return domorder.Order{}, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}
