package article

import (
	"context"
	"fmt"
	"time"

	domarticle "github.com/kailas-cloud/storeguard/internal/domain/article"
	"github.com/kailas-cloud/storeguard/internal/domain/page"
	"github.com/kailas-cloud/storeguard/internal/domain/search/query"
)

// DefaultTimeout bounds one backend search call.
const DefaultTimeout = 3 * time.Second

// Service handles sanitized article search.
type Service struct {
	repo    Repository
	limits  page.Limits
	timeout time.Duration
}

// New creates an article search service. timeout <= 0 means DefaultTimeout.
func New(repo Repository, limits page.Limits, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{repo: repo, limits: limits, timeout: timeout}
}

// Search sanitizes raw, validates pagination and queries the backend under the
// service timeout. Rejected input never reaches the backend.
func (s *Service) Search(ctx context.Context, raw string, number, size *int) (domarticle.Result, error) {
	pg, err := page.FromParams(number, size, s.limits)
	if err != nil {
		return domarticle.Result{}, fmt.Errorf("search articles: %w", err)
	}

	q, err := query.New(raw, pg)
	if err != nil {
		return domarticle.Result{}, fmt.Errorf("search articles: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.repo.Search(ctx, q)
	if err != nil {
		return domarticle.Result{}, fmt.Errorf("search articles: %w", err)
	}
	return res, nil
}
