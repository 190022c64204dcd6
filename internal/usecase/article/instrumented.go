package article

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/storeguard/internal/db"
	logpkg "github.com/kailas-cloud/storeguard/internal/logger"
	"github.com/kailas-cloud/storeguard/internal/metrics"
)

// InstrumentedSearcher wraps a search driver with metrics and logging.
// Metrics must be registered via metrics.RegisterSearchMetrics before use.
type InstrumentedSearcher struct {
	inner  db.Searcher
	logger *zap.Logger
}

// Compile-time check: InstrumentedSearcher implements db.Searcher.
var _ db.Searcher = (*InstrumentedSearcher)(nil)

// NewInstrumentedSearcher wraps a driver with observability.
func NewInstrumentedSearcher(inner db.Searcher, logger *zap.Logger) *InstrumentedSearcher {
	return &InstrumentedSearcher{inner: inner, logger: logger}
}

// Driver returns the wrapped driver name.
func (p *InstrumentedSearcher) Driver() string { return p.inner.Driver() }

// Ping delegates to the wrapped driver.
func (p *InstrumentedSearcher) Ping(ctx context.Context) error {
	return p.inner.Ping(ctx) //nolint:wrapcheck // transparent decorator
}

// Search delegates to the driver and records duration, status and error type.
func (p *InstrumentedSearcher) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	driver := p.inner.Driver()
	start := time.Now()

	res, err := p.inner.Search(ctx, q)

	duration := time.Since(start)
	metrics.SearchRequestDuration.WithLabelValues(driver).Observe(duration.Seconds())

	if err != nil {
		errType := errorType(err)
		metrics.SearchRequestsTotal.WithLabelValues(driver, "error").Inc()
		metrics.SearchErrorsTotal.WithLabelValues(driver, errType).Inc()
		p.logger.Error("Search request failed",
			logpkg.Driver(driver),
			logpkg.Index(q.Index),
			zap.String("error_type", errType),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search: %w", err)
	}

	metrics.SearchRequestsTotal.WithLabelValues(driver, "ok").Inc()
	p.logger.Debug("Search request completed",
		logpkg.Driver(driver),
		logpkg.Index(q.Index),
		zap.Int("from", q.From),
		zap.Int("size", q.Size),
		zap.Int64("total", res.Total),
		zap.Duration("duration", duration),
	)
	return res, nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, db.ErrBackendUnauthorized):
		return "unauthorized"
	case errors.Is(err, db.ErrBackendTimeout):
		return "timeout"
	case errors.Is(err, db.ErrBackendUnavailable):
		return "unavailable"
	case errors.Is(err, db.ErrBackendResponse):
		return "bad_response"
	default:
		return "other"
	}
}
