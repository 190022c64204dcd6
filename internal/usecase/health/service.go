package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as report keys.
const (
	ComponentDatabase = "database"
	ComponentSearch   = "search"
	ComponentCache    = "cache"
)

// DefaultCheckTimeout bounds each individual ping.
const DefaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	database Pinger
	search   Pinger
	cache    Pinger
	timeout  time.Duration
}

// New creates a Service. cache can be nil when the search cache is disabled.
func New(database, search, cache Pinger) *Service {
	return &Service{database: database, search: search, cache: cache, timeout: DefaultCheckTimeout}
}

// Check pings every configured component. All failing means Unhealthy, some failing Degraded.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	checks[ComponentDatabase] = s.ping(ctx, s.database)
	checks[ComponentSearch] = s.ping(ctx, s.search)
	if s.cache != nil {
		checks[ComponentCache] = s.ping(ctx, s.cache)
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		status = Unhealthy
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) ping(ctx context.Context, p Pinger) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return CheckError
	}
	return CheckOK
}
