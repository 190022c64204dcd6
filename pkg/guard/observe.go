package guard

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// guardMetrics holds prometheus metrics registered for the Guard.
type guardMetrics struct {
	checks     *prometheus.CounterVec
	rejections *prometheus.CounterVec
}

func newGuardMetrics(reg prometheus.Registerer) (*guardMetrics, error) {
	m := &guardMetrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storeguard",
			Subsystem: "guard",
			Name:      "checks_total",
			Help:      "Total guard checks by guard and outcome.",
		}, []string{"guard", "outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storeguard",
			Subsystem: "guard",
			Name:      "rejections_total",
			Help:      "Guard rejections by guard and reason.",
		}, []string{"guard", "reason"}),
	}
	if err := registerOrReuse(reg, &m.checks); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.rejections); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("guard: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("guard: register metric: %w", err)
	}
	return nil
}

// observer reports guard outcomes to slog and Prometheus. Both are optional.
type observer struct {
	logger  *slog.Logger
	metrics *guardMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *guardMetrics
	if reg != nil {
		var err error
		m, err = newGuardMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(name string, err error) {
	if o == nil {
		return
	}

	outcome := "passed"
	if err != nil {
		outcome = "rejected"
	}
	if o.metrics != nil {
		o.metrics.checks.WithLabelValues(name, outcome).Inc()
		if err != nil {
			o.metrics.rejections.WithLabelValues(name, reason(err)).Inc()
		}
	}

	if o.logger != nil && err != nil {
		attrs := []any{"guard", name, "reason", reason(err), "error", err}
		var ve *ViolationError
		if errors.As(err, &ve) {
			attrs = append(attrs, "path", ve.Path)
		}
		o.logger.Warn("guard rejected input", attrs...)
	}
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrForbiddenOperator):
		return "forbidden_operator"
	case errors.Is(err, ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, ErrQueryTooBroad):
		return "query_too_broad"
	case errors.Is(err, ErrForbiddenPattern):
		return "forbidden_pattern"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	default:
		return "other"
	}
}
