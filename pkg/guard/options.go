package guard

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Guard.
type Option interface {
	apply(*guardConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*guardConfig)

func (f optionFunc) apply(c *guardConfig) { f(c) }

type guardConfig struct {
	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithLogger logs every rejection at warn level.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *guardConfig) {
		c.logger = l
	})
}

// WithMetrics registers storeguard_guard_rejections_total and
// storeguard_guard_checks_total on reg. Already registered collectors are reused.
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *guardConfig) {
		c.metricsReg = reg
	})
}
