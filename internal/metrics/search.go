package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search backend, cache and guard Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storeguard",
			Name:      "search_requests_total",
			Help:      "Total number of search backend requests",
		},
		[]string{"driver", "status"},
	)

	SearchRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "storeguard",
			Name:      "search_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
		[]string{"driver"},
	)

	SearchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storeguard",
			Name:      "search_errors_total",
			Help:      "Total search backend errors",
		},
		[]string{"driver", "error_type"},
	)

	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storeguard",
			Name:      "search_cache_total",
			Help:      "Search result cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storeguard",
			Name:      "rejections_total",
			Help:      "Requests rejected by a guard, by reason",
		},
		[]string{"reason"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search, cache and rejection metrics with the
// default registry. Later calls are no-ops.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchRequestDuration)
		prometheus.MustRegister(SearchErrorsTotal)
		prometheus.MustRegister(SearchCacheTotal)
		prometheus.MustRegister(RejectionsTotal)
	})
}
