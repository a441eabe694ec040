package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "flossdex",
			Name:      "search_requests_total",
			Help:      "Total number of nearest-blend searches",
		},
		[]string{"status"}, // "ok" / "error" / "canceled" / "rejected"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "flossdex",
			Name:      "search_duration_seconds",
			Help:      "Nearest-blend search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SearchCandidatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flossdex",
			Name:      "search_candidates_total",
			Help:      "Total candidate blends scored",
		},
	)

	SearchInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "flossdex",
			Name:      "search_in_flight",
			Help:      "Searches submitted and not yet answered",
		},
	)

	SearchProtocolMismatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "flossdex",
			Name:      "search_protocol_mismatch_total",
			Help:      "Search responses dropped because no request was waiting for their ID",
		},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers Prometheus search metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SearchCandidatesTotal)
		prometheus.MustRegister(SearchInFlight)
		prometheus.MustRegister(SearchProtocolMismatchTotal)
	})
}
