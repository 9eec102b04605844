package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for search observations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics provides observability for advocate search.
type Metrics struct {
	// Search latency by outcome ("ok", "error")
	SearchLatency *prometheus.HistogramVec

	// Unpaginated match counts per search
	SearchTotal prometheus.Histogram

	// Searches carrying at least one filter, by criterion name
	FilterUsage *prometheus.CounterVec

	// Store read failures by operation ("list", "count")
	StoreFailures *prometheus.CounterVec
}

// New registers the advocate metrics with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the advocate metrics with reg. Tests pass a
// fresh prometheus.Registry so repeated construction does not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SearchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "advocatehub_search_duration_seconds",
			Help:    "Duration of advocate searches including page and count reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"outcome"}),

		SearchTotal: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "advocatehub_search_matches",
			Help:    "Number of advocates matching a search before paging",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		}),

		FilterUsage: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "advocatehub_search_filter_usage_total",
			Help: "Searches using each criterion",
		}, []string{"criterion"}), // criterion: "search", "city", "specialty", "degree", "experience"

		StoreFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "advocatehub_store_failures_total",
			Help: "Advocate store read failures by operation",
		}, []string{"operation"}),
	}
}

// ObserveSearch records one search with its outcome.
func (m *Metrics) ObserveSearch(outcome string, d time.Duration) {
	if m != nil {
		m.SearchLatency.WithLabelValues(outcome).Observe(d.Seconds())
	}
}

// ObserveTotal records how many advocates a search matched.
func (m *Metrics) ObserveTotal(total int) {
	if m != nil {
		m.SearchTotal.Observe(float64(total))
	}
}

// IncrementFilterUsage counts a search that used criterion.
func (m *Metrics) IncrementFilterUsage(criterion string) {
	if m != nil {
		m.FilterUsage.WithLabelValues(criterion).Inc()
	}
}

// IncrementStoreFailure counts a failed store read.
func (m *Metrics) IncrementStoreFailure(operation string) {
	if m != nil {
		m.StoreFailures.WithLabelValues(operation).Inc()
	}
}
