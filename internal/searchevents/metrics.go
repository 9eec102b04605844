package searchevents

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts search event delivery.
type Metrics struct {
	Published prometheus.Counter
	Dropped   prometheus.Counter
	Sampled   prometheus.Counter
}

// NewMetrics registers search event metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Published: factory.NewCounter(prometheus.CounterOpts{
			Name: "advocatehub_search_events_published_total",
			Help: "Search events acknowledged by the broker",
		}),
		Dropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "advocatehub_search_events_dropped_total",
			Help: "Search events lost to encoding or delivery failures",
		}),
		Sampled: factory.NewCounter(prometheus.CounterOpts{
			Name: "advocatehub_search_events_sampled_total",
			Help: "Search events skipped by sampling",
		}),
	}
}

func (m *Metrics) IncrementPublished() {
	if m != nil {
		m.Published.Inc()
	}
}

func (m *Metrics) IncrementDropped() {
	if m != nil {
		m.Dropped.Inc()
	}
}

func (m *Metrics) IncrementSampled() {
	if m != nil {
		m.Sampled.Inc()
	}
}
