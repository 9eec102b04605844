package searchevents

import (
	"context"
	"math/rand/v2"
)

// Sampler forwards a fraction of events to next. Failed searches are always
// forwarded.
type Sampler struct {
	next    Publisher
	rate    float64
	metrics *Metrics
	roll    func() float64
}

// NewSampler keeps events with probability rate, clamped to [0, 1].
func NewSampler(next Publisher, rate float64, metrics *Metrics) *Sampler {
	return &Sampler{
		next:    next,
		rate:    min(max(rate, 0), 1),
		metrics: metrics,
		roll:    rand.Float64, //nolint:gosec // sampling doesn't need crypto rand
	}
}

func (s *Sampler) Publish(ctx context.Context, event Event) {
	if event.Outcome != OutcomeError && s.roll() >= s.rate {
		s.metrics.IncrementSampled()
		return
	}
	s.next.Publish(ctx, event)
}
