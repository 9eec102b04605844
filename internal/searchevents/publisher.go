package searchevents

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

// Publisher delivers search events. Implementations must not block the
// search path for long and must not return delivery failures to callers.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// LogPublisher writes each event as a structured log line.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	p.logger.InfoContext(ctx, "search executed",
		"event_id", event.ID,
		"request_id", event.RequestID,
		"search", event.Query,
		"city", event.City,
		"specialty", event.Specialty,
		"degree", event.Degree,
		"experience", event.Experience,
		"page", event.Page,
		"limit", event.Limit,
		"total", event.Total,
		"returned", event.Returned,
		"outcome", event.Outcome,
		"browser", event.Browser,
		"mobile", event.Mobile,
		"duration_ms", event.DurationMS,
	)
}

// MemoryPublisher keeps events in memory for tests and the CLI.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

func (p *MemoryPublisher) Publish(_ context.Context, event Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

// Events returns a copy of everything published so far, oldest first.
func (p *MemoryPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.events)
}

// Fanout publishes each event to every wrapped publisher in order.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, event Event) {
	for _, p := range f {
		p.Publish(ctx, event)
	}
}
