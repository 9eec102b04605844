package searchevents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultTopic receives search events when no topic is configured.
const DefaultTopic = "advocatehub.search-events"

// KafkaPublisher produces events as JSON records keyed by request ID, so all
// events of one request land on the same partition.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	logger  *slog.Logger
	metrics *Metrics
}

// KafkaOption configures a KafkaPublisher.
type KafkaOption func(*KafkaPublisher)

func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) KafkaOption {
	return func(p *KafkaPublisher) {
		p.metrics = m
	}
}

// NewKafkaPublisher wraps an existing franz-go client. The caller owns the
// client and closes it after Flush.
func NewKafkaPublisher(client *kgo.Client, topic string, opts ...KafkaOption) *KafkaPublisher {
	if topic == "" {
		topic = DefaultTopic
	}
	p := &KafkaPublisher{
		client: client,
		topic:  topic,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Publish enqueues the event and returns immediately. When the client buffer
// is full the event is dropped rather than waiting for the broker. Delivery
// failures are logged and counted from the produce callback.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode search event", "event_id", event.ID, "error", err)
		p.metrics.IncrementDropped()
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.RequestID),
		Value: value,
	}
	// The search request context is done long before the broker acks.
	p.client.TryProduce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		switch {
		case errors.Is(err, kgo.ErrMaxBuffered):
			p.logger.Debug("search event buffer full", "event_id", event.ID)
			p.metrics.IncrementDropped()
		case err != nil:
			p.logger.Error("failed to produce search event",
				"event_id", event.ID,
				"topic", r.Topic,
				"error", err,
			)
			p.metrics.IncrementDropped()
		default:
			p.metrics.IncrementPublished()
		}
	})
}

// Flush blocks until every buffered event is acknowledged or ctx ends.
func (p *KafkaPublisher) Flush(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		return fmt.Errorf("flush search events: %w", err)
	}
	return nil
}

// EnsureTopic creates topic when the cluster does not have it yet.
func EnsureTopic(ctx context.Context, client *kgo.Client, topic string, partitions int32, replicas int16) error {
	adm := kadm.NewClient(client)
	existing, err := adm.ListTopics(ctx, topic)
	if err != nil {
		return fmt.Errorf("list topics: %w", err)
	}
	if existing.Has(topic) {
		return nil
	}
	resp, err := adm.CreateTopic(ctx, partitions, replicas, nil, topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, resp.Err)
	}
	return nil
}
