//go:build integration

package searchevents_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"advocatehub/internal/searchevents"
	"advocatehub/pkg/testutil/containers"
)

type KafkaPublisherSuite struct {
	suite.Suite
	redpanda *containers.RedpandaContainer
}

func TestKafkaPublisherSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(KafkaPublisherSuite))
}

func (s *KafkaPublisherSuite) SetupSuite() {
	s.redpanda = containers.GetManager().GetRedpanda(s.T())
}

func (s *KafkaPublisherSuite) TestPublishedEventsAreConsumable() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	topic := "search-events-" + time.Now().Format("150405.000000")

	producer, err := kgo.NewClient(kgo.SeedBrokers(s.redpanda.Brokers...))
	s.Require().NoError(err)
	defer producer.Close()

	s.Require().NoError(searchevents.EnsureTopic(ctx, producer, topic, 1, 1))
	s.Require().NoError(searchevents.EnsureTopic(ctx, producer, topic, 1, 1), "second call is a no-op")

	metrics := searchevents.NewMetrics(prometheus.NewRegistry())
	pub := searchevents.NewKafkaPublisher(producer, topic, searchevents.WithMetrics(metrics))
	pub.Publish(ctx, searchevents.Event{ID: "evt-1", RequestID: "req-1", City: "Boston", Total: 1, Outcome: searchevents.OutcomeOK})
	pub.Publish(ctx, searchevents.Event{ID: "evt-2", RequestID: "req-2", Degree: "MD", Outcome: searchevents.OutcomeError})
	s.Require().NoError(pub.Flush(ctx))
	s.Equal(2.0, promtest.ToFloat64(metrics.Published))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	var received []searchevents.Event
	keys := map[string]string{}
	for len(received) < 2 {
		fetches := consumer.PollFetches(ctx)
		s.Require().NoError(ctx.Err(), "timed out waiting for events")
		s.Require().Empty(fetches.Errors())
		fetches.EachRecord(func(r *kgo.Record) {
			var e searchevents.Event
			s.Require().NoError(json.Unmarshal(r.Value, &e))
			received = append(received, e)
			keys[e.ID] = string(r.Key)
		})
	}

	s.Equal("evt-1", received[0].ID)
	s.Equal("Boston", received[0].City)
	s.Equal(searchevents.OutcomeError, received[1].Outcome)
	s.Equal("req-2", keys["evt-2"])
}
