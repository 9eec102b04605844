//go:build integration

package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"advocatehub/internal/client/state"
	"advocatehub/pkg/testutil/containers"
)

type RedisHistorySuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	history *state.RedisHistory
}

func TestRedisHistorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisHistorySuite))
}

func (s *RedisHistorySuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.history = state.NewRedisHistory(s.redis.Client, "", 0)
}

func (s *RedisHistorySuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisHistorySuite) TestLoadMissingKeyIsEmpty() {
	entries, err := s.history.Load(context.Background())
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *RedisHistorySuite) TestSaveLoadClear() {
	ctx := context.Background()
	at := time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC)
	entries := []state.HistoryEntry{
		{ID: "h2", Query: "law", Filters: state.Filters{Experience: "3-5"}, Timestamp: at, ResultsCount: 1},
		{ID: "h1", Query: "new", Timestamp: at.Add(-time.Minute), ResultsCount: 2},
	}

	s.Require().NoError(s.history.Save(ctx, entries))
	loaded, err := s.history.Load(ctx)
	s.Require().NoError(err)
	s.Equal(entries, loaded)

	s.Require().NoError(s.history.Clear(ctx))
	loaded, err = s.history.Load(ctx)
	s.Require().NoError(err)
	s.Empty(loaded)
}

func (s *RedisHistorySuite) TestTTLIsApplied() {
	ctx := context.Background()
	h := state.NewRedisHistory(s.redis.Client, "history:ttl", time.Minute)
	s.Require().NoError(h.Save(ctx, []state.HistoryEntry{{ID: "x", Query: "q"}}))

	ttl, err := s.redis.Client.TTL(ctx, "history:ttl").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *RedisHistorySuite) TestContainerPersistsAcrossInstances() {
	ctx := context.Background()
	first := state.New(nil, state.WithHistory(s.history))
	s.Require().NoError(first.LoadHistory(ctx))
	s.Empty(first.History())

	s.Require().NoError(s.history.Save(ctx, []state.HistoryEntry{{ID: "persisted", Query: "cardio"}}))

	second := state.New(nil, state.WithHistory(s.history))
	s.Require().NoError(second.LoadHistory(ctx))
	s.Require().Len(second.History(), 1)
	s.Equal("persisted", second.History()[0].ID)
}
