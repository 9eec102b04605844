package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MaxHistory is how many distinct searches are remembered.
const MaxHistory = 10

// HistoryEntry is one remembered search.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Filters      Filters   `json:"filters"`
	Timestamp    time.Time `json:"timestamp"`
	ResultsCount int       `json:"resultsCount"`
}

// sameSearch reports whether e and other describe the same query and filters.
func (e HistoryEntry) sameSearch(other HistoryEntry) bool {
	return e.Query == other.Query && e.Filters == other.Filters
}

// RecordHistory puts entry at the front of history, dropping an older entry
// for the same search and anything past MaxHistory. history is not modified.
func RecordHistory(history []HistoryEntry, entry HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, 0, min(len(history)+1, MaxHistory))
	out = append(out, entry)
	for _, h := range history {
		if len(out) == MaxHistory {
			break
		}
		if h.sameSearch(entry) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// HistoryStore persists search history between sessions.
type HistoryStore interface {
	Load(ctx context.Context) ([]HistoryEntry, error)
	Save(ctx context.Context, entries []HistoryEntry) error
	Clear(ctx context.Context) error
}

// MemoryHistory keeps history for the life of the process.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []HistoryEntry
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

func (m *MemoryHistory) Load(context.Context) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.entries), nil
}

func (m *MemoryHistory) Save(_ context.Context, entries []HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = slices.Clone(entries)
	return nil
}

func (m *MemoryHistory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}

// DefaultHistoryKey is the Redis key used when none is configured.
const DefaultHistoryKey = "advocatehub:search-history"

// RedisHistory stores the history as one JSON document under a key.
type RedisHistory struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisHistory stores history under key. A zero ttl keeps it forever.
func NewRedisHistory(client *redis.Client, key string, ttl time.Duration) *RedisHistory {
	if key == "" {
		key = DefaultHistoryKey
	}
	return &RedisHistory{client: client, key: key, ttl: ttl}
}

func (r *RedisHistory) Load(ctx context.Context) ([]HistoryEntry, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load search history: %w", err)
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode search history: %w", err)
	}
	return entries, nil
}

func (r *RedisHistory) Save(ctx context.Context, entries []HistoryEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode search history: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save search history: %w", err)
	}
	return nil
}

func (r *RedisHistory) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear search history: %w", err)
	}
	return nil
}
