package store

import (
	"context"
	"slices"
	"sync"

	"advocatehub/internal/advocate/models"
	"advocatehub/internal/search"
	"advocatehub/pkg/platform/strings"
)

// InMemory keeps advocates in insertion order. It evaluates plans with the
// same matcher the client uses, which makes it the reference renderer for
// development and tests.
type InMemory struct {
	mu        sync.RWMutex
	advocates []models.Advocate
	nextID    int64
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{nextID: 1}
}

func (s *InMemory) List(_ context.Context, plan search.Plan, offset, limit int) ([]models.Advocate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Advocate
	for _, a := range s.advocates {
		if plan.Match(a) {
			matched = append(matched, a)
		}
	}
	window := search.Window(matched, offset, limit)
	out := make([]models.Advocate, 0, len(window))
	for _, a := range window {
		out = append(out, clone(a))
	}
	return out, nil
}

func (s *InMemory) Count(_ context.Context, plan search.Plan) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	for _, a := range s.advocates {
		if plan.Match(a) {
			total++
		}
	}
	return total, nil
}

func (s *InMemory) Insert(_ context.Context, a models.Advocate) (models.Advocate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextID
	s.nextID++
	a.Specialties = strings.DedupeAndTrim(a.Specialties)
	s.advocates = append(s.advocates, a)
	return clone(a), nil
}

func (s *InMemory) Ping(context.Context) error {
	return nil
}

// clone detaches the specialties slice so callers cannot mutate stored records.
func clone(a models.Advocate) models.Advocate {
	a.Specialties = slices.Clone(a.Specialties)
	return a
}
