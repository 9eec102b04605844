// Package state is the client-side search state: the last fetched page, the
// current query and filters, and the locally refined view of that page.
package state

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"advocatehub/internal/advocate/models"
	"advocatehub/internal/search"
)

// Fetcher loads a page of advocates from the server.
type Fetcher interface {
	FetchAdvocates(ctx context.Context, c search.Criteria) (*search.Page, error)
}

// Filters are the structured criteria next to the free-text query.
type Filters struct {
	City       string `json:"city"`
	Specialty  string `json:"specialty"`
	Degree     string `json:"degree"`
	Experience string `json:"experience"`
}

// IsZero reports whether no filter is set.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// FilterPatch is a partial update; nil fields keep their current value.
type FilterPatch struct {
	City       *string
	Specialty  *string
	Degree     *string
	Experience *string
}

func (f Filters) apply(p FilterPatch) Filters {
	if p.City != nil {
		f.City = *p.City
	}
	if p.Specialty != nil {
		f.Specialty = *p.Specialty
	}
	if p.Degree != nil {
		f.Degree = *p.Degree
	}
	if p.Experience != nil {
		f.Experience = *p.Experience
	}
	return f
}

// View is what a UI should render.
type View string

const (
	ViewLoading View = "loading"
	ViewError   View = "error"
	ViewEmpty   View = "empty"
	ViewResults View = "results"
)

// Snapshot is a copy of the container state at one instant.
type Snapshot struct {
	Advocates         []models.Advocate
	FilteredAdvocates []models.Advocate
	SearchQuery       string
	Filters           Filters
	Loading           bool
	Err               error
	Pagination        search.Pagination
	History           []HistoryEntry
}

// Container holds search state. It is safe for concurrent use. Fetches that
// complete after a newer fetch started are discarded.
type Container struct {
	fetcher  Fetcher
	history  HistoryStore
	logger   *slog.Logger
	now      func() time.Time
	pageSize int

	mu         sync.RWMutex
	advocates  []models.Advocate
	filtered   []models.Advocate
	query      string
	filters    Filters
	loading    bool
	loaded     bool
	err        error
	pagination search.Pagination
	fetched    search.Criteria
	entries    []HistoryEntry
	generation uint64
}

type Option func(*Container)

// WithHistory persists search history through store.
func WithHistory(store HistoryStore) Option {
	return func(c *Container) {
		c.history = store
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Container) {
		c.now = now
	}
}

// WithPageSize sets the limit sent with every fetch.
func WithPageSize(limit int) Option {
	return func(c *Container) {
		c.pageSize = search.ClampLimit(limit)
	}
}

// New constructs an empty Container.
func New(fetcher Fetcher, opts ...Option) *Container {
	c := &Container{
		fetcher:   fetcher,
		history:   NewMemoryHistory(),
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		pageSize:  search.DefaultLimit,
		advocates: []models.Advocate{},
		filtered:  []models.Advocate{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadHistory replaces the in-memory history with the persisted one.
func (c *Container) LoadHistory(ctx context.Context) error {
	entries, err := c.history.Load(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = entries
	return nil
}

// Criteria returns the current query and filters as first-page criteria.
func (c *Container) Criteria() search.Criteria {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.criteriaLocked(1)
}

func (c *Container) criteriaLocked(page int) search.Criteria {
	return search.Normalize(search.Criteria{
		Query:      c.query,
		City:       c.filters.City,
		Specialty:  c.filters.Specialty,
		Degree:     c.filters.Degree,
		Experience: c.filters.Experience,
		Page:       page,
		Limit:      c.pageSize,
	})
}

// refilterLocked recomputes the local view of the loaded page.
func (c *Container) refilterLocked() {
	c.filtered = search.Filter(c.advocates, c.criteriaLocked(1))
}

// SetSearchQuery changes the free-text query and refines the loaded page.
func (c *Container) SetSearchQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.refilterLocked()
}

// SetFilters merges patch into the current filters.
func (c *Container) SetFilters(patch FilterPatch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = c.filters.apply(patch)
	c.refilterLocked()
}

// ClearFilters drops every filter but keeps the query.
func (c *Container) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = Filters{}
	c.refilterLocked()
}

// ClearSearch drops the query and every filter; the view shows all loaded
// advocates again.
func (c *Container) ClearSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = ""
	c.filters = Filters{}
	c.refilterLocked()
}

// ClearError forgets the last fetch error.
func (c *Container) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = nil
}

// FetchAdvocates reloads the first page from the server with the current
// criteria. On failure the previous records stay loaded and the error is kept
// until the next fetch or ClearError.
func (c *Container) FetchAdvocates(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	criteria := c.criteriaLocked(1)
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	page, err := c.fetcher.FetchAdvocates(ctx, criteria)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.mu.Unlock()
		c.logger.ErrorContext(ctx, "advocate fetch failed", "error", err)
		return err
	}
	c.advocates = slices.Clone(page.Data)
	if c.advocates == nil {
		c.advocates = []models.Advocate{}
	}
	c.pagination = page.Pagination
	c.fetched = criteria
	c.loaded = true
	c.refilterLocked()

	var history []HistoryEntry
	if criteria.IsFiltered() {
		c.entries = RecordHistory(c.entries, HistoryEntry{
			ID:    uuid.NewString(),
			Query: criteria.Query,
			Filters: Filters{
				City:       criteria.City,
				Specialty:  criteria.Specialty,
				Degree:     criteria.Degree,
				Experience: criteria.Experience,
			},
			Timestamp:    c.now(),
			ResultsCount: page.Pagination.Total,
		})
		history = slices.Clone(c.entries)
	}
	c.mu.Unlock()

	if history != nil {
		if err := c.history.Save(ctx, history); err != nil {
			c.logger.WarnContext(ctx, "failed to persist search history", "error", err)
		}
	}
	return nil
}

// LoadMore appends the next page of the last server fetch when the server
// reported more results. It is a no-op while a fetch is in flight or when
// nothing more is available.
func (c *Container) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || !c.loaded || !c.pagination.HasMore {
		c.mu.Unlock()
		return nil
	}
	gen := c.generation
	criteria := c.fetched
	criteria.Page = c.pagination.Page + 1
	c.loading = true
	c.mu.Unlock()

	page, err := c.fetcher.FetchAdvocates(ctx, criteria)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.logger.ErrorContext(ctx, "loading more advocates failed", "page", criteria.Page, "error", err)
		return err
	}
	c.advocates = append(c.advocates, page.Data...)
	c.pagination = page.Pagination
	c.refilterLocked()
	return nil
}

// ClearHistory forgets every remembered search, locally and in the store.
func (c *Container) ClearHistory(ctx context.Context) error {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
	return c.history.Clear(ctx)
}

// History returns remembered searches, most recent first.
func (c *Container) History() []HistoryEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

// View reports what to render. A failed fetch is never shown as an empty
// result.
func (c *Container) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.loading:
		return ViewLoading
	case c.err != nil:
		return ViewError
	case !c.loaded:
		return ViewLoading
	case len(c.filtered) == 0:
		return ViewEmpty
	default:
		return ViewResults
	}
}

// Stats summarizes the loaded advocates.
func (c *Container) Stats() search.Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return search.ComputeStats(c.advocates)
}

// FilterOptions lists filter values present in the loaded advocates.
func (c *Container) FilterOptions() search.FilterOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return search.ComputeFilterOptions(c.advocates)
}

// Snapshot copies the full state.
func (c *Container) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Advocates:         cloneAdvocates(c.advocates),
		FilteredAdvocates: cloneAdvocates(c.filtered),
		SearchQuery:       c.query,
		Filters:           c.filters,
		Loading:           c.loading,
		Err:               c.err,
		Pagination:        c.pagination,
		History:           slices.Clone(c.entries),
	}
}

func cloneAdvocates(in []models.Advocate) []models.Advocate {
	out := make([]models.Advocate, len(in))
	for i, a := range in {
		a.Specialties = slices.Clone(a.Specialties)
		out[i] = a
	}
	return out
}
