package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"advocatehub/internal/advocate/metrics"
	"advocatehub/internal/advocate/models"
	"advocatehub/internal/search"
	"advocatehub/internal/searchevents"
	dErrors "advocatehub/pkg/domain-errors"
)

// Store is the read side of the advocate store.
type Store interface {
	List(ctx context.Context, plan search.Plan, offset, limit int) ([]models.Advocate, error)
	Count(ctx context.Context, plan search.Plan) (int, error)
}

// Service answers advocate searches. Each search compiles its criteria once
// and hands the same plan to the page read and the count read.
type Service struct {
	store     Store
	logger    *slog.Logger
	metrics   *metrics.Metrics
	publisher searchevents.Publisher
	tracer    trace.Tracer
	now       func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPublisher sends one search event per executed search.
func WithPublisher(p searchevents.Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithClock replaces time.Now for event timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New constructs a Service.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
		tracer: otel.Tracer("advocatehub/internal/advocate/service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns one page of advocates matching c. Out-of-range paging is
// clamped, and a page past the end is empty rather than an error. Store
// failures come back as an internal error without their cause.
func (s *Service) Search(ctx context.Context, c search.Criteria) (*search.Page, error) {
	start := s.now()
	c = search.Normalize(c)
	plan := search.Compile(c)

	ctx, span := s.tracer.Start(ctx, "advocate.Search", trace.WithAttributes(
		attribute.Int("search.page", c.Page),
		attribute.Int("search.limit", c.Limit),
		attribute.Int("search.predicates", len(plan.Predicates)),
	))
	defer span.End()
	s.recordFilterUsage(c)

	var (
		rows  []models.Advocate
		total int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.store.List(gctx, plan, search.Offset(c.Page, c.Limit), c.Limit)
		if err != nil {
			s.metrics.IncrementStoreFailure("list")
		}
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.store.Count(gctx, plan)
		if err != nil {
			s.metrics.IncrementStoreFailure("count")
		}
		return err
	})

	event := searchevents.NewEvent(ctx, c, start)
	if err := g.Wait(); err != nil {
		elapsed := s.now().Sub(start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "store read failed")
		s.logger.ErrorContext(ctx, "advocate search failed",
			"page", c.Page,
			"limit", c.Limit,
			"error", err,
		)
		s.metrics.ObserveSearch(metrics.OutcomeError, elapsed)
		event.Outcome = searchevents.OutcomeError
		event.DurationMS = elapsed.Milliseconds()
		s.publish(ctx, event)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch advocates")
	}

	page := search.NewPage(rows, c.Page, c.Limit, total)
	elapsed := s.now().Sub(start)
	span.SetAttributes(
		attribute.Int("search.total", total),
		attribute.Int("search.returned", len(page.Data)),
	)
	s.metrics.ObserveSearch(metrics.OutcomeOK, elapsed)
	s.metrics.ObserveTotal(total)

	event.Outcome = searchevents.OutcomeOK
	event.Total = total
	event.Returned = len(page.Data)
	event.DurationMS = elapsed.Milliseconds()
	s.publish(ctx, event)
	return page, nil
}

func (s *Service) publish(ctx context.Context, event searchevents.Event) {
	if s.publisher != nil {
		s.publisher.Publish(ctx, event)
	}
}

func (s *Service) recordFilterUsage(c search.Criteria) {
	used := map[string]string{
		search.ParamSearch:     c.Query,
		search.ParamCity:       c.City,
		search.ParamSpecialty:  c.Specialty,
		search.ParamDegree:     c.Degree,
		search.ParamExperience: c.Experience,
	}
	for name, value := range used {
		if value != "" {
			s.metrics.IncrementFilterUsage(name)
		}
	}
}
