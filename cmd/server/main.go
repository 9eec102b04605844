package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"advocatehub/internal/advocate/handler"
	advocatemetrics "advocatehub/internal/advocate/metrics"
	"advocatehub/internal/advocate/service"
	"advocatehub/internal/advocate/store"
	"advocatehub/internal/platform/config"
	"advocatehub/internal/platform/httpserver"
	"advocatehub/internal/platform/kafka"
	"advocatehub/internal/platform/logger"
	"advocatehub/internal/platform/metrics"
	"advocatehub/internal/platform/postgres"
	"advocatehub/internal/searchevents"
	httptransport "advocatehub/internal/transport/http"
)

// main wires dependencies, exposes the HTTP router and manages the server
// lifecycle. Business logic lives in the internal service packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

type advocateStore interface {
	service.Store
	store.Seeder
	Ping(ctx context.Context) error
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	st, closeStore, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	publisher, closePublisher, err := buildPublisher(ctx, cfg.Kafka, log)
	if err != nil {
		return err
	}
	defer closePublisher()

	svc := service.New(st,
		service.WithLogger(log),
		service.WithMetrics(advocatemetrics.New()),
		service.WithPublisher(publisher),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  metrics.NewHTTP(prometheus.DefaultRegisterer),
		Gatherer: prometheus.DefaultGatherer,
		Health:   map[string]httptransport.HealthCheck{"database": st.Ping},
		Routes:   []httptransport.Registrar{handler.New(svc, log)},
	})
	srv := httpserver.New(cfg.HTTP, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting advocatehub", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore selects PostgreSQL when a database URL is configured and the
// seeded in-memory store otherwise.
func openStore(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) (advocateStore, func(), error) {
	if cfg.URL == "" {
		st := store.NewInMemory()
		if _, err := store.Seed(ctx, st, store.DefaultSeed()); err != nil {
			return nil, nil, err
		}
		log.Info("using in-memory advocate store")
		return st, func() {}, nil
	}

	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	st := store.NewPostgres(db)
	if err := st.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if cfg.Seed {
		var n int
		err := st.RunInTx(ctx, func(ctx context.Context) error {
			var err error
			n, err = store.Seed(ctx, st, store.DefaultSeed())
			return err
		})
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("seeded advocates", "count", n)
	}
	return st, func() { _ = db.Close() }, nil
}

// buildPublisher always logs search events and additionally streams them to
// Kafka when brokers are configured.
func buildPublisher(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) (searchevents.Publisher, func(), error) {
	logPublisher := searchevents.NewLogPublisher(log)
	client, err := kafka.NewClient(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return logPublisher, func() {}, nil
	}

	if err := searchevents.EnsureTopic(ctx, client, cfg.Topic, cfg.Partitions, cfg.Replicas); err != nil {
		client.Close()
		return nil, nil, err
	}
	eventMetrics := searchevents.NewMetrics(prometheus.DefaultRegisterer)
	kafkaPublisher := searchevents.NewKafkaPublisher(client, cfg.Topic,
		searchevents.WithLogger(log),
		searchevents.WithMetrics(eventMetrics),
	)
	publisher := searchevents.Fanout{
		logPublisher,
		searchevents.NewSampler(kafkaPublisher, cfg.SampleRate, eventMetrics),
	}
	return publisher, func() { closeKafka(client, kafkaPublisher, log) }, nil
}

func closeKafka(client *kgo.Client, p *searchevents.KafkaPublisher, log *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Flush(ctx); err != nil {
		log.Warn("failed to flush search events", "error", err)
	}
	client.Close()
}
