package main

import (
	"context"
	"fmt"
	"io"
		"os"
	"time"

	"github.com/spf13/cobra"

	"advocatehub/internal/client"
	"advocatehub/internal/client/state"
	"advocatehub/internal/platform/config"
	"advocatehub/internal/platform/logger"
	"advocatehub/internal/platform/redis"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	server   string
	redisURL string
	logLevel string
	pageSize int
	timeout  time.Duration
	json     bool
}

// session is a state container wired to the server and the history store.
type session struct {
	container *state.Container
	close     func()
}

func newRootCmd(out io.Writer, getenv func(string) string) *cobra.Command {
	opts := &options{}
	cfg := config.Config{}
	cfg.ApplyDefaults()

	root := &cobra.Command{
		Use:   "advocatectl",
		Short: "Search the advocate directory",
		Long: `advocatectl queries an advocatehub server.

Search history is kept in Redis when --redis-url (or REDIS_URL) is set and
only for the current invocation otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	defaultServer := getenv("ADVOCATEHUB_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.server, "server", defaultServer, "advocatehub base URL")
	flags.StringVar(&opts.redisURL, "redis-url", getenv(config.EnvRedis), "Redis URL for search history")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.IntVar(&opts.pageSize, "limit", cfg.Search.PageSize, "results per page")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "request timeout")
	flags.BoolVar(&opts.json, "json", false, "print JSON instead of a table")

	root.AddCommand(
		newSearchCmd(opts),
		newStatsCmd(opts),
		newHistoryCmd(opts),
	)
	return root
}

// open builds a state container for one command run.
func (o *options) open(ctx context.Context) (*session, error) {
	log := logger.New(o.logLevel, "text", os.Stderr)
	containerOpts := []state.Option{
		state.WithLogger(log),
		state.WithPageSize(o.pageSize),
	}

	closeFn := func() {}
	if o.redisURL != "" {
		cfg := config.Config{Redis: config.RedisConfig{URL: o.redisURL}}
		cfg.ApplyDefaults()
		rc, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect history store: %w", err)
		}
		containerOpts = append(containerOpts, state.WithHistory(state.NewRedisHistory(rc.Client, cfg.Redis.HistoryKey, cfg.Redis.HistoryTTL)))
		closeFn = func() { _ = rc.Close() }
	}

	c := state.New(client.New(o.server), containerOpts...)
	if err := c.LoadHistory(ctx); err != nil {
		closeFn()
		return nil, fmt.Errorf("load search history: %w", err)
	}
	return &session{container: c, close: closeFn}, nil
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}
