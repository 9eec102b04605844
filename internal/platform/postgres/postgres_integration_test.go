//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/platform/config"
	"advocatehub/pkg/testutil/containers"
)

func TestOpen(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.GetManager().GetPostgres(t)
	cfg := config.Config{Database: config.DatabaseConfig{URL: pg.DSN, MaxOpenConns: 3}}
	cfg.ApplyDefaults()

	db, err := Open(context.Background(), cfg.Database)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func TestOpenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := Open(ctx, config.DatabaseConfig{URL: "postgres://nobody@127.0.0.1:1/none?sslmode=disable"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping postgres")
}
