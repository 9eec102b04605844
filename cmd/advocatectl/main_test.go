package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/advocate/handler"
	"advocatehub/internal/advocate/models"
	"advocatehub/internal/advocate/service"
	"advocatehub/internal/advocate/store"
	"advocatehub/internal/search"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewInMemory()
	_, err := store.Seed(context.Background(), st, store.DefaultSeed())
	require.NoError(t, err)

	r := chi.NewRouter()
	handler.New(service.New(st), slog.New(slog.DiscardHandler)).Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, func(string) string { return "" })
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

type searchOutput struct {
	Data       []models.Advocate `json:"data"`
	Pagination search.Pagination `json:"pagination"`
}

func TestSearchSendsFiltersToServer(t *testing.T) {
	srv := newServer(t)

	out, err := execute(t, "--server", srv.URL, "--json", "search", "--city", "new york")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Data, 2)
	assert.Equal(t, "Sarah", got.Data[0].FirstName)
	assert.Equal(t, "Ashley", got.Data[1].FirstName)
	assert.Equal(t, 2, got.Pagination.Total)
}

func TestSearchTable(t *testing.T) {
	srv := newServer(t)

	out, err := execute(t, "--server", srv.URL, "search", "pain")
	require.NoError(t, err)
	assert.Contains(t, out, "Sarah Johnson")
	assert.Contains(t, out, "Maria Garcia")
	assert.NotContains(t, out, "Michael Chen")
	assert.Contains(t, out, "showing 2 of 2 (page 1/1)")
}

func TestSearchLocalFiltersLoadedPages(t *testing.T) {
	srv := newServer(t)

	out, err := execute(t, "--server", srv.URL, "--limit", "5", "--json", "search", "--local", "--pages", "3", "--degree", "JD")
	require.NoError(t, err)

	var got searchOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Jennifer", got.Data[0].FirstName)
	assert.Equal(t, 15, got.Pagination.Total, "server total is unfiltered")
	assert.Equal(t, 3, got.Pagination.Page)
}

func TestSearchLocalOnFirstPageOnly(t *testing.T) {
	srv := newServer(t)

	out, err := execute(t, "--server", srv.URL, "--limit", "5", "search", "--local", "--degree", "JD")
	require.NoError(t, err)
	assert.Contains(t, out, "No advocates found")
}

func TestStats(t *testing.T) {
	srv := newServer(t)

	out, err := execute(t, "--server", srv.URL, "--limit", "100", "--json", "stats")
	require.NoError(t, err)

	var got struct {
		Stats   search.Stats         `json:"stats"`
		Options search.FilterOptions `json:"filterOptions"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 15, got.Stats.TotalAdvocates)
	assert.Equal(t, 12, got.Stats.CitiesCount)
	assert.Equal(t, 2, got.Stats.ExperienceDistribution["0-2"])
	assert.Len(t, got.Options.Experience, len(search.Buckets))
}

func TestHistoryWithoutStore(t *testing.T) {
	out, err := execute(t, "--server", "http://127.0.0.1:0", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No recent searches")
}

func TestSearchReportsServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to fetch advocates"}`))
	}))
	t.Cleanup(srv.Close)

	_, err := execute(t, "--server", srv.URL, "search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch advocates")
}
