package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/jsonrpc2"

	"github.com/signadot/flightcache/flight"
	"github.com/signadot/flightcache/parse"
	"github.com/signadot/flightcache/store"
)

func TestServe(t *testing.T) {
	st := store.New(nil, store.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	srv := New(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	a, b := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ctx, a) }()

	client := jsonrpc2.NewConn(jsonrpc2.NewStream(b))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	defer client.Close()

	v, err := parse.Any([]byte(`[[["", {children: [a, {}]}], ["", {children: [a, {}, A]}, R], H]]`))
	require.NoError(t, err)

	var applied StateResult
	_, err = client.Call(ctx, "apply", ApplyParams{Data: v.([]any)}, &applied)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), applied.Version)
	assert.Equal(t, 1, applied.Applied)
	assert.Equal(t, 2, applied.Nodes)

	var snap SnapshotResult
	_, err = client.Call(ctx, "snapshot", SnapshotParams{}, &snap)
	require.NoError(t, err)
	require.NotNil(t, snap.Document)
	assert.Equal(t, "R", snap.Document.Content)
	assert.Equal(t, "H", snap.Document.Routes["children"]["a"].Head)

	_, err = client.Call(ctx, "snapshot", SnapshotParams{Format: "text"}, &snap)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(snap.Text, `/ READY "R"`), snap.Text)

	var paths []string
	_, err = client.Call(ctx, "query", QueryParams{Expr: `content == "A"`}, &paths)
	require.NoError(t, err)
	assert.Equal(t, []string{"/children:a"}, paths)

	var tree []any
	_, err = client.Call(ctx, "tree", nil, &tree)
	require.NoError(t, err)
	assert.Len(t, tree, 2)

	_, err = client.Call(ctx, "navigate", URLParams{URL: "/a"}, nil)
	assert.Error(t, err)
	_, err = client.Call(ctx, "nosuch", nil, nil)
	assert.Error(t, err)
	_, err = client.Call(ctx, "query", QueryParams{Expr: "depth +"}, &paths)
	assert.Error(t, err)

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
}

func TestNavigateAndMetrics(t *testing.T) {
	fetch := store.FetcherFunc(func(_ context.Context, req store.Request) (flight.Data, error) {
		return parse.Data([]byte(`[[["", {children: [a, {}]}], ["", {children: [a, {}, A]}, R], H]]`))
	})
	reg := prometheus.NewRegistry()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(fetch, store.WithLogger(log), store.WithMetrics(store.NewMetrics(reg)))
	srv := New(st, log, WithGatherer(reg))
	a, b := net.Pipe()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Serve(ctx, a)

	client := jsonrpc2.NewConn(jsonrpc2.NewStream(b))
	client.Go(ctx, jsonrpc2.MethodNotFoundHandler)
	defer client.Close()

	var res StateResult
	_, err := client.Call(ctx, "navigate", URLParams{URL: "/a"}, &res)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Applied)
	assert.Equal(t, uint64(1), res.Version)

	var m MetricsResult
	_, err = client.Call(ctx, "metrics", MetricsParams{Prefix: "flightcache_merges"}, &m)
	require.NoError(t, err)
	assert.Contains(t, m.Text, `flightcache_merges_total{result="applied"} 1`)
	assert.NotContains(t, m.Text, "flightcache_commits_total")
}

func TestMetricsWithoutRegistry(t *testing.T) {
	srv := New(store.New(nil), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := srv.metrics(context.Background(), nil)
	assert.Error(t, err)
}
