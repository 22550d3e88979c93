// Package server exposes a store over JSON-RPC 2.0.
//
// Methods:
//
//	apply     {data, prefetched}  merge flight data, publish
//	navigate  {url}               navigate through the store fetcher
//	prefetch  {url}               prefetch through the store fetcher
//	snapshot  {format}            the published cache
//	tree      {}                  the published router state
//	query     {expr}              paths of matching cache nodes
//	metrics   {prefix}            metric families in the text exposition format
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.lsp.dev/jsonrpc2"

	"github.com/signadot/flightcache/debug"
	"github.com/signadot/flightcache/store"
)

type Server struct {
	store    *store.Store
	log      *slog.Logger
	gatherer prometheus.Gatherer
}

type Option func(*Server)

// WithGatherer sets the registry answering the metrics method.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func New(st *store.Store, log *slog.Logger, opts ...Option) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{store: st, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Serve answers requests read from rwc until the peer closes it or ctx is
// done.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	conn.Go(ctx, s.Handler())
	s.log.Info("serving")
	select {
	case <-ctx.Done():
		conn.Close()
		<-conn.Done()
		return ctx.Err()
	case <-conn.Done():
	}
	if err := conn.Err(); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
		return err
	}
	return nil
}

// Handler returns the JSON-RPC handler of s.
func (s *Server) Handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		if debug.Server() {
			debug.Logf("rpc %s %s\n", req.Method(), string(req.Params()))
		}
		m, ok := methods[req.Method()]
		if !ok {
			return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
		}
		res, err := m(s, ctx, req.Params())
		if err != nil {
			s.log.Warn("rpc failed", "method", req.Method(), "error", err)
		}
		return reply(ctx, res, err)
	}
}

type method func(s *Server, ctx context.Context, params json.RawMessage) (any, error)

var methods = map[string]method{
	"apply":    (*Server).apply,
	"navigate": (*Server).navigate,
	"prefetch": (*Server).prefetch,
	"snapshot": (*Server).snapshot,
	"tree":     (*Server).tree,
	"query":    (*Server).query,
	"metrics":  (*Server).metrics,
}

func decodeParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return fmt.Errorf("%w: %w", jsonrpc2.ErrInvalidParams, err)
	}
	return nil
}
