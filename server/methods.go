package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/common/expfmt"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/encode"
	"github.com/signadot/flightcache/flight"
	"github.com/signadot/flightcache/query"
	"github.com/signadot/flightcache/store"
)

type ApplyParams struct {
	Data       []any `json:"data"`
	Prefetched bool  `json:"prefetched,omitempty"`
}

type URLParams struct {
	URL string `json:"url"`
}

type SnapshotParams struct {
	// Format is "text" or "document" (the default).
	Format string `json:"format,omitempty"`
}

type QueryParams struct {
	Expr string `json:"expr"`
}

type MetricsParams struct {
	// Prefix restricts the result to metric names starting with it.
	Prefix string `json:"prefix,omitempty"`
}

type MetricsResult struct {
	Text string `json:"text"`
}

type StateResult struct {
	ID      uuid.UUID `json:"id"`
	Version uint64    `json:"version"`
	Applied int       `json:"applied"`
	Nodes   int       `json:"nodes"`
}

type SnapshotResult struct {
	ID       uuid.UUID       `json:"id"`
	Version  uint64          `json:"version"`
	Document *cache.Document `json:"document,omitempty"`
	Text     string          `json:"text,omitempty"`
}

func stateResult(st *store.State, applied int) *StateResult {
	return &StateResult{ID: st.ID, Version: st.Version, Applied: applied, Nodes: st.Cache.Count()}
}

func (s *Server) apply(_ context.Context, params json.RawMessage) (any, error) {
	var p ApplyParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	data, err := flight.DecodeData(p.Data)
	if err != nil {
		return nil, err
	}
	st, n, err := s.store.Apply(data, p.Prefetched)
	if err != nil {
		return nil, err
	}
	return stateResult(st, n), nil
}

func (s *Server) navigate(ctx context.Context, params json.RawMessage) (any, error) {
	var p URLParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	st, n, err := s.store.Navigate(ctx, p.URL)
	if err != nil {
		return nil, err
	}
	return stateResult(st, n), nil
}

func (s *Server) prefetch(ctx context.Context, params json.RawMessage) (any, error) {
	var p URLParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	return nil, s.store.Prefetch(ctx, p.URL)
}

func (s *Server) snapshot(_ context.Context, params json.RawMessage) (any, error) {
	var p SnapshotParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	st := s.store.Current()
	res := &SnapshotResult{ID: st.ID, Version: st.Version}
	switch p.Format {
	case "", "document":
		doc, err := st.Cache.Document()
		if err != nil {
			return nil, err
		}
		res.Document = doc
	case "text":
		buf := bytes.NewBuffer(nil)
		if err := encode.Encode(st.Cache, buf); err != nil {
			return nil, err
		}
		res.Text = buf.String()
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", p.Format)
	}
	return res, nil
}

func (s *Server) tree(context.Context, json.RawMessage) (any, error) {
	return s.store.Current().Tree.Wire(), nil
}

func (s *Server) query(_ context.Context, params json.RawMessage) (any, error) {
	var p QueryParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	q, err := query.Compile(p.Expr)
	if err != nil {
		return nil, err
	}
	ms, err := q.Find(s.store.Current().Cache)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(ms))
	for i, m := range ms {
		res[i] = cache.PathString(m.Path)
	}
	return res, nil
}

func (s *Server) metrics(_ context.Context, params json.RawMessage) (any, error) {
	var p MetricsParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if s.gatherer == nil {
		return nil, errors.New("no metrics registry")
	}
	mfs, err := s.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(nil)
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), p.Prefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(buf, mf); err != nil {
			return nil, err
		}
	}
	return &MetricsResult{Text: buf.String()}, nil
}
