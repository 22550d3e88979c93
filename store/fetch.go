package store

import (
	"context"
	"fmt"
	"time"

	"github.com/signadot/flightcache/flight"
)

// Request describes a fetch of flight data for a url.
type Request struct {
	URL string
	// Tree is the router state the response will be applied to.
	Tree     *flight.RouterState
	Prefetch bool
}

// Fetcher obtains flight data from the server.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (flight.Data, error)
}

type FetcherFunc func(ctx context.Context, req Request) (flight.Data, error)

func (f FetcherFunc) Fetch(ctx context.Context, req Request) (flight.Data, error) {
	return f(ctx, req)
}

func (s *Store) fetch(ctx context.Context, req Request) (flight.Data, error) {
	if s.fetcher == nil {
		return nil, ErrNoFetcher
	}
	kind := "navigate"
	if req.Prefetch {
		kind = "prefetch"
	}
	start := time.Now()
	data, err := s.fetcher.Fetch(ctx, req)
	s.metrics.FetchSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	return data, nil
}

// Navigate merges the flight data of url into the published state. Fresh
// prefetched data is used when available, otherwise the data is fetched.
// It returns the new state and the number of paths applied.
func (s *Store) Navigate(ctx context.Context, url string) (*State, int, error) {
	data, ok := s.prefetchd.get(url, s.now())
	if ok {
		s.metrics.PrefetchHits.Inc()
	} else {
		var err error
		data, err = s.fetch(ctx, Request{URL: url, Tree: s.Current().Tree})
		if err != nil {
			return nil, 0, err
		}
	}
	st, n, err := s.Apply(data, ok)
	if err != nil {
		s.log.Warn("navigation failed", "url", url, "prefetched", ok, "error", err)
		return nil, n, err
	}
	s.log.Info("navigated", "url", url, "prefetched", ok, "applied", n, "version", st.Version)
	return st, n, nil
}
