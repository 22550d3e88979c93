package store

import (
	"context"
	"sync"
	"time"

	"github.com/signadot/flightcache/debug"
	"github.com/signadot/flightcache/flight"
)

// Prefetch fetches the flight data of url ahead of a navigation. Concurrent
// prefetches of one url share a fetch, and at most the configured number of
// fetches run at a time. Nothing is merged until Navigate.
func (s *Store) Prefetch(ctx context.Context, url string) error {
	if _, ok := s.prefetchd.get(url, s.now()); ok {
		return nil
	}
	_, err, shared := s.group.Do(url, func() (any, error) {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		defer s.sem.Release(1)
		data, err := s.fetch(ctx, Request{URL: url, Tree: s.Current().Tree, Prefetch: true})
		if err != nil {
			return nil, err
		}
		s.prefetchd.put(url, data, s.now())
		return data, nil
	})
	if debug.Store() {
		debug.Logf("prefetch %s shared=%t err=%v\n", url, shared, err)
	}
	return err
}

type prefetchEntry struct {
	data flight.Data
	at   time.Time
}

// prefetchCache keeps prefetched responses for ttl, dropping the oldest
// beyond max entries.
type prefetchCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	max     int
	entries map[string]prefetchEntry
}

func newPrefetchCache(ttl time.Duration, max int) *prefetchCache {
	return &prefetchCache{ttl: ttl, max: max, entries: map[string]prefetchEntry{}}
}

func (c *prefetchCache) get(url string, now time.Time) (flight.Data, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	if now.Sub(e.at) > c.ttl {
		delete(c.entries, url)
		return nil, false
	}
	return e.data, true
}

func (c *prefetchCache) put(url string, data flight.Data, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = prefetchEntry{data: data, at: now}
	for len(c.entries) > c.max {
		oldest := ""
		var at time.Time
		for k, e := range c.entries {
			if oldest == "" || e.at.Before(at) {
				oldest, at = k, e.at
			}
		}
		delete(c.entries, oldest)
	}
}

func (c *prefetchCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
