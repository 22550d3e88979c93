package store

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/config"
	"github.com/signadot/flightcache/debug"
	"github.com/signadot/flightcache/flight"
)

// Store holds the published state and drives merges into it.
type Store struct {
	fetcher Fetcher
	cfg     *config.Config
	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time

	current atomic.Pointer[State]
	// mu serializes Apply so that merges of one store do not supersede each
	// other.
	mu sync.Mutex

	group     singleflight.Group
	sem       *semaphore.Weighted
	prefetchd *prefetchCache
}

// New returns a store fetching flight data with fetcher, which may be nil
// for stores only fed through Apply.
func New(fetcher Fetcher, opts ...Option) *Store {
	s := &Store{fetcher: fetcher}
	for _, o := range opts {
		o(s)
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.current.Load() == nil {
		s.current.Store(initialState())
	}
	s.sem = semaphore.NewWeighted(int64(s.cfg.Prefetch.Concurrency))
	s.prefetchd = newPrefetchCache(s.cfg.Prefetch.TTL.D(), s.cfg.Prefetch.Entries)
	return s
}

// Current returns the published state.
func (s *Store) Current() *State {
	return s.current.Load()
}

// Begin starts a merge from the published state.
func (s *Store) Begin() *Merge {
	st := s.Current()
	return &Merge{base: st, cache: st.Cache, tree: st.Tree, metrics: s.metrics}
}

// Commit publishes the result of m. It fails with ErrSuperseded when
// another commit happened since m began.
func (s *Store) Commit(m *Merge) (*State, error) {
	if m.done {
		return nil, ErrMergeDone
	}
	m.done = true
	snap, compacted := s.maybeCompact(m.cache)
	next := &State{
		ID:      uuid.New(),
		Version: m.base.Version + 1,
		Cache:   snap,
		Tree:    m.tree,
	}
	if !s.current.CompareAndSwap(m.base, next) {
		s.metrics.Commits.WithLabelValues("superseded").Inc()
		s.log.Debug("merge superseded", "base", m.base.ID, "version", m.base.Version)
		return nil, ErrSuperseded
	}
	s.metrics.Commits.WithLabelValues("published").Inc()
	if compacted {
		s.metrics.Compactions.Inc()
	}
	s.metrics.ArenaNodes.Set(float64(snap.Len()))
	s.metrics.LiveNodes.Set(float64(snap.Count()))
	if debug.Store() {
		debug.Logf("published %s\n", next)
	}
	s.log.Info("published cache", "id", next.ID, "version", next.Version, "applied", m.applied, "compacted", compacted)
	return next, nil
}

// Apply merges data into the published state and publishes the result. It
// returns the new state and the number of paths applied.
func (s *Store) Apply(data flight.Data, prefetched bool) (*State, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.Begin()
	for i := range data {
		if _, err := m.Apply(data[i], prefetched); err != nil {
			return nil, m.applied, err
		}
	}
	st, err := s.Commit(m)
	if err != nil {
		return nil, m.applied, err
	}
	return st, m.applied, nil
}

func (s *Store) maybeCompact(snap *cache.Snapshot) (*cache.Snapshot, bool) {
	c := s.cfg.Compact
	if snap.Len() < c.MinNodes || cache.Garbage(snap) < c.Ratio {
		return snap, false
	}
	res := cache.Compact(snap)
	if debug.Store() {
		debug.Logf("compacted arena %d -> %d\n", snap.Len(), res.Len())
	}
	return res, true
}
