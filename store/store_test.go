package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/config"
	"github.com/signadot/flightcache/flight"
	"github.com/signadot/flightcache/parse"
)

var responses = map[string]string{
	"/a":    `[[["", {children: [a, {children: [b, {}]}]}], ["", {children: [a, {}, A]}, R], H]]`,
	"/a/b":  `[[children, a, children, b, [b, {}], [b, {}, B], Hb]]`,
	"/x/y":  `[[children, x, children, y, [y, {}], [y, {}, Y], Hy]]`,
	"/tree": `[[["", {modal: [login, {}]}], null, null]]`,
}

func mustData(t testing.TB, url string) flight.Data {
	t.Helper()
	d, err := parse.Data([]byte(responses[url]))
	require.NoError(t, err)
	return d
}

// fakeFetcher serves responses, counting fetches per url.
type fakeFetcher struct {
	t        testing.TB
	calls    atomic.Int32
	inFlight atomic.Int32
	maxIn    atomic.Int32
	delay    time.Duration
	release  chan struct{}

	mu   sync.Mutex
	reqs []Request
}

func (f *fakeFetcher) Fetch(ctx context.Context, req Request) (flight.Data, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxIn.Load()
		if n <= m || f.maxIn.CompareAndSwap(m, n) {
			break
		}
	}
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	time.Sleep(f.delay)
	if _, ok := responses[req.URL]; !ok {
		return nil, errors.New("not found")
	}
	return mustData(f.t, req.URL), nil
}

func testConfig(mod func(*config.Config)) *config.Config {
	c := config.Default()
	if mod != nil {
		mod(c)
	}
	return c
}

func TestApplyPublishes(t *testing.T) {
	s := New(nil)
	initial := s.Current()
	st, n, err := s.Apply(mustData(t, "/a"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint64(1), st.Version)
	assert.Same(t, st, s.Current())
	assert.NotEqual(t, initial.ID, st.ID)
	assert.Equal(t, "R", st.Cache.RootNode().Content)
	assert.NoError(t, cache.Validate(st.Cache))
	assert.Equal(t, cache.Empty().Root(), initial.Cache.Root())

	st, n, err = s.Apply(mustData(t, "/a/b"), false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	b := st.Cache.Node(st.Cache.Lookup(
		cache.Key{Slot: "children", Segment: "a"},
		cache.Key{Slot: "children", Segment: "b"},
	))
	require.NotNil(t, b)
	assert.Equal(t, cache.Ready, b.Status)
	assert.Equal(t, "Hb", b.Head)
}

func TestTreeOnlyUpdate(t *testing.T) {
	s := New(nil)
	_, _, err := s.Apply(mustData(t, "/a"), false)
	require.NoError(t, err)
	before := s.Current()
	st, n, err := s.Apply(mustData(t, "/tree"), true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Same(t, before.Cache, st.Cache)
	assert.Contains(t, st.Tree.Routes, "modal")
	assert.Contains(t, st.Tree.Routes, "children")
}

func TestCommitSuperseded(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(nil, WithMetrics(NewMetrics(reg)))
	data := mustData(t, "/a")
	m1, m2 := s.Begin(), s.Begin()
	for _, m := range []*Merge{m1, m2} {
		ok, err := m.Apply(data[0], false)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, err := s.Commit(m1)
	require.NoError(t, err)
	_, err = s.Commit(m2)
	assert.ErrorIs(t, err, ErrSuperseded)
	_, err = s.Commit(m1)
	assert.ErrorIs(t, err, ErrMergeDone)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Commits.WithLabelValues("superseded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.Commits.WithLabelValues("published")))
	assert.Equal(t, 2.0, testutil.ToFloat64(s.metrics.Merges.WithLabelValues("applied")))
}

func TestConcurrentCommits(t *testing.T) {
	s := New(nil)
	_, _, err := s.Apply(mustData(t, "/a"), false)
	require.NoError(t, err)
	data := mustData(t, "/a/b")

	const writers = 8
	var superseded atomic.Int32
	stop := make(chan struct{})
	var g errgroup.Group
	var readers errgroup.Group
	readers.Go(func() error {
		for {
			select {
			case <-stop:
				return nil
			default:
			}
			if err := cache.Validate(s.Current().Cache); err != nil {
				return err
			}
		}
	})
	for range writers {
		g.Go(func() error {
			for {
				m := s.Begin()
				if _, err := m.Apply(data[0], false); err != nil {
					return err
				}
				_, err := s.Commit(m)
				if errors.Is(err, ErrSuperseded) {
					superseded.Add(1)
					continue
				}
				return err
			}
		})
	}
	require.NoError(t, g.Wait())
	close(stop)
	require.NoError(t, readers.Wait())
	assert.Equal(t, uint64(writers+1), s.Current().Version)
	t.Logf("%d superseded commits", superseded.Load())
}

func TestHardNavigate(t *testing.T) {
	s := New(nil)
	_, _, err := s.Apply(mustData(t, "/a"), false)
	require.NoError(t, err)
	before := s.Current()
	_, _, err = s.Apply(mustData(t, "/x/y"), false)
	assert.ErrorIs(t, err, ErrHardNavigate)
	assert.Same(t, before, s.Current())
}

func TestNavigateUsesPrefetch(t *testing.T) {
	f := &fakeFetcher{t: t}
	reg := prometheus.NewRegistry()
	s := New(f, WithMetrics(NewMetrics(reg)))
	ctx := context.Background()

	require.NoError(t, s.Prefetch(ctx, "/a"))
	require.NoError(t, s.Prefetch(ctx, "/a"))
	st, n, err := s.Navigate(ctx, "/a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int32(1), f.calls.Load())
	assert.True(t, f.reqs[0].Prefetch)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.PrefetchHits))
	assert.Equal(t, "R", st.Cache.RootNode().Content)

	st, n, err = s.Navigate(ctx, "/a/b")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint64(2), st.Version)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.False(t, f.reqs[1].Prefetch)
	assert.NotNil(t, f.reqs[1].Tree)

	_, _, err = s.Navigate(ctx, "/missing")
	assert.Error(t, err)
}

func TestPrefetchExpires(t *testing.T) {
	f := &fakeFetcher{t: t}
	now := time.Unix(1000, 0)
	s := New(f,
		WithConfig(testConfig(func(c *config.Config) { c.Prefetch.TTL = config.Duration(time.Second) })),
		WithClock(func() time.Time { return now }),
	)
	ctx := context.Background()
	require.NoError(t, s.Prefetch(ctx, "/a"))
	now = now.Add(2 * time.Second)
	_, _, err := s.Navigate(ctx, "/a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, 0, s.prefetchd.size())
}

func TestPrefetchDedupe(t *testing.T) {
	f := &fakeFetcher{t: t, release: make(chan struct{})}
	s := New(f)
	ctx := context.Background()
	var g errgroup.Group
	for range 10 {
		g.Go(func() error { return s.Prefetch(ctx, "/a") })
	}
	time.Sleep(50 * time.Millisecond)
	close(f.release)
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestPrefetchConcurrencyLimit(t *testing.T) {
	f := &fakeFetcher{t: t, delay: 20 * time.Millisecond}
	s := New(f, WithConfig(testConfig(func(c *config.Config) {
		c.Prefetch.Concurrency = 2
		c.Prefetch.Entries = 2
	})))
	urls := []string{"/a", "/a/b", "/x/y", "/tree", "/none", "/other"}
	var g errgroup.Group
	for _, u := range urls {
		g.Go(func() error {
			_ = s.Prefetch(context.Background(), u)
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.LessOrEqual(t, f.maxIn.Load(), int32(2))
	assert.Equal(t, int32(len(urls)), f.calls.Load())
	assert.LessOrEqual(t, s.prefetchd.size(), 2)
}

func TestPrefetchCanceled(t *testing.T) {
	f := &fakeFetcher{t: t, release: make(chan struct{})}
	s := New(f)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Prefetch(ctx, "/a"), context.Canceled)
	assert.Equal(t, 0, s.prefetchd.size())
}

func TestCompaction(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := New(nil,
		WithMetrics(NewMetrics(reg)),
		WithConfig(testConfig(func(c *config.Config) {
			c.Compact.MinNodes = 4
			c.Compact.Ratio = 0.3
		})),
	)
	for range 4 {
		_, _, err := s.Apply(mustData(t, "/a"), false)
		require.NoError(t, err)
	}
	st := s.Current()
	assert.Positive(t, testutil.ToFloat64(s.metrics.Compactions))
	assert.LessOrEqual(t, cache.Garbage(st.Cache), 0.3)
	assert.NoError(t, cache.Validate(st.Cache))
	assert.Equal(t, float64(st.Cache.Count()), testutil.ToFloat64(s.metrics.LiveNodes))
}

func TestNoFetcher(t *testing.T) {
	_, _, err := New(nil).Navigate(context.Background(), "/a")
	assert.ErrorIs(t, err, ErrNoFetcher)
}
