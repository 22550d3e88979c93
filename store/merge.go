package store

import (
	"errors"
	"fmt"

	"github.com/signadot/flightcache"
	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/flight"
)

// Merge accumulates flight data paths on top of a published state. Each
// applied path yields an intermediate snapshot; nothing is visible to
// readers until the merge is committed. A Merge is used by one goroutine.
type Merge struct {
	base    *State
	cache   *cache.Snapshot
	tree    *flight.RouterState
	applied int
	done    bool
	metrics *Metrics
}

// Base returns the state m started from.
func (m *Merge) Base() *State {
	return m.base
}

// Cache returns the snapshot accumulated so far.
func (m *Merge) Cache() *cache.Snapshot {
	return m.cache
}

func (m *Merge) Tree() *flight.RouterState {
	return m.tree
}

func (m *Merge) Applied() int {
	return m.applied
}

// Apply merges p. The router state is patched whether or not p carries
// rendered content; the cache only when it does, in which case Apply
// reports true. A router state that no longer matches p gives
// ErrHardNavigate and leaves m unchanged.
func (m *Merge) Apply(p flight.DataPath, prefetched bool) (bool, error) {
	if m.done {
		return false, ErrMergeDone
	}
	var tree *flight.RouterState
	if m.tree == nil && p.IsRoot() {
		tree = p.TreePatch
	} else {
		tree = flight.ApplyPatch(m.tree, p.Steps, p.TreePatch)
	}
	if tree == nil {
		m.metrics.Merges.WithLabelValues("error").Inc()
		return false, fmt.Errorf("%w: at %s", ErrHardNavigate, &p)
	}
	b := cache.NewBuilder(m.cache)
	shell := b.New()
	ok, err := flightcache.ApplyFlightData(b, m.cache.Root(), shell, p, prefetched)
	if err != nil {
		m.metrics.Merges.WithLabelValues("error").Inc()
		if errors.Is(err, cache.ErrInvariant) {
			err = fmt.Errorf("%w: %w", ErrHardNavigate, err)
		}
		return false, err
	}
	m.tree = tree
	if !ok {
		m.metrics.Merges.WithLabelValues("skipped").Inc()
		return false, nil
	}
	next, err := b.Build(shell)
	if err != nil {
		return false, err
	}
	m.cache = next
	m.applied++
	m.metrics.Merges.WithLabelValues("applied").Inc()
	return true, nil
}
