package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/flight"
)

// State is a published cache snapshot and the router state it renders.
type State struct {
	ID      uuid.UUID
	Version uint64
	Cache   *cache.Snapshot
	Tree    *flight.RouterState
}

func initialState() *State {
	return &State{ID: uuid.New(), Cache: cache.Empty()}
}

func (s *State) String() string {
	return fmt.Sprintf("state %s v%d nodes=%d/%d", s.ID, s.Version, s.Cache.Count(), s.Cache.Len())
}
