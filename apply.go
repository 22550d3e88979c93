package flightcache

import (
	"fmt"
	"maps"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/debug"
	"github.com/signadot/flightcache/flight"
)

// ApplyFlightData merges p into shell, a node allocated by b, using existing
// as the previous root. It reports whether shell is now a usable root. A
// path without rendered content leaves shell untouched and reports false.
//
// The returned error is non-nil only when the existing cache is corrupt.
func ApplyFlightData(b *cache.Builder, existing, shell cache.ID, p flight.DataPath, prefetched bool) (bool, error) {
	if !p.HasContent() {
		if debug.Apply() {
			debug.Logf("apply %s: no rendered content\n", &p)
		}
		return false, nil
	}
	ex, err := existingNode(b, existing)
	if err != nil {
		return false, err
	}
	if p.IsRoot() {
		if debug.Apply() {
			debug.Logf("apply root patch prefetched=%t\n", prefetched)
		}
		n := b.Mut(shell)
		n.Status = cache.Ready
		n.Content = p.Seed.Content
		n.Request = nil
		n.Routes = cloneRoutes(routesOf(ex))
		if err := FillLazyItemsTillLeafWithHead(b, shell, existing, p.TreePatch, p.Seed, p.Head, prefetched); err != nil {
			return false, err
		}
		return true, nil
	}
	if ex == nil || ex.Status != cache.Ready {
		return false, fmt.Errorf("%w: patch %s below a root that is not ready", cache.ErrInvariant, &p)
	}
	if debug.Apply() {
		debug.Logf("apply patch %s prefetched=%t\n", &p, prefetched)
	}
	n := b.Mut(shell)
	n.Status = cache.Ready
	n.Content = ex.Content
	n.Request = nil
	n.Routes = cloneRoutes(ex.Routes)
	if err := FillCacheWithNewSubTreeData(b, shell, existing, p, prefetched); err != nil {
		return false, err
	}
	return true, nil
}

func cloneRoutes(r map[cache.Key]cache.ID) map[cache.Key]cache.ID {
	if r == nil {
		return map[cache.Key]cache.ID{}
	}
	return maps.Clone(r)
}
