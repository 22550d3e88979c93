package flightcache

import (
	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/debug"
	"github.com/signadot/flightcache/flight"
)

// FillLazyItemsTillLeafWithHead reconciles the children of node, a node
// allocated by b, with those of existing along the router state tree state.
//
// For each slot of state, the child named there becomes
//
//   - a new ready node when seed has rendered content for it;
//   - otherwise the existing child, shared as is, whatever its status;
//   - otherwise a new lazy node.
//
// The recursion follows state down to its leaves and head is attached to the
// leaf reached by following the primary slot of each level, so exactly one
// node of the merge receives it. Nodes on the way to that leaf are copied
// rather than shared. Children of node that state does not name are left as
// they are.
//
// Pending nodes are never promoted without content, so a node that is lazy
// or has a fetch in flight stays so whether or not the merge comes from a
// prefetch. prefetched is only reported in traces; it never changes the
// status of a node.
func FillLazyItemsTillLeafWithHead(b *cache.Builder, node, existing cache.ID, state *flight.RouterState, seed *flight.SeedData, head any, prefetched bool) error {
	return fillLazy(b, node, existing, state, seed, head, prefetched, true)
}

func fillLazy(b *cache.Builder, node, existing cache.ID, state *flight.RouterState, seed *flight.SeedData, head any, prefetched, onHead bool) error {
	if state.IsLeaf() {
		if onHead {
			if debug.Fill() {
				debug.Logf("fill: head at %s\n", state.Segment)
			}
			b.Mut(node).Head = head
		}
		return nil
	}
	ex, err := existingNode(b, existing)
	if err != nil {
		return err
	}
	primary := state.PrimarySlot()
	for _, slot := range state.Slots() {
		childState := state.Routes[slot]
		childSeed := seed.Child(slot)
		key := cache.Key{Slot: slot, Segment: childState.Segment.CacheKey()}
		childOnHead := onHead && slot == primary

		exChild := cache.None
		if ex != nil {
			if id, ok := ex.Routes[key]; ok {
				exChild = id
			}
		}
		exNode, err := existingNode(b, exChild)
		if err != nil {
			return err
		}

		var child cache.ID
		switch {
		case childSeed.HasContent():
			child = b.Add(cache.Node{
				Status:  cache.Ready,
				Content: childSeed.Content,
				Routes:  routesOf(exNode),
			})
		case exNode != nil && !childOnHead:
			if debug.Fill() {
				debug.Logf("fill: keep %s %s prefetched=%t\n", key, exNode.Status, prefetched)
			}
			b.Mut(node).Routes[key] = exChild
			continue
		case exNode != nil:
			child = b.Clone(exChild)
			b.Mut(child).Head = nil
		default:
			child = b.New()
		}
		if debug.Fill() {
			debug.Logf("fill: %s -> %s\n", key, b.Node(child))
		}
		b.Mut(node).Routes[key] = child
		if err := fillLazy(b, child, exChild, childState, childSeed, head, prefetched, childOnHead); err != nil {
			return err
		}
	}
	return nil
}
