package flightcache

import (
	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/debug"
	"github.com/signadot/flightcache/flight"
)

// FillCacheWithNewSubTreeData follows the steps of p from node, a node
// allocated by b, and existing, the corresponding node of the previous
// cache. Each node on the way is copied before it is modified and relinked
// into its copied parent; siblings stay shared. At the last step the target
// is replaced by a ready node built from the seed data of p and its
// descendants are reconciled with FillLazyItemsTillLeafWithHead.
//
// A step naming a slot or segment that the cache does not have leaves that
// branch as it was.
func FillCacheWithNewSubTreeData(b *cache.Builder, node, existing cache.ID, p flight.DataPath, prefetched bool) error {
	if len(p.Steps) == 0 {
		return nil
	}
	return fillSubtree(b, node, existing, &p, 0, prefetched)
}

func fillSubtree(b *cache.Builder, node, existing cache.ID, p *flight.DataPath, i int, prefetched bool) error {
	ex, err := existingNode(b, existing)
	if err != nil {
		return err
	}
	step := p.Steps[i]
	key := cache.Key{Slot: step.Slot, Segment: step.Segment.CacheKey()}
	if ex == nil || !ex.HasSlot(step.Slot) {
		if debug.Subtree() {
			debug.Logf("subtree %s: no slot %q at step %d\n", p, step.Slot, i)
		}
		return nil
	}
	exChild := cache.None
	if id, ok := ex.Routes[key]; ok {
		exChild = id
	}
	exNode, err := existingNode(b, exChild)
	if err != nil {
		return err
	}

	if i == len(p.Steps)-1 {
		if !p.HasContent() {
			return nil
		}
		child := b.Add(cache.Node{
			Status:  cache.Ready,
			Content: p.Seed.Content,
			Routes:  routesOf(exNode),
		})
		b.Mut(node).Routes[key] = child
		if debug.Subtree() {
			debug.Logf("subtree %s: target %s replaced by %d\n", p, key, child)
		}
		return fillLazy(b, child, exChild, p.TreePatch, p.Seed, p.Head, prefetched, true)
	}

	cur, ok := b.Node(node).Routes[key]
	if exNode == nil || !ok {
		if debug.Subtree() {
			debug.Logf("subtree %s: no child %s at step %d\n", p, key, i)
		}
		return nil
	}
	if b.Frozen(cur) {
		cur = b.Clone(cur)
		b.Mut(cur).Head = nil
		b.Mut(node).Routes[key] = cur
	}
	return fillSubtree(b, cur, exChild, p, i+1, prefetched)
}
