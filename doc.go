// Package flightcache merges server flight data into the client route cache.
//
// A navigation or prefetch yields [flight.Data]: one or more paths, each
// naming a segment of the route tree together with a router state patch, the
// rendered seed data of the segment and the document head. [ApplyFlightData]
// merges one path into a new cache root allocated in a [cache.Builder] on
// top of the published snapshot:
//
//   - a path without rendered content is not applied;
//   - a path patching the root fills the new root from the seed data and
//     reconciles its descendants with [FillLazyItemsTillLeafWithHead];
//   - a path patching an interior segment keeps the root content and
//     rebuilds the chain of nodes down to that segment with
//     [FillCacheWithNewSubTreeData].
//
// Only nodes allocated by the builder are modified. Everything else,
// including every node of the published snapshot, is shared by id, so the
// published snapshot stays valid for concurrent readers and an abandoned
// merge needs no cleanup.
//
// Stale paths, whose segments no longer exist in the cache, are absorbed
// without error. A node of the existing cache that violates the cache
// invariants aborts the merge with an error wrapping [cache.ErrInvariant].
package flightcache
