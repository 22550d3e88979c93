// Package store publishes route cache snapshots and drives merges into them.
//
// A [Store] holds the active [State]: the cache snapshot together with the
// router state tree it was built for. Readers call [Store.Current] and get a
// state that is never modified afterwards. Writers start a [Merge] from the
// current state, apply flight data paths to it and [Store.Commit] the
// result. Commit publishes with a compare-and-swap: when another merge was
// committed first, the late one fails with [ErrSuperseded] and is simply
// dropped, since it never modified anything shared.
//
// [Store.Navigate] and [Store.Prefetch] obtain flight data from a [Fetcher].
// Prefetches are deduplicated per url, bounded in number, and kept for a
// while so that a following navigation applies them without fetching.
package store
