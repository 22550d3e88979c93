// Package cache provides the client-side route cache tree.
//
// # Overview
//
// A route cache is a tree of [Node] values, one per route segment. Each node
// records the render state of its segment ([Status]), the rendered payload
// once ready, the document head attached to it, and its children. Children
// are grouped by parallel slot: a child is addressed by a [Key], the pair of
// the slot name (for example "children" or "modal") and the segment cache key
// (for example "about" or "slug|hello|d").
//
// # Arena
//
// Nodes live in an arena and are addressed by [ID]. A [Snapshot] is an
// immutable arena plus the id of its root. Once published, a snapshot and
// every node in it are never modified, so a snapshot may be read by any
// number of goroutines while a new one is being built.
//
// A [Builder] overlays a base snapshot. Ids below the length of the base
// arena are frozen; the builder allocates new nodes past that watermark and
// only those may be mutated. Cloning a node allocates a new entry with the
// same scalar fields and the same child ids, so untouched subtrees are shared
// between the old and the new snapshot simply by sharing ids:
//
//	b := cache.NewBuilder(snap)
//	root := b.Clone(snap.Root())
//	b.Mut(root).Head = head
//	next, err := b.Build(root)
//
// # Invariants
//
//   - Content is non-nil if and only if Status is Ready.
//   - Every child id refers to a node in the same arena.
//   - The tree is acyclic: no node is its own ancestor.
//
// [Validate] checks these for a whole snapshot; violations wrap [ErrInvariant]
// and indicate a corrupt cache rather than a recoverable condition.
//
// # Reclamation
//
// Every build appends to the arena, so nodes replaced by copy-on-write stay
// in newer arenas until [Compact] copies the reachable nodes into a fresh
// arena. Older snapshots are unaffected and are reclaimed by the garbage
// collector once nothing references them.
package cache
