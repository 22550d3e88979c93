// Package flight models the data a server sends to update the client route
// cache and the router state it patches.
//
// A response ([Data]) holds one or more [DataPath] values. Each names, by a
// sequence of [Step] values, the segment whose subtree changed, and carries
// the router state patch of that subtree, the rendered [SeedData] for it (or
// nil) and the document head. In flat form a path is
//
//	[slot, segment, ..., slot, segment, treePatch, seed, head]
//
// and [DecodePath] turns such a list, as decoded from JSON or YAML, into a
// DataPath.
//
// Segments are static strings or dynamic [param, value, kind] triples. The
// key under which a segment is cached is given by [Segment.CacheKey].
package flight
