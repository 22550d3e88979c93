package cache

import "maps"

// Compact returns a snapshot holding only the nodes reachable from the root
// of s, renumbered in depth first order. The result shares no Routes maps
// with s.
func Compact(s *Snapshot) *Snapshot {
	if s.Node(s.Root()) == nil {
		return Empty()
	}
	remap := make(map[ID]ID, s.Len())
	var order []ID
	_ = s.Walk(func(_ []Key, id ID, _ *Node) error {
		remap[id] = ID(len(order))
		order = append(order, id)
		return nil
	})
	nodes := make([]Node, len(order))
	for i, old := range order {
		n := *s.Node(old)
		routes := make(map[Key]ID, len(n.Routes))
		for k, child := range maps.All(n.Routes) {
			routes[k] = remap[child]
		}
		n.Routes = routes
		nodes[i] = n
	}
	return &Snapshot{nodes: nodes, root: 0}
}

// Garbage returns the fraction of arena entries not reachable from the root.
func Garbage(s *Snapshot) float64 {
	if s.Len() == 0 {
		return 0
	}
	return 1 - float64(s.Count())/float64(s.Len())
}
