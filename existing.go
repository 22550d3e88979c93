package flightcache

import (
	"fmt"

	"github.com/signadot/flightcache/cache"
)

// existingNode returns the node of the existing cache for id, nil for
// cache.None, and an error if the node is missing or inconsistent.
func existingNode(b *cache.Builder, id cache.ID) (*cache.Node, error) {
	if id == cache.None {
		return nil, nil
	}
	n := b.Node(id)
	if n == nil {
		return nil, fmt.Errorf("%w: dangling node %d", cache.ErrInvariant, id)
	}
	if err := n.Check(); err != nil {
		return nil, fmt.Errorf("node %d: %w", id, err)
	}
	return n, nil
}

func routesOf(n *cache.Node) map[cache.Key]cache.ID {
	if n == nil {
		return nil
	}
	return n.Routes
}
