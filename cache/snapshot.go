package cache

import (
	"fmt"
	"strings"
)

// Snapshot is an immutable arena of nodes with a designated root.
type Snapshot struct {
	nodes []Node
	root  ID
}

// Empty returns a snapshot with no nodes.
func Empty() *Snapshot {
	return &Snapshot{root: None}
}

// FromNodes returns a snapshot over nodes rooted at root. The snapshot takes
// ownership of nodes.
func FromNodes(nodes []Node, root ID) (*Snapshot, error) {
	s := &Snapshot{nodes: nodes, root: root}
	if root != None && !s.has(root) {
		return nil, fmt.Errorf("%w: root %d", ErrNoNode, root)
	}
	return s, nil
}

func (s *Snapshot) Root() ID {
	if s == nil {
		return None
	}
	return s.root
}

// Len returns the number of arena entries, reachable or not.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.nodes)
}

func (s *Snapshot) has(id ID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

// Node returns the node with the given id, or nil. The result must not be
// modified.
func (s *Snapshot) Node(id ID) *Node {
	if s == nil || !s.has(id) {
		return nil
	}
	return &s.nodes[id]
}

// RootNode returns the root node or nil.
func (s *Snapshot) RootNode() *Node {
	return s.Node(s.Root())
}

// Lookup follows keys from the root and returns the id reached, or None.
func (s *Snapshot) Lookup(keys ...Key) ID {
	id := s.Root()
	for _, k := range keys {
		n := s.Node(id)
		if n == nil {
			return None
		}
		child, ok := n.Routes[k]
		if !ok {
			return None
		}
		id = child
	}
	if s.Node(id) == nil {
		return None
	}
	return id
}

// WalkFunc is called for each node reached by Walk with the keys leading to
// it from the root.
type WalkFunc func(path []Key, id ID, n *Node) error

// Walk visits the tree under the root depth first, children in Keys order.
// Nodes already visited are not visited again.
func (s *Snapshot) Walk(fn WalkFunc) error {
	if s.Node(s.Root()) == nil {
		return nil
	}
	seen := make(map[ID]bool, len(s.nodes))
	return s.walk(nil, s.root, seen, fn)
}

func (s *Snapshot) walk(path []Key, id ID, seen map[ID]bool, fn WalkFunc) error {
	if seen[id] {
		return nil
	}
	seen[id] = true
	n := s.Node(id)
	if n == nil {
		return fmt.Errorf("%w: %d at %s", ErrNoNode, id, PathString(path))
	}
	if err := fn(path, id, n); err != nil {
		return err
	}
	for _, k := range n.Keys() {
		if err := s.walk(append(path[:len(path):len(path)], k), n.Routes[k], seen, fn); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes reachable from the root.
func (s *Snapshot) Count() int {
	n := 0
	_ = s.Walk(func([]Key, ID, *Node) error {
		n++
		return nil
	})
	return n
}

// PathString renders keys as "/slot:segment/slot:segment", "/" for the root.
func PathString(path []Key) string {
	if len(path) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, k := range path {
		sb.WriteByte('/')
		sb.WriteString(k.Slot)
		sb.WriteByte(':')
		sb.WriteString(k.Segment)
	}
	return sb.String()
}
