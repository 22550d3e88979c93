package cache

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ID addresses a node within an arena.
type ID int32

// None is the id of no node.
const None ID = -1

// childrenSlot sorts first among slots.
const childrenSlot = "children"

// Key addresses a child of a node: the parallel slot and the cache key of the
// segment matched in that slot.
type Key struct {
	Slot    string
	Segment string
}

func (k Key) String() string {
	return k.Slot + "/" + k.Segment
}

// Node is the cached render state of one route segment.
//
// Nodes reached through a Snapshot must be treated as read-only, Routes
// included.
type Node struct {
	Status  Status
	Content any
	Head    any
	// Request identifies the in-flight request of a DataFetch node.
	Request any
	Routes  map[Key]ID
}

// Child returns the id of the child at (slot, segment), or None.
func (n *Node) Child(slot, segment string) ID {
	if id, ok := n.Routes[Key{Slot: slot, Segment: segment}]; ok {
		return id
	}
	return None
}

// HasSlot reports whether any child is registered under slot.
func (n *Node) HasSlot(slot string) bool {
	for k := range n.Routes {
		if k.Slot == slot {
			return true
		}
	}
	return false
}

// Slots returns the distinct slot names, "children" first and the rest
// sorted.
func (n *Node) Slots() []string {
	seen := map[string]bool{}
	for k := range n.Routes {
		seen[k.Slot] = true
	}
	return SortSlots(slices.Collect(maps.Keys(seen)))
}

// Segments returns the sorted segment keys registered under slot.
func (n *Node) Segments(slot string) []string {
	var res []string
	for k := range n.Routes {
		if k.Slot == slot {
			res = append(res, k.Segment)
		}
	}
	slices.Sort(res)
	return res
}

// Keys returns the child keys in slot order, then segment order.
func (n *Node) Keys() []Key {
	keys := slices.Collect(maps.Keys(n.Routes))
	slices.SortFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b Key) int {
	if a.Slot != b.Slot {
		switch {
		case a.Slot == childrenSlot:
			return -1
		case b.Slot == childrenSlot:
			return 1
		}
		return strings.Compare(a.Slot, b.Slot)
	}
	return strings.Compare(a.Segment, b.Segment)
}

// SortSlots sorts slot names in place with "children" first.
func SortSlots(slots []string) []string {
	slices.SortFunc(slots, func(a, b string) int {
		return compareKeys(Key{Slot: a}, Key{Slot: b})
	})
	return slots
}

// check reports a violation of the per-node invariant.
func (n *Node) check() error {
	switch {
	case n.Status == Ready && n.Content == nil:
		return fmt.Errorf("%w: %s node without content", ErrInvariant, n.Status)
	case n.Status != Ready && n.Content != nil:
		return fmt.Errorf("%w: %s node with content", ErrInvariant, n.Status)
	case n.Status > Ready:
		return fmt.Errorf("%w: unknown status %s", ErrInvariant, n.Status)
	}
	return nil
}

// Check reports whether n satisfies the per-node invariant. It does not look
// at children.
func (n *Node) Check() error {
	return n.check()
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var sb strings.Builder
	sb.WriteString(n.Status.String())
	if n.Content != nil {
		fmt.Fprintf(&sb, " content=%v", n.Content)
	}
	if n.Head != nil {
		fmt.Fprintf(&sb, " head=%v", n.Head)
	}
	if len(n.Routes) != 0 {
		fmt.Fprintf(&sb, " routes=%d", len(n.Routes))
	}
	return sb.String()
}

// copyNode returns a node with n's fields and its own copy of Routes.
func copyNode(n *Node) *Node {
	res := *n
	res.Routes = maps.Clone(n.Routes)
	if res.Routes == nil {
		res.Routes = map[Key]ID{}
	}
	return &res
}
