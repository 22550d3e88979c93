package cache

import "fmt"

// Builder builds a new snapshot on top of a base snapshot with copy-on-write.
//
// Ids of the base are frozen; New, Add and Clone allocate mutable nodes past
// the base watermark. A Builder is not safe for concurrent use, but any
// number of builders may share a base.
type Builder struct {
	base  []Node
	fresh []*Node
	built bool
}

// NewBuilder returns a builder over base. A nil base is an empty snapshot.
func NewBuilder(base *Snapshot) *Builder {
	b := &Builder{}
	if base != nil {
		b.base = base.nodes
	}
	return b
}

// Watermark returns the first id allocated by the builder.
func (b *Builder) Watermark() ID {
	return ID(len(b.base))
}

// Frozen reports whether id belongs to the base snapshot.
func (b *Builder) Frozen(id ID) bool {
	return id >= 0 && int(id) < len(b.base)
}

// Node returns the node for id, frozen or not, or nil.
func (b *Builder) Node(id ID) *Node {
	switch {
	case id < 0:
		return nil
	case int(id) < len(b.base):
		return &b.base[id]
	}
	i := int(id) - len(b.base)
	if i >= len(b.fresh) {
		return nil
	}
	return b.fresh[i]
}

// Mut returns the mutable node for id. It panics when id is frozen, unknown,
// or the builder has been built: any of these is a copy-on-write bug.
func (b *Builder) Mut(id ID) *Node {
	if b.built {
		panic(ErrBuilt)
	}
	if b.Frozen(id) {
		panic(fmt.Sprintf("cache: mutation of frozen node %d", id))
	}
	n := b.Node(id)
	if n == nil {
		panic(fmt.Sprintf("cache: mutation of unknown node %d", id))
	}
	return n
}

// New allocates an empty LazyInitialized node.
func (b *Builder) New() ID {
	return b.alloc(&Node{Routes: map[Key]ID{}})
}

// Add allocates a node with n's fields and its own copy of n.Routes.
func (b *Builder) Add(n Node) ID {
	return b.alloc(copyNode(&n))
}

// Clone allocates a copy of the node id. The copy shares child ids with the
// original; the children themselves are not copied.
func (b *Builder) Clone(id ID) ID {
	n := b.Node(id)
	if n == nil {
		panic(fmt.Sprintf("cache: clone of unknown node %d", id))
	}
	return b.alloc(copyNode(n))
}

func (b *Builder) alloc(n *Node) ID {
	if b.built {
		panic(ErrBuilt)
	}
	b.fresh = append(b.fresh, n)
	return ID(len(b.base) + len(b.fresh) - 1)
}

// Allocated returns the number of nodes allocated by the builder.
func (b *Builder) Allocated() int {
	return len(b.fresh)
}

// Build returns the snapshot rooted at root. The builder may not be used
// afterwards.
func (b *Builder) Build(root ID) (*Snapshot, error) {
	if b.built {
		return nil, ErrBuilt
	}
	if b.Node(root) == nil {
		return nil, fmt.Errorf("%w: root %d", ErrNoNode, root)
	}
	b.built = true
	nodes := make([]Node, len(b.base)+len(b.fresh))
	copy(nodes, b.base)
	for i, n := range b.fresh {
		nodes[len(b.base)+i] = *n
	}
	b.fresh = nil
	return &Snapshot{nodes: nodes, root: root}, nil
}
