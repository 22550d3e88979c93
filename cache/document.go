package cache

import (
	"fmt"
	"slices"
)

// Document is the nested form of a cache tree used for fixtures and
// rendering: routes are keyed by slot, then by segment key.
type Document struct {
	Status  string                          `json:"status,omitempty" yaml:"status,omitempty"`
	Content any                             `json:"content,omitempty" yaml:"content,omitempty"`
	Head    any                             `json:"head,omitempty" yaml:"head,omitempty"`
	Request any                             `json:"request,omitempty" yaml:"request,omitempty"`
	Routes  map[string]map[string]*Document `json:"routes,omitempty" yaml:"routes,omitempty"`
}

// Document returns the nested form of the tree of s, or nil for an empty
// snapshot. A node shared by two parents appears under both.
func (s *Snapshot) Document() (*Document, error) {
	if s.Root() == None {
		return nil, nil
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s.document(s.Root()), nil
}

func (s *Snapshot) document(id ID) *Document {
	n := s.Node(id)
	d := &Document{
		Status:  n.Status.String(),
		Content: n.Content,
		Head:    n.Head,
		Request: n.Request,
	}
	for _, k := range n.Keys() {
		if d.Routes == nil {
			d.Routes = map[string]map[string]*Document{}
		}
		slot := d.Routes[k.Slot]
		if slot == nil {
			slot = map[string]*Document{}
			d.Routes[k.Slot] = slot
		}
		slot[k.Segment] = s.document(n.Routes[k])
	}
	return d
}

// FromDocument builds a snapshot from its nested form. A nil document gives
// an empty snapshot.
func FromDocument(d *Document) (*Snapshot, error) {
	if d == nil {
		return Empty(), nil
	}
	b := NewBuilder(nil)
	root, err := addDocument(b, d, nil)
	if err != nil {
		return nil, err
	}
	s, err := b.Build(root)
	if err != nil {
		return nil, err
	}
	if err := Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func addDocument(b *Builder, d *Document, path []Key) (ID, error) {
	st, err := ParseStatus(d.Status)
	if err != nil {
		return None, fmt.Errorf("%s: %w", PathString(path), err)
	}
	id := b.Add(Node{Status: st, Content: d.Content, Head: d.Head, Request: d.Request})
	slots := make([]string, 0, len(d.Routes))
	for slot := range d.Routes {
		slots = append(slots, slot)
	}
	for _, slot := range SortSlots(slots) {
		segs := d.Routes[slot]
		keys := make([]string, 0, len(segs))
		for seg := range segs {
			keys = append(keys, seg)
		}
		slices.Sort(keys)
		for _, seg := range keys {
			child := segs[seg]
			if child == nil {
				child = &Document{}
			}
			k := Key{Slot: slot, Segment: seg}
			cid, err := addDocument(b, child, append(path[:len(path):len(path)], k))
			if err != nil {
				return None, err
			}
			b.Mut(id).Routes[k] = cid
		}
	}
	return id, nil
}
