package flight

import (
	"maps"
	"slices"
	"strings"
)

const childrenSlot = "children"

// RouterState is the router's view of the route tree: a segment and, per
// parallel slot, the state of the child rendered there.
type RouterState struct {
	Segment      Segment
	Routes       map[string]*RouterState
	URL          string
	Refresh      string
	IsRootLayout bool
}

// IsLeaf reports whether s has no child routes.
func (s *RouterState) IsLeaf() bool {
	return s == nil || len(s.Routes) == 0
}

// Slots returns the slot names of s, "children" first and the rest sorted.
func (s *RouterState) Slots() []string {
	if s == nil {
		return nil
	}
	return sortSlots(slices.Collect(maps.Keys(s.Routes)))
}

// PrimarySlot returns the slot along which the head of a merge descends:
// "children" when present, else the first slot.
func (s *RouterState) PrimarySlot() string {
	slots := s.Slots()
	if len(slots) == 0 {
		return ""
	}
	return slots[0]
}

// Clone returns a deep copy of s.
func (s *RouterState) Clone() *RouterState {
	if s == nil {
		return nil
	}
	res := *s
	if s.Routes != nil {
		res.Routes = make(map[string]*RouterState, len(s.Routes))
		for k, v := range s.Routes {
			res.Routes[k] = v.Clone()
		}
	}
	return &res
}

// Equal reports whether s and o describe the same tree.
func (s *RouterState) Equal(o *RouterState) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Segment != o.Segment || s.URL != o.URL || s.Refresh != o.Refresh || s.IsRootLayout != o.IsRootLayout {
		return false
	}
	if len(s.Routes) != len(o.Routes) {
		return false
	}
	for k, v := range s.Routes {
		ov, ok := o.Routes[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Depth returns the length of the longest primary path below s.
func (s *RouterState) Depth() int {
	d := 0
	for cur := s; !cur.IsLeaf(); cur = cur.Routes[cur.PrimarySlot()] {
		d++
	}
	return d
}

func (s *RouterState) String() string {
	var sb strings.Builder
	s.format(&sb, "", "")
	return sb.String()
}

func (s *RouterState) format(sb *strings.Builder, slot, indent string) {
	if s == nil {
		return
	}
	sb.WriteString(indent)
	if slot != "" {
		sb.WriteString(slot)
		sb.WriteString(": ")
	}
	sb.WriteString(s.Segment.String())
	sb.WriteByte('\n')
	for _, k := range s.Slots() {
		s.Routes[k].format(sb, k, indent+"  ")
	}
}

func sortSlots(slots []string) []string {
	slices.SortFunc(slots, func(a, b string) int {
		switch {
		case a == b:
			return 0
		case a == childrenSlot:
			return -1
		case b == childrenSlot:
			return 1
		}
		return strings.Compare(a, b)
	})
	return slots
}
