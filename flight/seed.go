package flight

import (
	"maps"
	"slices"
)

// SeedData is the rendered payload of a subtree sent along with a tree
// patch. It parallels the router state: one entry per slot that has
// rendered content of its own.
type SeedData struct {
	Segment Segment
	Routes  map[string]*SeedData
	// Content is the rendered payload of the segment. A nil Content means
	// the segment was not rendered.
	Content any
}

// HasContent reports whether s carries a rendered payload.
func (s *SeedData) HasContent() bool {
	return s != nil && s.Content != nil
}

// Child returns the seed of slot, or nil.
func (s *SeedData) Child(slot string) *SeedData {
	if s == nil {
		return nil
	}
	return s.Routes[slot]
}

func (s *SeedData) Slots() []string {
	if s == nil {
		return nil
	}
	return sortSlots(slices.Collect(maps.Keys(s.Routes)))
}
