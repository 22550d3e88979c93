package flight

import (
	"strings"
)

// Step is one descent in a flight data path: through the parallel slot Slot
// of the current node into the child matching Segment.
type Step struct {
	Slot    string
	Segment Segment
}

// DataPath is one entry of a server response: the path from the root to the
// segment that changed, the router state patch for that segment, the seed
// data rendered for it and the document head.
type DataPath struct {
	Steps     []Step
	TreePatch *RouterState
	// Seed is nil when the response carries no rendered content for the
	// patched segment.
	Seed *SeedData
	Head any
}

// Data is a server response: the paths it updates, in order.
type Data []DataPath

// Len returns the number of entries of the path in its flat form: two per
// step and three for the patch, seed and head.
func (p *DataPath) Len() int {
	return 2*len(p.Steps) + 3
}

// IsRoot reports whether p patches the root itself.
func (p *DataPath) IsRoot() bool {
	return len(p.Steps) == 0
}

// HasContent reports whether p carries rendered content.
func (p *DataPath) HasContent() bool {
	return p.Seed.HasContent()
}

func (p *DataPath) String() string {
	var sb strings.Builder
	sb.WriteByte('/')
	for i, s := range p.Steps {
		if i != 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(s.Slot)
		sb.WriteByte(':')
		sb.WriteString(s.Segment.CacheKey())
	}
	return sb.String()
}
