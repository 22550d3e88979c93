package flight

import (
	"fmt"
	"strings"
)

const (
	// PageSegment is the segment of a page leaf. Page segments may carry the
	// search parameters of the url, as in "__PAGE__?q=1".
	PageSegment = "__PAGE__"
	// DefaultSegment is the segment of a parallel slot rendering its default.
	DefaultSegment = "__DEFAULT__"
)

// Segment is a route segment as seen in a router state tree: either static,
// or dynamic with a parameter name, its value and the kind of the parameter.
type Segment struct {
	Param string
	Value string
	// Kind is empty for static segments and one of "d" (dynamic), "c"
	// (catch-all) or "oc" (optional catch-all) otherwise.
	Kind string
}

func Static(v string) Segment {
	return Segment{Value: v}
}

func Dynamic(param, value, kind string) Segment {
	return Segment{Param: param, Value: value, Kind: kind}
}

func (s Segment) IsDynamic() bool {
	return s.Kind != ""
}

func (s Segment) IsPage() bool {
	return !s.IsDynamic() && strings.HasPrefix(s.Value, PageSegment)
}

// CacheKey returns the key under which the segment is cached in its parent.
func (s Segment) CacheKey() string {
	if !s.IsDynamic() {
		return s.Value
	}
	return strings.ToLower(s.Param + "|" + s.Value + "|" + s.Kind)
}

// CacheKeyWithoutSearch is CacheKey with page segments reduced to
// PageSegment.
func (s Segment) CacheKeyWithoutSearch() string {
	if s.IsPage() {
		return PageSegment
	}
	return s.CacheKey()
}

func (s Segment) String() string {
	if !s.IsDynamic() {
		return fmt.Sprintf("%q", s.Value)
	}
	return fmt.Sprintf("[%s %s %s]", s.Param, s.Value, s.Kind)
}

// MatchSegment reports whether a and b name the same segment: equal static
// values, or dynamic segments with equal parameter and value.
func MatchSegment(a, b Segment) bool {
	if a.IsDynamic() != b.IsDynamic() {
		return false
	}
	if !a.IsDynamic() {
		return a.Value == b.Value
	}
	return a.Param == b.Param && a.Value == b.Value
}

func validKind(k string) bool {
	switch k {
	case "d", "c", "oc":
		return true
	}
	return false
}
