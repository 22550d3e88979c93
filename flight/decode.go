package flight

import (
	"fmt"
	"slices"
)

// DecodeData interprets v, a value decoded from JSON or YAML, as flight
// data: a list of flat paths.
func DecodeData(v any) (Data, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: flight data is %T, not a list", ErrMalformed, v)
	}
	res := make(Data, 0, len(list))
	for i, elt := range list {
		flat, ok := elt.([]any)
		if !ok {
			return nil, fmt.Errorf("%w: path %d is %T, not a list", ErrMalformed, i, elt)
		}
		p, err := DecodePath(flat)
		if err != nil {
			return nil, fmt.Errorf("path %d: %w", i, err)
		}
		res = append(res, p)
	}
	return res, nil
}

// DecodePath interprets a flat flight data path
//
//	[slot, segment, slot, segment, ..., treePatch, seed, head]
//
// where seed may be null.
func DecodePath(flat []any) (DataPath, error) {
	var p DataPath
	n := len(flat)
	if n < 3 || n%2 == 0 {
		return p, fmt.Errorf("%w: path of length %d", ErrMalformed, n)
	}
	for i := 0; i+3 < n; i += 2 {
		slot, ok := flat[i].(string)
		if !ok {
			return p, fmt.Errorf("%w: slot at %d is %T", ErrMalformed, i, flat[i])
		}
		seg, err := DecodeSegment(flat[i+1])
		if err != nil {
			return p, fmt.Errorf("segment at %d: %w", i+1, err)
		}
		p.Steps = append(p.Steps, Step{Slot: slot, Segment: seg})
	}
	tail := flat[n-3:]
	tree, err := DecodeRouterState(tail[0])
	if err != nil {
		return p, fmt.Errorf("tree patch: %w", err)
	}
	p.TreePatch = tree
	if tail[1] != nil {
		seed, err := DecodeSeed(tail[1])
		if err != nil {
			return p, fmt.Errorf("seed: %w", err)
		}
		p.Seed = seed
	}
	p.Head = tail[2]
	return p, nil
}

// DecodeSegment interprets a string as a static segment and a list
// [param, value, kind] as a dynamic one.
func DecodeSegment(v any) (Segment, error) {
	switch x := v.(type) {
	case string:
		return Static(x), nil
	case []any:
		if len(x) != 3 {
			return Segment{}, fmt.Errorf("%w: dynamic segment of length %d", ErrMalformed, len(x))
		}
		var parts [3]string
		for i := range x {
			s, ok := x[i].(string)
			if !ok {
				return Segment{}, fmt.Errorf("%w: dynamic segment entry %d is %T", ErrMalformed, i, x[i])
			}
			parts[i] = s
		}
		if !validKind(parts[2]) {
			return Segment{}, fmt.Errorf("%w: dynamic segment kind %q", ErrMalformed, parts[2])
		}
		return Dynamic(parts[0], parts[1], parts[2]), nil
	}
	return Segment{}, fmt.Errorf("%w: segment is %T", ErrMalformed, v)
}

// DecodeRouterState interprets
//
//	[segment, {slot: state, ...}, url?, refresh?, isRootLayout?]
func DecodeRouterState(v any) (*RouterState, error) {
	list, ok := v.([]any)
	if !ok || len(list) < 2 || len(list) > 5 {
		return nil, fmt.Errorf("%w: router state %v", ErrMalformed, v)
	}
	seg, err := DecodeSegment(list[0])
	if err != nil {
		return nil, err
	}
	res := &RouterState{Segment: seg}
	err = eachSlot(list[1], func(slot string, v any) error {
		child, err := DecodeRouterState(v)
		if err != nil {
			return fmt.Errorf("slot %q: %w", slot, err)
		}
		if res.Routes == nil {
			res.Routes = map[string]*RouterState{}
		}
		res.Routes[slot] = child
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(list) > 2 {
		if res.URL, err = optString(list[2]); err != nil {
			return nil, fmt.Errorf("url: %w", err)
		}
	}
	if len(list) > 3 {
		if res.Refresh, err = optString(list[3]); err != nil {
			return nil, fmt.Errorf("refresh: %w", err)
		}
	}
	if len(list) > 4 {
		switch x := list[4].(type) {
		case nil:
		case bool:
			res.IsRootLayout = x
		default:
			return nil, fmt.Errorf("%w: root layout flag is %T", ErrMalformed, x)
		}
	}
	return res, nil
}

// DecodeSeed interprets [segment, {slot: seed, ...}, content, ...]. Entries
// past the content are ignored.
func DecodeSeed(v any) (*SeedData, error) {
	list, ok := v.([]any)
	if !ok || len(list) < 3 {
		return nil, fmt.Errorf("%w: seed data %v", ErrMalformed, v)
	}
	seg, err := DecodeSegment(list[0])
	if err != nil {
		return nil, err
	}
	res := &SeedData{Segment: seg, Content: list[2]}
	err = eachSlot(list[1], func(slot string, v any) error {
		if v == nil {
			return nil
		}
		child, err := DecodeSeed(v)
		if err != nil {
			return fmt.Errorf("slot %q: %w", slot, err)
		}
		if res.Routes == nil {
			res.Routes = map[string]*SeedData{}
		}
		res.Routes[slot] = child
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func eachSlot(v any, f func(string, any) error) error {
	switch m := v.(type) {
	case nil:
		return nil
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		for _, k := range sortSlots(keys) {
			if err := f(k, m[k]); err != nil {
				return err
			}
		}
		return nil
	case map[any]any:
		conv := make(map[string]any, len(m))
		for k, v := range m {
			s, ok := k.(string)
			if !ok {
				return fmt.Errorf("%w: slot name %v is %T", ErrMalformed, k, k)
			}
			conv[s] = v
		}
		return eachSlot(conv, f)
	}
	return fmt.Errorf("%w: slots are %T, not a map", ErrMalformed, v)
}

func optString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	}
	return "", fmt.Errorf("%w: %T is not a string", ErrMalformed, v)
}

// Wire returns the flat form of p, the inverse of DecodePath.
func (p *DataPath) Wire() []any {
	res := make([]any, 0, p.Len())
	for _, s := range p.Steps {
		res = append(res, s.Slot, s.Segment.Wire())
	}
	var seed any
	if p.Seed != nil {
		seed = p.Seed.Wire()
	}
	return append(res, p.TreePatch.Wire(), seed, p.Head)
}

// Wire returns the list form of d.
func (d Data) Wire() []any {
	res := make([]any, len(d))
	for i := range d {
		res[i] = d[i].Wire()
	}
	return res
}

func (s Segment) Wire() any {
	if !s.IsDynamic() {
		return s.Value
	}
	return []any{s.Param, s.Value, s.Kind}
}

func (s *RouterState) Wire() any {
	if s == nil {
		return nil
	}
	routes := make(map[string]any, len(s.Routes))
	for k, v := range s.Routes {
		routes[k] = v.Wire()
	}
	res := []any{s.Segment.Wire(), routes}
	switch {
	case s.IsRootLayout:
		res = append(res, s.URL, s.Refresh, true)
	case s.Refresh != "":
		res = append(res, s.URL, s.Refresh)
	case s.URL != "":
		res = append(res, s.URL)
	}
	return slices.Clip(res)
}

func (s *SeedData) Wire() any {
	if s == nil {
		return nil
	}
	routes := make(map[string]any, len(s.Routes))
	for k, v := range s.Routes {
		routes[k] = v.Wire()
	}
	return []any{s.Segment.Wire(), routes, s.Content}
}
