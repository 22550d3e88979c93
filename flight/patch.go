package flight

import (
	"maps"

	"github.com/signadot/flightcache/debug"
)

// ApplyPatch returns the router state obtained by applying patch to tree at
// the segment reached by steps. The result shares unpatched subtrees with
// tree. It returns nil when tree has diverged from steps, in which case the
// router cannot patch its state and must navigate from scratch.
func ApplyPatch(tree *RouterState, steps []Step, patch *RouterState) *RouterState {
	if tree == nil || patch == nil {
		return nil
	}
	if len(steps) == 0 {
		return applyPatch(tree, patch)
	}
	step := steps[0]
	child := tree.Routes[step.Slot]
	var res *RouterState
	if len(steps) == 1 {
		res = applyPatch(child, patch)
	} else {
		if child == nil || !MatchSegment(step.Segment, child.Segment) {
			if debug.Apply() {
				debug.Logf("router state diverged at slot %q: have %v want %v\n", step.Slot, child, step.Segment)
			}
			return nil
		}
		res = ApplyPatch(child, steps[1:], patch)
		if res == nil {
			return nil
		}
	}
	routes := maps.Clone(tree.Routes)
	if routes == nil {
		routes = map[string]*RouterState{}
	}
	routes[step.Slot] = res
	return &RouterState{
		Segment:      tree.Segment,
		Routes:       routes,
		IsRootLayout: tree.IsRootLayout,
	}
}

// applyPatch merges patch into initial when both name the same segment and
// replaces initial by patch otherwise.
func applyPatch(initial, patch *RouterState) *RouterState {
	if initial == nil {
		return patch
	}
	if patch.Segment == Static(DefaultSegment) && initial.Segment != Static(DefaultSegment) {
		return initial
	}
	if !MatchSegment(initial.Segment, patch.Segment) {
		return patch
	}
	res := &RouterState{
		Segment:      initial.Segment,
		Routes:       make(map[string]*RouterState, len(initial.Routes)+len(patch.Routes)),
		URL:          initial.URL,
		Refresh:      initial.Refresh,
		IsRootLayout: initial.IsRootLayout,
	}
	for k, v := range initial.Routes {
		if pv, ok := patch.Routes[k]; ok {
			res.Routes[k] = applyPatch(v, pv)
			continue
		}
		res.Routes[k] = v
	}
	for k, v := range patch.Routes {
		if _, ok := res.Routes[k]; !ok {
			res.Routes[k] = v
		}
	}
	return res
}
