package cache

import "errors"

var (
	ErrInvariant = errors.New("cache invariant violated")
	ErrNoNode    = errors.New("no such node")
	ErrBuilt     = errors.New("builder already built")
)
