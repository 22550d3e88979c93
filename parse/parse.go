// Package parse decodes cache snapshots, router states and flight data from
// YAML documents. JSON documents, being YAML, are accepted as well.
package parse

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/flight"
)

// Snapshot decodes the nested form of a cache tree:
//
//	status: READY
//	content: root
//	routes:
//	  children:
//	    about: {status: READY, content: about}
//	  modal:
//	    login: {status: LAZY}
//
// An empty document gives an empty snapshot.
func Snapshot(data []byte) (*cache.Snapshot, error) {
	v, err := Any(data)
	if err != nil {
		return nil, err
	}
	switch v.(type) {
	case nil:
		return cache.Empty(), nil
	case map[string]any, map[any]any:
	default:
		return nil, fmt.Errorf("%w: snapshot is %T, not a mapping", ErrParse, v)
	}
	var doc cache.Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	s, err := cache.FromDocument(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return s, nil
}

// Data decodes a list of flat flight data paths.
func Data(data []byte) (flight.Data, error) {
	v, err := Any(data)
	if err != nil {
		return nil, err
	}
	res, err := flight.DecodeData(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

// Path decodes a single flat flight data path.
func Path(data []byte) (flight.DataPath, error) {
	v, err := Any(data)
	if err != nil {
		return flight.DataPath{}, err
	}
	flat, ok := v.([]any)
	if !ok {
		return flight.DataPath{}, fmt.Errorf("%w: path is %T, not a list", ErrParse, v)
	}
	res, err := flight.DecodePath(flat)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

// RouterState decodes a router state tree in its list form.
func RouterState(data []byte) (*flight.RouterState, error) {
	v, err := Any(data)
	if err != nil {
		return nil, err
	}
	res, err := flight.DecodeRouterState(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return res, nil
}

// Any decodes a document into generic values.
func Any(data []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return v, nil
}
