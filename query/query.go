// Package query selects cache nodes with boolean expressions such as
//
//	status == "READY" && depth > 1 && HasSlot("modal")
//
// evaluated over an [Env] per node.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/flight"
)

// Env is the environment of an expression evaluated at one node.
type Env struct {
	Path     string `expr:"path"`
	Slot     string `expr:"slot"`
	Segment  string `expr:"segment"`
	Depth    int    `expr:"depth"`
	ID       int    `expr:"id"`
	Status   string `expr:"status"`
	Content  any    `expr:"content"`
	Head     any    `expr:"head"`
	Children int    `expr:"children"`
	Leaf     bool   `expr:"leaf"`

	node *cache.Node
}

// HasSlot reports whether the node has children in slot.
func (e Env) HasSlot(slot string) bool {
	return e.node != nil && e.node.HasSlot(slot)
}

// NewEnv returns the environment of node id reached by path.
func NewEnv(path []cache.Key, id cache.ID, n *cache.Node) Env {
	env := Env{
		Path:     cache.PathString(path),
		Depth:    len(path),
		ID:       int(id),
		Status:   n.Status.String(),
		Content:  n.Content,
		Head:     n.Head,
		Children: len(n.Routes),
		Leaf:     len(n.Routes) == 0,
		node:     n,
	}
	if len(path) != 0 {
		env.Slot = path[len(path)-1].Slot
		env.Segment = path[len(path)-1].Segment
	}
	return env
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("segkey", func(params ...any) (any, error) {
			return flight.Dynamic(params[0].(string), params[1].(string), params[2].(string)).CacheKey(), nil
		},
			new(func(string, string, string) string)),
	}
}

type Query struct {
	src string
	prg *vm.Program
}

// Compile compiles a boolean expression over Env.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("compiling %q: %w", src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func (q *Query) String() string {
	return q.src
}

// Match evaluates q in env.
func (q *Query) Match(env Env) (bool, error) {
	res, err := expr.Run(q.prg, env)
	if err != nil {
		return false, fmt.Errorf("evaluating %q at %s: %w", q.src, env.Path, err)
	}
	b, ok := res.(bool)
	if !ok {
		return false, fmt.Errorf("evaluating %q gave %T", q.src, res)
	}
	return b, nil
}

// Match is a node selected by a query.
type Match struct {
	Path []cache.Key
	ID   cache.ID
	Node *cache.Node
}

// Find returns the nodes of s matching q, in walk order.
func (q *Query) Find(s *cache.Snapshot) ([]Match, error) {
	var res []Match
	err := s.Walk(func(path []cache.Key, id cache.ID, n *cache.Node) error {
		ok, err := q.Match(NewEnv(path, id, n))
		if err != nil {
			return err
		}
		if ok {
			res = append(res, Match{Path: path, ID: id, Node: n})
		}
		return nil
	})
	return res, err
}
