package cache

import "fmt"

type mark uint8

const (
	unvisited mark = iota
	visiting
	done
)

// Validate checks the invariants of every node reachable from the root of s.
func Validate(s *Snapshot) error {
	if s.Root() == None {
		return nil
	}
	marks := make([]mark, s.Len())
	return validate(s, nil, s.Root(), marks)
}

func validate(s *Snapshot, path []Key, id ID, marks []mark) error {
	n := s.Node(id)
	if n == nil {
		return fmt.Errorf("%w: dangling child %d at %s", ErrInvariant, id, PathString(path))
	}
	switch marks[id] {
	case visiting:
		return fmt.Errorf("%w: cycle through node %d at %s", ErrInvariant, id, PathString(path))
	case done:
		return nil
	}
	if err := n.check(); err != nil {
		return fmt.Errorf("%w at %s", err, PathString(path))
	}
	marks[id] = visiting
	for _, k := range n.Keys() {
		if err := validate(s, append(path[:len(path):len(path)], k), n.Routes[k], marks); err != nil {
			return err
		}
	}
	marks[id] = done
	return nil
}
