package cache

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func chain(t *testing.T) *Snapshot {
	t.Helper()
	b := NewBuilder(nil)
	leaf := b.Add(Node{Status: Ready, Content: "leaf"})
	mid := b.Add(Node{Status: Ready, Content: "mid", Routes: map[Key]ID{{Slot: "children", Segment: "leaf"}: leaf}})
	side := b.Add(Node{Status: DataFetch, Request: 7})
	root := b.Add(Node{Status: Ready, Content: "root", Routes: map[Key]ID{
		{Slot: "children", Segment: "mid"}: mid,
		{Slot: "modal", Segment: "side"}:   side,
	}})
	s, err := b.Build(root)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestBuilderFreezesBase(t *testing.T) {
	s := chain(t)
	b := NewBuilder(s)
	if !b.Frozen(s.Root()) {
		t.Fatal("root not frozen")
	}
	defer func() {
		if recover() == nil {
			t.Error("mutation of a frozen node did not panic")
		}
	}()
	b.Mut(s.Root())
}

func TestBuilderClone(t *testing.T) {
	s := chain(t)
	b := NewBuilder(s)
	root := b.Clone(s.Root())
	if b.Frozen(root) || root != b.Watermark() {
		t.Errorf("clone id %d, watermark %d", root, b.Watermark())
	}
	n := b.Mut(root)
	n.Head = "title"
	delete(n.Routes, Key{Slot: "modal", Segment: "side"})
	next, err := b.Build(root)
	if err != nil {
		t.Fatal(err)
	}
	if s.RootNode().Head != nil || len(s.RootNode().Routes) != 2 {
		t.Errorf("base root changed: %s", s.RootNode())
	}
	mid := Key{Slot: "children", Segment: "mid"}
	if next.Lookup(mid) != s.Lookup(mid) {
		t.Errorf("mid not shared")
	}
	if next.Count() != 3 || next.Len() != 5 {
		t.Errorf("count %d len %d", next.Count(), next.Len())
	}
}

func TestBuilderBuildOnce(t *testing.T) {
	b := NewBuilder(nil)
	id := b.New()
	if _, err := b.Build(id); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Build(id); !errors.Is(err, ErrBuilt) {
		t.Errorf("second build: %v", err)
	}
	if _, err := NewBuilder(nil).Build(3); !errors.Is(err, ErrNoNode) {
		t.Errorf("unknown root: %v", err)
	}
}

func TestSharedBase(t *testing.T) {
	s := chain(t)
	b1, b2 := NewBuilder(s), NewBuilder(s)
	r1, r2 := b1.Clone(s.Root()), b2.Clone(s.Root())
	b1.Mut(r1).Content = "one"
	b2.Mut(r2).Content = "two"
	s1, err := b1.Build(r1)
	if err != nil {
		t.Fatal(err)
	}
	s2, err := b2.Build(r2)
	if err != nil {
		t.Fatal(err)
	}
	got := []any{s.RootNode().Content, s1.RootNode().Content, s2.RootNode().Content}
	if diff := cmp.Diff([]any{"root", "one", "two"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
