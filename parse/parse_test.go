package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/flight"
)

func TestSnapshot(t *testing.T) {
	s, err := Snapshot([]byte(`
status: READY
content: root
routes:
  children:
    about:
      status: READY
      content: about
  modal:
    login: {status: LAZY}
`))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Count(); got != 3 {
		t.Errorf("count %d", got)
	}
	about := s.Node(s.Lookup(cache.Key{Slot: "children", Segment: "about"}))
	if about == nil || about.Status != cache.Ready || about.Content != "about" {
		t.Errorf("about: %s", about)
	}
	login := s.Node(s.Lookup(cache.Key{Slot: "modal", Segment: "login"}))
	if login == nil || login.Status != cache.LazyInitialized {
		t.Errorf("login: %s", login)
	}
}

func TestSnapshotErrors(t *testing.T) {
	tests := []string{
		`status: READY`,
		`status: LAZY
content: x`,
		`status: SOMETIMES`,
		`[1, 2]`,
	}
	for _, in := range tests {
		_, err := Snapshot([]byte(in))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: got %v", in, err)
		}
	}
	_, err := Snapshot([]byte(`status: READY`))
	if !errors.Is(err, cache.ErrInvariant) {
		t.Errorf("ready without content: %v", err)
	}
}

func TestPath(t *testing.T) {
	p, err := Path([]byte(`
- children
- [slug, hello, d]
- [[slug, hello, d], {children: ["__PAGE__", {}]}]
- [[slug, hello, d], {children: ["__PAGE__", {}, page]}, post]
- {title: hello}
`))
	if err != nil {
		t.Fatal(err)
	}
	want := []flight.Step{{Slot: "children", Segment: flight.Dynamic("slug", "hello", "d")}}
	if diff := cmp.Diff(want, p.Steps); diff != "" {
		t.Errorf("steps (-want +got):\n%s", diff)
	}
	if !p.HasContent() || p.Seed.Content != "post" {
		t.Errorf("seed %v", p.Seed)
	}
	if p.Seed.Child("children").Content != "page" {
		t.Errorf("page seed %v", p.Seed.Child("children"))
	}
	if p.Len() != 5 {
		t.Errorf("len %d", p.Len())
	}
}

func TestData(t *testing.T) {
	d, err := Data([]byte(`[
  [["", {}], null, null],
  ["children", "a", ["a", {}], ["a", {}, A], null]
]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(d) != 2 {
		t.Fatalf("got %d paths", len(d))
	}
	if d[0].HasContent() || !d[0].IsRoot() {
		t.Errorf("first path: %s", &d[0])
	}
	if !d[1].HasContent() || d[1].IsRoot() {
		t.Errorf("second path: %s", &d[1])
	}
	if _, err := Data([]byte(`[["children", "a"]]`)); !errors.Is(err, flight.ErrMalformed) {
		t.Errorf("short path: %v", err)
	}
}

func TestSnapshotEmptyDocument(t *testing.T) {
	for _, in := range []string{"", "\n", "null"} {
		s, err := Snapshot([]byte(in))
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if s.Root() != cache.None {
			t.Errorf("%q: root %d", in, s.Root())
		}
	}
}

func TestSnapshotRoot(t *testing.T) {
	s, err := Snapshot([]byte(`{status: READY, content: R}`))
	if err != nil {
		t.Fatal(err)
	}
	root := s.RootNode()
	if root == nil || root.Status != cache.Ready || root.Content != "R" {
		t.Errorf("root: %s", root)
	}
}
