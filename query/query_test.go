package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/parse"
)

func TestFind(t *testing.T) {
	s, err := parse.Snapshot([]byte(`
status: READY
content: root
routes:
  children:
    blog:
      status: READY
      content: blog
      routes:
        children:
          slug|hello|d: {status: READY, content: post}
          slug|bye|d: {status: DATA_FETCH_IN_PROGRESS}
        modal:
          share: {}
`))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		src  string
		want []string
	}{
		{`status == "READY"`, []string{"/", "/children:blog", "/children:blog/children:slug|hello|d"}},
		{`status != "READY" && leaf`, []string{"/children:blog/children:slug|bye|d", "/children:blog/modal:share"}},
		{`HasSlot("modal")`, []string{"/children:blog"}},
		{`segment == segkey("slug", "Hello", "d")`, []string{"/children:blog/children:slug|hello|d"}},
		{`depth == 1 && children == 3`, []string{"/children:blog"}},
		{`content == "root"`, []string{"/"}},
	}
	for _, tc := range tests {
		q, err := Compile(tc.src)
		if err != nil {
			t.Fatal(err)
		}
		ms, err := q.Find(s)
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, m := range ms {
			got = append(got, cache.PathString(m.Path))
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("%s: (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`status +`, `depth`, `nosuch == 1`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("%q compiled", src)
		}
	}
}
