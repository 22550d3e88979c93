package flight

import "testing"

func TestCacheKey(t *testing.T) {
	tests := []struct {
		seg      Segment
		key      string
		noSearch string
	}{
		{Static(""), "", ""},
		{Static("about"), "about", "about"},
		{Static(`__PAGE__?{"q":"1"}`), `__PAGE__?{"q":"1"}`, "__PAGE__"},
		{Dynamic("slug", "Hello", "d"), "slug|hello|d", "slug|hello|d"},
		{Dynamic("path", "a/B", "c"), "path|a/b|c", "path|a/b|c"},
	}
	for _, tc := range tests {
		if got := tc.seg.CacheKey(); got != tc.key {
			t.Errorf("%s: key %q want %q", tc.seg, got, tc.key)
		}
		if got := tc.seg.CacheKeyWithoutSearch(); got != tc.noSearch {
			t.Errorf("%s: key without search %q want %q", tc.seg, got, tc.noSearch)
		}
	}
}

func TestMatchSegment(t *testing.T) {
	tests := []struct {
		a, b  Segment
		match bool
	}{
		{Static("a"), Static("a"), true},
		{Static("a"), Static("b"), false},
		{Dynamic("id", "1", "d"), Dynamic("id", "1", "c"), true},
		{Dynamic("id", "1", "d"), Dynamic("id", "2", "d"), false},
		{Dynamic("id", "1", "d"), Static("1"), false},
	}
	for _, tc := range tests {
		if got := MatchSegment(tc.a, tc.b); got != tc.match {
			t.Errorf("%s %s: got %t", tc.a, tc.b, got)
		}
	}
}
