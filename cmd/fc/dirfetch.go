package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/flightcache/flight"
	"github.com/signadot/flightcache/parse"
	"github.com/signadot/flightcache/store"
)

// dirFetcher answers requests from flight data files under dir: "/" is
// read from index.yaml and "/a/b" from a/b.yaml. The query string is
// ignored.
type dirFetcher string

func (d dirFetcher) Fetch(ctx context.Context, req store.Request) (flight.Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := d.file(req.URL)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
	}
	res, err := parse.Data(data)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.URL, err)
	}
	return res, nil
}

func (d dirFetcher) file(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", raw, err)
	}
	p := strings.Trim(filepath.Clean("/"+u.Path), "/")
	if p == "" {
		p = "index"
	}
	return filepath.Join(string(d), filepath.FromSlash(p)+".yaml"), nil
}
