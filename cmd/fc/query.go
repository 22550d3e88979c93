package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/encode"
	q "github.com/signadot/flightcache/query"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: expected <expr>", cli.ErrUsage)
	}
	qry, err := q.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	colors := cfg.colors(cc.Out)
	paint := func(a encode.ColorAttr, v string) string {
		if colors == nil {
			return v
		}
		return colors.Color(a, v)
	}
	for _, file := range files {
		s, err := readSnapshot(file)
		if err != nil {
			return err
		}
		ms, err := qry.Find(s)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		for _, m := range ms {
			path := cache.PathString(m.Path)
			if len(files) > 1 {
				path = file + ":" + path
			}
			fmt.Fprintf(cc.Out, "%s %s\n", paint(encode.SegmentColor, path), paint(encode.StatusColor(m.Node.Status), m.Node.Status.String()))
		}
	}
	return nil
}
