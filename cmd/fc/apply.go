package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/scott-cotton/cli"

	"github.com/signadot/flightcache"
	"github.com/signadot/flightcache/cache"
	"github.com/signadot/flightcache/encode"
	"github.com/signadot/flightcache/flight"
	"github.com/signadot/flightcache/parse"
	"github.com/signadot/flightcache/store"
)

var errNothingApplied = errors.New("no path applied")

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected <cache> <flight>", cli.ErrUsage)
	}
	before, err := readSnapshot(args[0])
	if err != nil {
		return err
	}
	d, err := readFile(args[1])
	if err != nil {
		return err
	}
	data, err := parse.Data(d)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", args[1], err)
	}
	var (
		after   *cache.Snapshot
		applied int
	)
	if cfg.Tree != "" {
		after, applied, err = applyWithTree(cfg, before, data)
	} else {
		after, applied, err = applyCacheOnly(before, data, cfg.Prefetch)
	}
	if err != nil {
		return err
	}
	if cfg.Diff {
		a, b := encode.MustString(before, encode.EncodeIDs(cfg.IDs)), encode.MustString(after, encode.EncodeIDs(cfg.IDs))
		if err := lineDiff(cc.Out, a, b, cfg.colors(cc.Out)); err != nil {
			return err
		}
	} else if err := encode.Encode(after, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return err
	}
	if applied == 0 {
		return errNothingApplied
	}
	return nil
}

// applyCacheOnly merges every path of data into s without tracking a router
// state.
func applyCacheOnly(s *cache.Snapshot, data flight.Data, prefetched bool) (*cache.Snapshot, int, error) {
	applied := 0
	for i := range data {
		b := cache.NewBuilder(s)
		shell := b.New()
		ok, err := flightcache.ApplyFlightData(b, s.Root(), shell, data[i], prefetched)
		if err != nil {
			return nil, applied, fmt.Errorf("path %s: %w", &data[i], err)
		}
		if !ok {
			continue
		}
		if s, err = b.Build(shell); err != nil {
			return nil, applied, err
		}
		applied++
	}
	return s, applied, nil
}

// applyWithTree merges data through a store whose router state is read from
// cfg.Tree, so that stale patches are reported.
func applyWithTree(cfg *ApplyConfig, s *cache.Snapshot, data flight.Data) (*cache.Snapshot, int, error) {
	d, err := readFile(cfg.Tree)
	if err != nil {
		return nil, 0, err
	}
	tree, err := parse.RouterState(d)
	if err != nil {
		return nil, 0, fmt.Errorf("error processing %s: %w", cfg.Tree, err)
	}
	st := store.New(nil,
		store.WithLogger(slog.New(slog.DiscardHandler)),
		store.WithInitial(&store.State{ID: uuid.New(), Cache: s, Tree: tree}))
	next, applied, err := st.Apply(data, cfg.Prefetch)
	if err != nil {
		return nil, applied, err
	}
	return next.Cache, applied, nil
}
