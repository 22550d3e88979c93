package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/gops/agent"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/scott-cotton/cli"

	"github.com/signadot/flightcache/config"
	"github.com/signadot/flightcache/server"
	"github.com/signadot/flightcache/store"
)

func serve(cfg *ServeConfig, cc *cli.Context, args []string) error {
	_, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	conf, err := config.Load(cfg.ConfigFiles, cfg.Sets...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	// stdout carries the protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: conf.Log.SlogLevel()}))

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			log.Warn("gops agent failed", "error", err)
		}
		defer agent.Close()
	}

	var fetcher store.Fetcher
	if cfg.Responses != "" {
		fetcher = dirFetcher(cfg.Responses)
	}
	reg := prometheus.NewRegistry()
	st := store.New(fetcher,
		store.WithConfig(conf),
		store.WithLogger(log),
		store.WithMetrics(store.NewMetrics(reg)))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	err = server.New(st, log, server.WithGatherer(reg)).Serve(ctx, server.Stdio())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
