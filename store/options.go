package store

import (
	"log/slog"
	"time"

	"github.com/signadot/flightcache/config"
)

type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

func WithConfig(c *config.Config) Option {
	return func(s *Store) { s.cfg = c }
}

// WithInitial sets the first published state.
func WithInitial(st *State) Option {
	return func(s *Store) { s.current.Store(st) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}
