// Package config holds the settings of the route cache store and tools.
//
// Configuration is assembled from layers. Each layer is a JSON document
// merged over the accumulated configuration as an RFC 7386 merge patch:
// the defaults first, then files in order, then individual assignments.
// The accumulator is an ordinary value threaded through [Merge], so loading
// is free of package state and may run concurrently.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Prefetch Prefetch `json:"prefetch"`
	Compact  Compact  `json:"compact"`
	Log      Log      `json:"log"`
}

// Prefetch configures speculative fetches.
type Prefetch struct {
	// TTL is how long a prefetched response may be applied to a navigation.
	TTL Duration `json:"ttl" validate:"gt=0"`
	// Concurrency bounds the number of prefetches in flight.
	Concurrency int `json:"concurrency" validate:"min=1,max=64"`
	// Entries bounds the number of prefetched responses kept.
	Entries int `json:"entries" validate:"min=1"`
}

// Compact configures arena reclamation after commits.
type Compact struct {
	MinNodes int     `json:"minNodes" validate:"min=0"`
	Ratio    float64 `json:"ratio" validate:"gte=0,lte=1"`
}

type Log struct {
	Level string `json:"level" validate:"oneof=debug info warn error"`
}

// SlogLevel returns the slog level named by Level, defaulting to info.
func (l Log) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func Default() *Config {
	return &Config{
		Prefetch: Prefetch{
			TTL:         Duration(30 * time.Second),
			Concurrency: 5,
			Entries:     64,
		},
		Compact: Compact{
			MinNodes: 1024,
			Ratio:    0.5,
		},
		Log: Log{Level: "info"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the field constraints of c.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Duration is a time.Duration written as a string such as "30s".
type Duration time.Duration

func (d Duration) D() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a duration string or a number of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		dur, err := time.ParseDuration(x)
		if err != nil {
			return err
		}
		*d = Duration(dur)
	case float64:
		*d = Duration(int64(x))
	default:
		return fmt.Errorf("duration %s", data)
	}
	return nil
}
