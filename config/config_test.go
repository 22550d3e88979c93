package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	c, err := Decode(Defaults())
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	yml := filepath.Join(dir, "a.yaml")
	tml := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(yml, []byte("prefetch:\n  ttl: 1m\n  concurrency: 2\nlog:\n  level: debug\n"), 0o644))
	require.NoError(t, os.WriteFile(tml, []byte("[prefetch]\nconcurrency = 3\n[compact]\nratio = 0.25\n"), 0o644))

	c, err := Load([]string{yml, tml}, "compact.minNodes=10", "log.level=warn")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, c.Prefetch.TTL.D())
	assert.Equal(t, 3, c.Prefetch.Concurrency)
	assert.Equal(t, 64, c.Prefetch.Entries)
	assert.Equal(t, 10, c.Compact.MinNodes)
	assert.InDelta(t, 0.25, c.Compact.Ratio, 1e-9)
	assert.Equal(t, "warn", c.Log.Level)
}

func TestMergeIsPure(t *testing.T) {
	acc := Defaults()
	before := string(acc)
	next, err := Merge(acc, Layer(`{"prefetch": {"entries": 8}}`))
	require.NoError(t, err)
	assert.Equal(t, before, string(acc))
	c, err := Decode(next)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Prefetch.Entries)
	assert.Equal(t, 5, c.Prefetch.Concurrency)
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		set  []string
	}{
		{"zero concurrency", []string{"prefetch.concurrency=0"}},
		{"ratio", []string{"compact.ratio=2"}},
		{"level", []string{"log.level=loud"}},
		{"ttl", []string{"prefetch.ttl=soon"}},
		{"assignment", []string{"prefetch"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(nil, tc.set...)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
	_, err := DecodeLayer(".ini", nil)
	assert.ErrorIs(t, err, ErrFormat)
}
