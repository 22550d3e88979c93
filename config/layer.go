package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"
)

// Layer is a JSON object contributing to a configuration.
type Layer []byte

// Defaults returns the layer of Default.
func Defaults() Layer {
	d, err := json.Marshal(Default())
	if err != nil {
		panic(err)
	}
	return d
}

// Merge returns acc with layer merged over it. Neither argument is
// modified.
func Merge(acc, layer Layer) (Layer, error) {
	if len(layer) == 0 {
		return acc, nil
	}
	if len(acc) == 0 {
		acc = Layer("{}")
	}
	res, err := jsonpatch.MergePatch(acc, layer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return res, nil
}

// FileLayer reads a configuration file. The format is chosen by extension:
// .toml for TOML, anything else is read as YAML (and so JSON).
func FileLayer(path string) (Layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := DecodeLayer(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// DecodeLayer converts data in the format named by ext to a layer.
func DecodeLayer(ext string, data []byte) (Layer, error) {
	switch strings.ToLower(ext) {
	case ".toml":
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return json.Marshal(m)
	case ".yaml", ".yml", ".json", "":
		d, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFormat, ext)
}

// Set applies assignments of the form "prefetch.ttl=10s" to acc. Values are
// read as JSON when they parse as such and as strings otherwise.
func Set(acc Layer, assignments ...string) (Layer, error) {
	if len(assignments) == 0 {
		return acc, nil
	}
	ops := make([]map[string]any, 0, len(assignments))
	for _, a := range assignments {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: assignment %q", ErrInvalid, a)
		}
		var val any
		if err := json.Unmarshal([]byte(v), &val); err != nil {
			val = v
		}
		ops = append(ops, map[string]any{
			"op":    "add",
			"path":  "/" + strings.ReplaceAll(k, ".", "/"),
			"value": val,
		})
	}
	d, err := json.Marshal(ops)
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	res, err := patch.Apply(acc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return res, nil
}

// Decode decodes and validates the configuration accumulated in acc.
func Decode(acc Layer) (*Config, error) {
	c := &Config{}
	if err := json.Unmarshal(acc, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load folds the defaults, the files and the assignments, in that order.
func Load(files []string, assignments ...string) (*Config, error) {
	acc := Defaults()
	for _, f := range files {
		l, err := FileLayer(f)
		if err != nil {
			return nil, err
		}
		if acc, err = Merge(acc, l); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	acc, err := Set(acc, assignments...)
	if err != nil {
		return nil, err
	}
	return Decode(acc)
}
