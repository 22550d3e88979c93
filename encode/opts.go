package encode

import (
	"fmt"
	"strings"
)

type Format int

const (
	TextFormat Format = iota
	YAMLFormat
	JSONFormat
)

func (f Format) String() string {
	switch f {
	case YAMLFormat:
		return "yaml"
	case JSONFormat:
		return "json"
	}
	return "text"
}

func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(v) {
	case "", "text", "t":
		return TextFormat, nil
	case "yaml", "yml", "y":
		return YAMLFormat, nil
	case "json", "j":
		return JSONFormat, nil
	}
	return TextFormat, fmt.Errorf("unknown format %q", v)
}

// FormatSuffix returns the file extension for the given format.
func FormatSuffix(f Format) string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	default:
		return ".txt"
	}
}

type EncodeOption func(*EncState)

func EncodeFormat(f Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Depth limits the text rendering to n levels below the root. Zero means no
// limit.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}

func EncodeIDs(v bool) EncodeOption {
	return func(es *EncState) { es.ids = v }
}

func EncodeHeads(v bool) EncodeOption {
	return func(es *EncState) { es.heads = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
