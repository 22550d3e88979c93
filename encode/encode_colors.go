package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/flightcache/cache"
)

type ColorAttr int

const (
	SepColor ColorAttr = iota
	SlotColor
	SegmentColor
	LazyColor
	FetchColor
	ReadyColor
	ContentColor
	HeadColor
	IDColor
)

// StatusColor returns the attribute under which status s is colored.
func StatusColor(s cache.Status) ColorAttr {
	switch s {
	case cache.Ready:
		return ReadyColor
	case cache.DataFetch:
		return FetchColor
	}
	return LazyColor
}

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			SepColor:     color.RGB(255, 0, 196).SprintfFunc(),
			SlotColor:    color.RGB(128, 168, 196).SprintfFunc(),
			SegmentColor: color.RGB(196, 96, 16).SprintfFunc(),
			LazyColor:    color.RGB(96, 96, 96).SprintfFunc(),
			FetchColor:   color.YellowString,
			ReadyColor:   color.GreenString,
			ContentColor: color.RGB(8, 196, 16).SprintfFunc(),
			HeadColor:    color.RGB(198, 198, 46).SprintfFunc(),
			IDColor:      color.BlueString,
		},
	}
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}
