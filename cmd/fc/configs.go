package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/flightcache/encode"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	IDs   bool `cli:"name=ids desc='show arena ids'"`
	Depth int  `cli:"name=depth desc='limit text output depth'"`

	J bool `cli:"name=j aliases=json desc='output json'"`
	Y bool `cli:"name=y aliases=yaml desc='output yaml'"`

	OutFormat *encode.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc() cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := encode.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		cfg.OutFormat = &f
		return f, nil
	})
}

func (cfg *MainConfig) format() encode.Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	switch {
	case cfg.Y:
		return encode.YAMLFormat
	case cfg.J:
		return encode.JSONFormat
	}
	return encode.TextFormat
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	return []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
		encode.EncodeIDs(cfg.IDs),
		encode.Depth(cfg.Depth),
		encode.EncodeColors(cfg.colors(w)),
	}
}

// colors returns the colors for output to w, or nil when w is not colored.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	// an explicit -color=false wins over the terminal check
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return nil
		}
	}
	f, ok := w.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	return encode.NewColors()
}

type ApplyConfig struct {
	*MainConfig
	Prefetch bool   `cli:"name=prefetch desc='treat the flight data as a prefetch response'"`
	Diff     bool   `cli:"name=diff desc='print a diff against the input cache'"`
	Tree     string `cli:"name=tree desc='router state file; patches are checked against it'"`

	Apply *cli.Command
}

type ViewConfig struct {
	*MainConfig
	Flight bool `cli:"name=flight desc='view flight data instead of cache trees'"`

	View *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type ServeConfig struct {
	*MainConfig
	Gops      bool   `cli:"name=gops desc='start a gops agent'"`
	Responses string `cli:"name=responses desc='directory of flight data files served by url'"`

	ConfigFiles []string
	Sets        []string

	Serve *cli.Command
}

func (cfg *ServeConfig) configOpt(_ *cli.Context, a string) (any, error) {
	cfg.ConfigFiles = append(cfg.ConfigFiles, a)
	return 0, nil
}

func (cfg *ServeConfig) setOpt(_ *cli.Context, a string) (any, error) {
	cfg.Sets = append(cfg.Sets, a)
	return 0, nil
}
