package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/signadot/flightcache/encode"
	"github.com/signadot/flightcache/parse"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for i, file := range args {
		if err := viewFile(cfg, cc.Out, file); err != nil {
			return err
		}
		if i < len(args)-1 {
			io.WriteString(cc.Out, "---\n")
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, w io.Writer, file string) error {
	d, err := readFile(file)
	if err != nil {
		return err
	}
	if cfg.Flight {
		data, err := parse.Data(d)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		return encode.EncodeData(data, w, cfg.encOpts(w)...)
	}
	s, err := parse.Snapshot(d)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	return encode.Encode(s, w, cfg.encOpts(w)...)
}
