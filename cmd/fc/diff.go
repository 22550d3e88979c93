package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/signadot/flightcache/encode"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: expected 2 files", cli.ErrUsage)
	}
	from, to := args[0], args[1]
	if cfg.Reverse {
		from, to = to, from
	}
	a, err := readSnapshot(from)
	if err != nil {
		return err
	}
	b, err := readSnapshot(to)
	if err != nil {
		return err
	}
	return lineDiff(cc.Out,
		encode.MustString(a, encode.EncodeIDs(cfg.IDs)),
		encode.MustString(b, encode.EncodeIDs(cfg.IDs)),
		cfg.colors(cc.Out))
}

// lineDiff writes the line diff of a and b, one line per node, prefixed by
// '-', '+' or ' '.
func lineDiff(w io.Writer, a, b string, colors *encode.Colors) error {
	dmp := diffmatchpatch.New()
	ra, rb, lines := dmp.DiffLinesToRunes(a+"\n", b+"\n")
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(ra, rb, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		prefix, attr := " ", encode.LazyColor
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix, attr = "-", encode.SepColor
		case diffmatchpatch.DiffInsert:
			prefix, attr = "+", encode.ReadyColor
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = prefix + line
			if colors != nil && d.Type != diffmatchpatch.DiffEqual {
				line = colors.Color(attr, strings.TrimSuffix(line, "\n")) + "\n"
			}
			sb.WriteString(line)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
