package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "fc").
		WithSynopsis("fc [opts] command [opts]").
		WithDescription("fc merges flight data into route cache trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fcMain(cfg, cc, args)
		}).
		WithSubs(
			ApplyCommand(cfg),
			ViewCommand(cfg),
			QueryCommand(cfg),
			DiffCommand(cfg),
			ServeCommand(cfg))
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a").
		WithOpts(opts...).
		WithSynopsis("apply [-prefetch] [-diff] [-tree file] <cache> <flight>").
		WithDescription("merge flight data into a cache tree and print the result").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [files]").
		WithDescription("view cache trees with node states in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithOpts(opts...).
		WithSynopsis("query <expr> [files]").
		WithDescription("list cache nodes matching an expression, e.g. 'status == \"LAZY\"'").
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff a b").
		WithDescription("diff cache trees node by node").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts,
		&cli.Opt{
			Name:        "config",
			Description: "configuration file (yaml, json or toml), may be repeated",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.configOpt), "(path)"),
		},
		&cli.Opt{
			Name:        "set",
			Description: "set a configuration value",
			Type:        cli.NamedFuncOpt(cli.FuncOpt(cfg.setOpt), "(path=val)"),
		})
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithOpts(opts...).
		WithSynopsis("serve [-config file] [-set path=val] [-gops] [-responses dir]").
		WithDescription("serve a flight cache store over JSON-RPC on stdio").
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}
