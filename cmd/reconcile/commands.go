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
			Name:        "types",
			Description: "load record type declarations, may be repeated",
			Type:        cli.NamedFuncOpt(cfg.typesOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "logfile",
			Description: "log to a rotated file instead of stderr",
			Type:        cli.NamedFuncOpt(cfg.logFile, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}, &cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "reconcile").
		WithSynopsis("reconcile [opts] command [opts]").
		WithDescription("reconcile diffs, applies and composes state snapshots.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return reconcileMain(cfg, cc, args)
		}).
		WithSubs(
			DiffCommand(cfg),
			ApplyCommand(cfg),
			ComposeCommand(cfg),
			GetCommand(cfg),
			ViewCommand(cfg),
			TypesCommand(cfg))
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg, Indent: 2}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [opts] a b").
		WithDescription(diffDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

const diffDescription = `diff computes the changes turning snapshot a into snapshot b.

The result is a serialized diff, which apply and compose read. With -plain,
each change is printed on one line instead:

  - path: item       remove item from the mapping, set or record at path
  = path: value      set the key or field at path
  ~ path: old -> new set, showing the value replaced
  + path: item       add item to the set at path

With -jsonpatch the diff is written as an RFC 6902 patch, which is only
possible when no set is changed and all mapping keys are strings.

Either a or b may be '-' for stdin.`

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a", "ap").
		WithOpts(opts...).
		WithSynopsis("apply [opts] <diff> [snapshot]").
		WithDescription("apply a diff to a snapshot, read from stdin when not given").
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

func ComposeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ComposeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Compose, "compose").
		WithAliases("c", "co").
		WithSynopsis("compose <diff>...").
		WithDescription("compose diffs, in order, into one diff").
		WithRun(func(cc *cli.Context, args []string) error {
			return compose(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g", "ge").
		WithSynopsis("get <path> [files]").
		WithDescription(`get the values at a path, such as nodes["n1"].applications, from snapshots`).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view snapshots, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Types, "types").
		WithAliases("t").
		WithSynopsis("types").
		WithDescription("list the registered record types").
		WithRun(func(cc *cli.Context, args []string) error {
			return types(cfg, cc, args)
		})
}
