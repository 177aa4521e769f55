// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

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
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "toon").
		WithSynopsis("toon [opts] command [opts]").
		WithDescription("toon is a tool for working with TOON documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toonMain(cfg, cc, args)
		}).
		WithSubs(
			JSONCommand(cfg),
			YAMLCommand(cfg),
			GetCommand(cfg),
			SelectCommand(cfg),
			PatchCommand(cfg),
			DiffCommand(cfg),
			CheckCommand(cfg))
}

func JSONCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &JSONConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.JSON, "json").
		WithAliases("j").
		WithSynopsis("json [opts] [files]").
		WithDescription("convert TOON documents to JSON").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.JSON.Parse(cc, args)
			if err != nil {
				return err
			}
			return runJSON(cfg, cc.Out, cc.In, args)
		})
}

func YAMLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &YAMLConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.YAML, "yaml").
		WithAliases("y").
		WithSynopsis("yaml [files]").
		WithDescription("convert TOON documents to YAML").
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.YAML.Parse(cc, args)
			if err != nil {
				return err
			}
			return runYAML(cfg, cc.Out, cc.In, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [opts] <path> [files]").
		WithDescription("get values by dotted path (a.0.b) or path expression ($.a[*].b)").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SelectCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SelectConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Select, "select").
		WithAliases("s", "sel").
		WithSynopsis("select [opts] <expr> [files]").
		WithDescription("select the rows of a table or elements of a list that satisfy expr").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return selectRows(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [opts] <patchfile> [files]").
		WithDescription("apply a JSON patch (or merge patch, with -m) to documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff a b").
		WithDescription("compare two documents as formatted JSON").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [files]").
		WithDescription("report diagnostics for documents").
		WithRun(func(cc *cli.Context, args []string) error {
			args, err := cfg.Check.Parse(cc, args)
			if err != nil {
				return err
			}
			return runCheck(cfg, cc.Out, cc.In, args)
		})
}
