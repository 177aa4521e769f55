// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"os"
	"strings"

	"github.com/creachadair/toon"
	"github.com/creachadair/toon/ast"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color    bool `cli:"name=color desc='colorize output'"`
	Unescape bool `cli:"name=u aliases=unescape desc='decode escapes in quoted strings'"`
	Quiet    bool `cli:"name=q aliases=quiet desc='do not log diagnostics'"`
	Strict   bool `cli:"name=strict desc='fail if any input line is skipped'"`
	MaxDepth int  `cli:"name=depth desc='maximum object nesting depth (default 64)'"`
	Indent   int  `cli:"name=indent desc='spaces per level of formatted output (default 2)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// parseOpts returns the parser options for cfg. Each diagnostic is passed
// to onDiag.
func (cfg *MainConfig) parseOpts(onDiag func(*toon.Diagnostic)) []ast.Option {
	return []ast.Option{
		ast.Unescape(cfg.Unescape),
		ast.MaxDepth(cfg.MaxDepth),
		ast.OnDiagnostic(onDiag),
	}
}

// useColor reports whether output to w should be colorized. An explicit
// -color flag wins; otherwise output is colorized if w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) formatter(w io.Writer) ast.Formatter {
	var f ast.Formatter
	if cfg.Indent > 0 {
		f.Indent = strings.Repeat(" ", cfg.Indent)
	}
	if cfg.useColor(w) {
		f.Colors = ast.NewColors()
	}
	return f
}

type JSONConfig struct {
	*MainConfig
	Compact bool `cli:"name=c aliases=compact desc='write compact JSON'"`
	Dump    bool `cli:"name=dump desc='write a debugging dump instead of JSON'"`

	JSON *cli.Command
}

type YAMLConfig struct {
	*MainConfig

	YAML *cli.Command
}

type GetConfig struct {
	*MainConfig
	Raw bool `cli:"name=r aliases=raw desc='write strings without quotes'"`

	Get *cli.Command
}

type SelectConfig struct {
	*MainConfig
	From    string `cli:"name=from desc='dotted path of the list or table to filter'"`
	Columns string `cli:"name=cols desc='comma-separated columns to keep'"`

	Select *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=m aliases=merge desc='apply a JSON merge patch'"`

	Patch *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}

type CheckConfig struct {
	*MainConfig

	Check *cli.Command
}
