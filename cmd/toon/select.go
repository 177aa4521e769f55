// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/toon/ast/cursor"
	"github.com/creachadair/toon/query"
	"github.com/scott-cotton/cli"
)

func selectRows(cfg *SelectConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Select.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: select requires an expression", cli.ErrUsage)
	}
	return runSelect(cfg, cc.Out, cc.In, args[0], args[1:])
}

func runSelect(cfg *SelectConfig, w io.Writer, in io.Reader, src string, files []string) error {
	p, err := query.Compile(src)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	q := query.Seq{query.Path(cursor.ParsePath(cfg.From)...), query.Where(p)}
	if cfg.Columns != "" {
		q = append(q, query.Columns(strings.Split(cfg.Columns, ",")...))
	}

	docs, err := cfg.readDocs(in, files)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		v, err := query.Eval(doc.root, q)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.name, err)
		}
		if err := cfg.writeValue(w, v, false); err != nil {
			return err
		}
	}
	return nil
}
