// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/toon/ast"
	"github.com/creachadair/toon/ast/cursor"
	"github.com/creachadair/toon/jpath"
	"github.com/creachadair/toon/query"
	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires a path argument", cli.ErrUsage)
	}
	return runGet(cfg, cc.Out, cc.In, args[0], args[1:])
}

func runGet(cfg *GetConfig, w io.Writer, in io.Reader, path string, files []string) error {
	lookup, err := compileLookup(path)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	docs, err := cfg.readDocs(in, files)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		v, err := lookup(doc.root)
		if err != nil {
			return fmt.Errorf("%s: %w", doc.name, err)
		}
		if err := cfg.writeValue(w, v, cfg.Raw); err != nil {
			return err
		}
	}
	return nil
}

// compileLookup returns a function that resolves path in a document. A path
// beginning with "$" is a path expression; otherwise it is a dotted path.
func compileLookup(path string) (func(ast.Value) (ast.Value, error), error) {
	if strings.HasPrefix(path, "$") {
		q, err := jpath.Compile(path)
		if err != nil {
			return nil, err
		}
		return func(v ast.Value) (ast.Value, error) { return query.Eval(v, q) }, nil
	}
	if path == "" {
		return nil, fmt.Errorf("invalid path %q", path)
	}
	keys := cursor.ParsePath(path)
	return func(v ast.Value) (ast.Value, error) {
		c := cursor.New(v).Down(keys...)
		if err := c.Err(); err != nil {
			return nil, fmt.Errorf("at %q: %w", c.Location(), err)
		}
		return c.Value(), nil
	}, nil
}
