// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/toon/ast"
	jsonpatch "github.com/evanphx/json-patch"
	"github.com/scott-cotton/cli"
	"github.com/tailscale/hujson"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return runPatch(cfg, cc.Out, cc.In, data, args[1:])
}

// runPatch applies the patch in data to each input document. The patch is
// JSON, and may contain comments and trailing commas.
//
// Patching is done on the JSON encoding of a document. Since the result is
// re-encoded by the patch library, the members of patched objects are in
// order by key.
func runPatch(cfg *PatchConfig, w io.Writer, in io.Reader, data []byte, files []string) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("invalid patch: %w", err)
	}
	apply := func(doc []byte) ([]byte, error) { return jsonpatch.MergePatch(doc, std) }
	if !cfg.Merge {
		ops, err := jsonpatch.DecodePatch(std)
		if err != nil {
			return fmt.Errorf("invalid patch: %w", err)
		}
		apply = ops.Apply
	}

	docs, err := cfg.readDocs(in, files)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		out, err := apply([]byte(doc.root.JSON()))
		if err != nil {
			return fmt.Errorf("patch %s: %w", doc.name, err)
		}
		v, err := ast.FromYAML(out)
		if err != nil {
			return fmt.Errorf("patch %s: %w", doc.name, err)
		}
		if err := cfg.writeValue(w, v, false); err != nil {
			return err
		}
	}
	return nil
}
