// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/toon"
	"github.com/creachadair/toon/ast"
)

// A document is a parsed input, with the diagnostics reported for it.
type document struct {
	name  string
	root  ast.Object
	diags []*toon.Diagnostic
}

// errorCount reports the number of lines of d that were skipped.
func (d *document) errorCount() int {
	var n int
	for _, diag := range d.diags {
		if diag.Severity == toon.Error {
			n++
		}
	}
	return n
}

// readDocs parses the named files, or in if there are none. The name "-"
// also denotes in.
func (cfg *MainConfig) readDocs(in io.Reader, files []string) ([]*document, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var out []*document
	for _, name := range files {
		doc, err := cfg.readDoc(in, name)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (cfg *MainConfig) readDoc(in io.Reader, name string) (*document, error) {
	r := in
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", name, err)
		}
		defer f.Close()
		r = f
	} else if r == nil {
		r = os.Stdin
	}
	return cfg.parseDoc(name, r)
}

func (cfg *MainConfig) parseDoc(name string, r io.Reader) (*document, error) {
	doc := &document{name: name}
	root, err := ast.Parse(r, cfg.parseOpts(func(d *toon.Diagnostic) {
		doc.diags = append(doc.diags, d)
		if cfg.Quiet {
			return
		}
		if d.Severity == toon.Warning {
			theLog.Warn(d.Message, "file", name, "line", d.Line)
		} else {
			theLog.Error(d.Message, "file", name, "line", d.Line)
		}
	})...)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", name, err)
	}
	doc.root = root
	if n := doc.errorCount(); cfg.Strict && n != 0 {
		return nil, fmt.Errorf("%s: %d malformed lines", name, n)
	}
	theLog.Debug("parsed", "file", name, "members", len(root), "diagnostics", len(doc.diags))
	return doc, nil
}
