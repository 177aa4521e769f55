// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/toon/ast"
)

func runJSON(cfg *JSONConfig, w io.Writer, in io.Reader, files []string) error {
	docs, err := cfg.readDocs(in, files)
	if err != nil {
		return err
	}
	f := cfg.formatter(w)
	for _, doc := range docs {
		switch {
		case cfg.Dump:
			err = ast.Dump(w, doc.root)
		case cfg.Compact:
			_, err = fmt.Fprintln(w, doc.root.JSON())
		default:
			err = f.Format(w, doc.root)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", doc.name, err)
		}
	}
	return nil
}

func runYAML(cfg *YAMLConfig, w io.Writer, in io.Reader, files []string) error {
	docs, err := cfg.readDocs(in, files)
	if err != nil {
		return err
	}
	for i, doc := range docs {
		data, err := ast.YAML(doc.root)
		if err != nil {
			return fmt.Errorf("encode %s: %w", doc.name, err)
		}
		if i > 0 {
			io.WriteString(w, "---\n")
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// writeValue writes v to w as formatted JSON. If raw is true and v is a
// string, its contents are written without quotation.
func (cfg *MainConfig) writeValue(w io.Writer, v ast.Value, raw bool) error {
	if s, ok := v.(ast.String); ok && raw {
		_, err := fmt.Fprintln(w, string(s))
		return err
	}
	return cfg.formatter(w).Format(w, v)
}
