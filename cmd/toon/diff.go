// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/toon/ast"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two files", cli.ErrUsage)
	}
	differ, err := runDiff(cfg, cc.Out, cc.In, args[0], args[1])
	if err != nil {
		return err
	} else if differ {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// runDiff writes a line diff of the formatted JSON of two documents to w, and
// reports whether they differ. Each line is prefixed by "-" if it occurs only
// in a, "+" if it occurs only in b, and a space otherwise.
func runDiff(cfg *DiffConfig, w io.Writer, in io.Reader, a, b string) (bool, error) {
	docs, err := cfg.readDocs(in, []string{a, b})
	if err != nil {
		return false, err
	}
	textA := ast.FormatToString(docs[0].root)
	textB := ast.FormatToString(docs[1].root)
	if textA == textB {
		return false, nil
	}

	del, ins := fmt.Sprint, fmt.Sprint
	if cfg.useColor(w) {
		del, ins = color.New(color.FgRed).SprintFunc(), color.New(color.FgGreen).SprintFunc()
	}
	fmt.Fprintf(w, "--- %s\n+++ %s\n", a, b)

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(textA, textB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintln(w, del("-"+line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintln(w, ins("+"+line))
			default:
				fmt.Fprintln(w, " "+line)
			}
		}
	}
	return true, nil
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
