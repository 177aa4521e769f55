// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

// runCheck writes the diagnostics for each input to w, one per line. It
// reports an error if any input has a malformed line.
func runCheck(cfg *CheckConfig, w io.Writer, in io.Reader, files []string) error {
	quiet := *cfg.MainConfig
	quiet.Quiet, quiet.Strict = true, false
	docs, err := quiet.readDocs(in, files)
	if err != nil {
		return err
	}
	var nerr int
	for _, doc := range docs {
		for _, d := range doc.diags {
			fmt.Fprintf(w, "%s:%d: %s: %s\n", doc.name, d.Line, d.Severity, d.Message)
		}
		nerr += doc.errorCount()
	}
	if nerr != 0 {
		theLog.Error("check failed", "errors", nerr)
		return cli.ExitCodeErr(1)
	}
	return nil
}
