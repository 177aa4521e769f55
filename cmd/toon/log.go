// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"io"
	"log/slog"
	"os"
)

var theLog = newLog(os.Stderr)

// newLog returns a logger that writes text records to w, omitting the time
// and the level of informational records.
func newLog(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey && a.Value.String() == "INFO" {
				return slog.Attr{}
			}
			return a
		},
	}))
}
