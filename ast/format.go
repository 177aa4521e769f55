// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bufio"
	"io"
	"strings"

	"github.com/creachadair/toon"
)

// A Formatter carries the settings for pretty-printing values as JSON.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the text added per level of nesting. If empty, two spaces
	// are used.
	Indent string

	// Colors, if non-nil, is used to colorize the output.
	Colors *Colors
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

// Format renders a pretty-printed JSON representation of v to w with default
// settings.
func Format(w io.Writer, v Value) error {
	var f Formatter
	return f.Format(w, v)
}

// FormatToString formats v to a string with default settings.
func FormatToString(v Value) string {
	var sb strings.Builder
	Format(&sb, v) // a strings.Builder does not fail
	return sb.String()
}

// Format renders a pretty-printed JSON representation of v to w using the
// settings from f. Output is terminated by a newline.
func (f Formatter) Format(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	f.formatValue(bw, v, "")
	bw.WriteByte('\n')
	return bw.Flush()
}

func (f Formatter) formatValue(w *bufio.Writer, v Value, indent string) {
	switch t := v.(type) {
	case Object:
		f.formatObject(w, t, indent)
	case List:
		f.formatList(w, t, indent)
	case *Table:
		f.formatList(w, t.List(), indent)
	case nil:
		w.WriteString(f.Colors.color(NullKind, "null"))
	default:
		w.WriteString(f.Colors.color(t.Kind(), t.JSON()))
	}
}

func (f Formatter) formatObject(w *bufio.Writer, o Object, indent string) {
	if len(o) == 0 {
		w.WriteString(f.Colors.sep("{}"))
		return
	}
	w.WriteString(f.Colors.sep("{"))
	w.WriteByte('\n')
	inner := indent + f.indent()
	for i, m := range o {
		w.WriteString(inner)
		w.WriteString(f.Colors.key(toon.Quote(m.Key)))
		w.WriteString(f.Colors.sep(":"))
		w.WriteByte(' ')
		f.formatValue(w, m.Value, inner)
		if i+1 < len(o) {
			w.WriteString(f.Colors.sep(","))
		}
		w.WriteByte('\n')
	}
	w.WriteString(indent)
	w.WriteString(f.Colors.sep("}"))
}

func (f Formatter) formatList(w *bufio.Writer, l List, indent string) {
	if len(l) == 0 {
		w.WriteString(f.Colors.sep("[]"))
		return
	}
	w.WriteString(f.Colors.sep("["))
	w.WriteByte('\n')
	inner := indent + f.indent()
	for i, v := range l {
		w.WriteString(inner)
		f.formatValue(w, v, inner)
		if i+1 < len(l) {
			w.WriteString(f.Colors.sep(","))
		}
		w.WriteByte('\n')
	}
	w.WriteString(indent)
	w.WriteString(f.Colors.sep("]"))
}
