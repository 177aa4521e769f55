// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/fatih/color"
)

// A ColorFunc renders text with a color. It has the signature of the
// functions returned by (*color.Color).SprintfFunc.
type ColorFunc = func(string, ...any) string

// Colors is a palette for colorizing formatted output. A nil *Colors renders
// text without color.
type Colors struct {
	Default ColorFunc
	Key     ColorFunc // object keys
	Sep     ColorFunc // brackets, braces, colons, and commas
	Values  map[Kind]ColorFunc
}

// NewColors returns the default palette for terminal output. The functions
// of the palette honor color.NoColor, so that output is plain when it is not
// directed to a terminal.
func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Key:     color.RGB(128, 168, 196).SprintfFunc(),
		Sep:     color.RGB(196, 128, 128).SprintfFunc(),
		Values: map[Kind]ColorFunc{
			StringKind:  color.RGB(8, 196, 16).SprintfFunc(),
			IntegerKind: color.RGB(128, 216, 236).SprintfFunc(),
			DoubleKind:  color.RGB(128, 216, 236).SprintfFunc(),
			BoolKind:    color.CyanString,
			NullKind:    color.RGB(168, 0, 196).SprintfFunc(),
		},
	}
}

func colorDefault(format string, args ...any) string { return fmt.Sprintf(format, args...) }

func (c *Colors) get(k Kind) ColorFunc {
	if c == nil {
		return colorDefault
	} else if f := c.Values[k]; f != nil {
		return f
	} else if c.Default != nil {
		return c.Default
	}
	return colorDefault
}

// apply renders s with f. The text is passed as an argument rather than as
// the format, since it may contain "%".
func apply(f ColorFunc, s string) string {
	if f == nil {
		return s
	}
	return f("%s", s)
}

func (c *Colors) color(k Kind, s string) string { return apply(c.get(k), s) }

func (c *Colors) key(s string) string {
	if c == nil {
		return s
	}
	return apply(c.Key, s)
}

func (c *Colors) sep(s string) string {
	if c == nil {
		return s
	}
	return apply(c.Sep, s)
}
