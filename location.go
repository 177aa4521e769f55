// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package toon

import "fmt"

// A Span is a range of byte offsets in the input, [Pos, End).
type Span struct {
	Pos int
	End int
}

// A LineCol is a position in the input. Line is 1-based; Column is the
// 0-based byte offset within the line.
type LineCol struct {
	Line   int
	Column int
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location is the source range of a property. It covers a single line,
// except for a tabular property, whose range ends with its last row.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return loc.First.String()
	}
	return loc.First.String() + "-" + loc.Last.String()
}
