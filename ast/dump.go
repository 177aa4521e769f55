// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dump writes a debugging representation of v to w, one line per member.
// Each scalar is followed by its kind in parentheses:
//
//	name: "Ada" (string)
//	born: { (object)
//	  year: 1815 (integer)
//	}
//	tags: ["math","engines"] (list)
//	users: [1]{id,name} (table)
//	  { (row 0)
//	    id: 1 (integer)
//	    name: "Bob" (string)
//	  }
func Dump(w io.Writer, v Value) error {
	bw := bufio.NewWriter(w)
	if obj, ok := v.(Object); ok {
		dumpMembers(bw, obj, "")
	} else {
		fmt.Fprintln(bw, dumpScalar(v))
	}
	return bw.Flush()
}

func dumpMembers(w *bufio.Writer, obj Object, indent string) {
	inner := indent + "  "
	for _, m := range obj {
		fmt.Fprintf(w, "%s%s: ", indent, m.Key)
		switch t := m.Value.(type) {
		case Object:
			fmt.Fprintln(w, "{ (object)")
			dumpMembers(w, t, inner)
			fmt.Fprintf(w, "%s}\n", indent)
		case *Table:
			fmt.Fprintf(w, "[%d]{%s} (table)\n", len(t.Rows), strings.Join(t.Columns, ","))
			for i, row := range t.Rows {
				fmt.Fprintf(w, "%s{ (row %d)\n", inner, i)
				dumpMembers(w, row, inner+"  ")
				fmt.Fprintf(w, "%s}\n", inner)
			}
		default:
			fmt.Fprintln(w, dumpScalar(t))
		}
	}
}

func dumpScalar(v Value) string {
	if v == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%s (%v)", v.JSON(), v.Kind())
}
