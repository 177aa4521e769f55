// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

// Release detaches every value reachable from v, so that no part of the tree
// retains a reference to any other, and reports the number of values
// released including v itself. Object members are cleared, list slots and
// table rows are set to nil, and their storage is dropped.
//
// Release uses an explicit work list rather than recursion, so that neither
// deep nesting nor a wide object or list consumes stack. After Release, v and
// its descendants must not be used.
func Release(v Value) int {
	if v == nil {
		return 0
	}
	var n int
	work := []Value{v}
	for len(work) != 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]
		n++

		switch t := cur.(type) {
		case Object:
			for i, m := range t {
				if m == nil {
					continue
				}
				if m.Value != nil {
					work = append(work, m.Value)
				}
				*m = Member{}
				t[i] = nil
			}
		case List:
			for i, elt := range t {
				if elt != nil {
					work = append(work, elt)
				}
				t[i] = nil
			}
		case *Table:
			for _, row := range t.Rows {
				work = append(work, row)
			}
			t.Rows, t.Columns = nil, nil
		}
	}
	return n
}
