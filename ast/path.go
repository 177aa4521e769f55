// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"strings"
)

// Get resolves a dotted path of keys starting from v, and returns the value
// found, or nil. Each segment of the path selects the first member of an
// object whose key is equal to the segment. Get returns nil if v is nil, if
// path is empty, if any key is not found, or if the path traverses a value
// that is not an object.
func Get(v Value, path string) Value {
	if v == nil || path == "" {
		return nil
	}
	for key := range strings.SplitSeq(path, ".") {
		obj, ok := v.(Object)
		if !ok {
			return nil
		}
		m := obj.Find(key)
		if m == nil {
			return nil
		}
		v = m.Value
	}
	return v
}

// Len reports the number of elements of a list, or the number of rows of a
// table. If v is neither, Len returns -1.
func Len(v Value) int {
	switch t := v.(type) {
	case List:
		return len(t)
	case *Table:
		return len(t.Rows)
	}
	return -1
}

// At returns the element at offset i of a list, or the row at offset i of a
// table. It returns nil if v is neither, or if i is out of range.
func At(v Value, i int) Value {
	if i < 0 {
		return nil
	}
	switch t := v.(type) {
	case List:
		if i < len(t) {
			return t[i]
		}
	case *Table:
		if i < len(t.Rows) {
			return t.Rows[i]
		}
	}
	return nil
}

// Path traverses a sequential path into the structure of v, and returns the
// value reached. Each path element must be one of:
//
//   - A string, which selects the first member of an object with that key.
//   - An int, which selects the element of a list, the row of a table, or the
//     member value of an object at that offset. Negative offsets count
//     backward from the end (-1 is last, -2 second last).
//   - A func(Value) (Value, error), whose result becomes the next value.
//
// If the path cannot be completely consumed, Path returns the value reached
// before the failing element, along with an error.
func Path(v Value, keys ...any) (Value, error) {
	cur := v
	for _, key := range keys {
		next, err := pathStep(cur, key)
		if err != nil {
			return cur, err
		}
		cur = next
	}
	return cur, nil
}

func pathStep(v Value, key any) (Value, error) {
	switch t := key.(type) {
	case string:
		obj, ok := v.(Object)
		if !ok {
			return nil, fmt.Errorf("cannot traverse %s with %q", kindOf(v), t)
		}
		m := obj.Find(t)
		if m == nil {
			return nil, fmt.Errorf("key %q not found", t)
		}
		return m.Value, nil

	case int:
		var n int
		switch e := v.(type) {
		case Object:
			n = len(e)
		case List, *Table:
			n = Len(e)
		default:
			return nil, fmt.Errorf("cannot traverse %s with %v", kindOf(v), t)
		}
		i, ok := fixBound(n, t)
		if !ok {
			return nil, fmt.Errorf("index %d out of bounds (n=%d)", t, n)
		}
		if obj, ok := v.(Object); ok {
			return obj[i].Value, nil
		}
		return At(v, i), nil

	case func(Value) (Value, error):
		return t(v)

	default:
		return nil, errors.New("invalid path element")
	}
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func kindOf(v Value) Kind {
	if v == nil {
		return InvalidKind
	}
	return v.Kind()
}
