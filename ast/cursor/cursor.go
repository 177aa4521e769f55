// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements stateful traversal over a TOON value tree.
package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/toon/ast"
)

// Path traverses a sequential path into the structure of v, where path
// elements are as documented for the Cursor.Down method, and returns the
// value reached as a T. It reports an error if the path fails, or if the
// value reached is not a T.
func Path[T ast.Value](v ast.Value, path ...any) (T, error) {
	c := New(v).Down(path...)
	var zero T
	if err := c.Err(); err != nil {
		return zero, err
	}
	out, ok := c.Value().(T)
	if !ok {
		return zero, fmt.Errorf("wrong value type %T", c.Value())
	}
	return out, nil
}

// ParsePath parses a dotted path string into path elements suitable for
// Down. A segment that is a valid decimal integer (possibly negative) is an
// offset; any other segment is a key. An empty string yields no elements.
func ParsePath(s string) []any {
	if s == "" {
		return nil
	}
	var out []any
	for seg := range strings.SplitSeq(s, ".") {
		if n, err := strconv.Atoi(seg); err == nil {
			out = append(out, n)
		} else {
			out = append(out, seg)
		}
	}
	return out
}

// A Cursor is a pointer that navigates into the structure of an ast.Value.
type Cursor struct {
	org  ast.Value
	stk  []ast.Value
	keys []string
	err  error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin ast.Value) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() ast.Value { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() ast.Value {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []ast.Value {
	return append([]ast.Value{c.org}, c.stk...)
}

// Location renders the steps from the origin to the current location as a
// dotted path, in the format accepted by ParsePath.
func (c *Cursor) Location() string { return strings.Join(c.keys, ".") }

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
		c.keys = c.keys[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk, c.keys, c.err = c.stk[:0], c.keys[:0], nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are strings (denoting object keys),
// integers (denoting offsets), or functions (see below). If the path cannot
// be completely consumed, traversal stops at the last value reached and an
// error is recorded. Use Err to recover the error.
//
// If a path element is a string, the corresponding value must be an object,
// and the string selects the value of the first member with that key.
//
// If a path element is an integer, the corresponding value must be a list, a
// table, or an object, and the integer selects an element, a row, or the
// value of a member at that offset. Negative offsets count backward from the
// end (-1 is last, -2 second last). An error is reported if the offset is out
// of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(ast.Value) (ast.Value, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := cur.(ast.Object)
			if !ok {
				return c.setErrorf("cannot traverse %s with %q", kindOf(cur), t)
			}
			m := obj.Find(t)
			if m == nil {
				return c.setErrorf("key %q not found", t)
			}
			cur = c.push(t, m.Value)

		case int:
			n := ast.Len(cur)
			obj, isObj := cur.(ast.Object)
			if isObj {
				n = len(obj)
			} else if n < 0 {
				return c.setErrorf("cannot traverse %s with %v", kindOf(cur), t)
			}
			i, ok := fixBound(n, t)
			if !ok {
				return c.setErrorf("%s index %d out of bounds (n=%d)", kindOf(cur), t, n)
			}
			if isObj {
				cur = c.push(obj[i].Key, obj[i].Value)
			} else {
				cur = c.push(strconv.Itoa(i), ast.At(cur, i))
			}

		case func(ast.Value) (ast.Value, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push("*", next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(key string, v ast.Value) ast.Value {
	c.stk = append(c.stk, v)
	c.keys = append(c.keys, key)
	return v
}

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}

func kindOf(v ast.Value) ast.Kind {
	if v == nil {
		return ast.InvalidKind
	}
	return v.Kind()
}
