// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package query implements structural queries over TOON values.
//
// A query describes a syntactic substructure of a value tree, such as an
// object member, a list element, a table row, or a path through the tree.
// Evaluating a query against a concrete value traverses the structure
// described by the query and returns the resulting value.
//
// The simplest query is for a "path", a sequence of object keys and/or
// offsets that describes a path from the root of a value. For example, given
// the document:
//
//	users[2]{id,name}:
//	  1,Alice
//	  2,Bob
//
// the query
//
//	query.Path("users", 1, "name")
//
// yields the string "Bob".
//
// Queries that operate on sequences accept either a list or a table. A table
// is treated as a list of its rows.
package query

import (
	"errors"
	"fmt"
	"slices"

	"github.com/creachadair/toon/ast"
)

// Eval evaluates the given query beginning from root, returning the resulting
// value or an error.
func Eval(root ast.Value, q Query) (ast.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a TOON value.
type Query interface {
	eval(ast.Value) (ast.Value, error)
}

// Path traverses a sequence of nested object keys or offsets from the root.
// If no keys are specified, the root is returned. Each key must be a string,
// an int, or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return objKey(t)
	case int:
		return nthQuery(t)
	case Query:
		return t
	default:
		panic("invalid path element")
	}
}

type objKey string

func (o objKey) eval(v ast.Value) (ast.Value, error) {
	obj, ok := v.(ast.Object)
	if !ok {
		return nil, fmt.Errorf("got %s, want object", kindOf(v))
	}
	mem := obj.Find(string(o))
	if mem == nil {
		return nil, fmt.Errorf("key %q not found", o)
	}
	return mem.Value, nil
}

type nthQuery int

func (nq nthQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	idx, ok := fixBound(len(elts), int(nq))
	if !ok {
		return nil, fmt.Errorf("index %d out of range (0..%d)", nq, len(elts))
	}
	return elts[idx], nil
}

// Selection constructs a list of the elements of its input list or table,
// for which the specified function returns true.
type Selection func(ast.Value) bool

func (q Selection) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := ast.List{}
	for _, elt := range elts {
		if q(elt) {
			out = append(out, elt)
		}
	}
	return out, nil
}

// Mapping constructs a list in which each value is replaced by the result of
// calling the specified function on the corresponding input value.
type Mapping func(ast.Value) ast.Value

func (q Mapping) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.List, len(elts))
	for i, elt := range elts {
		out[i] = q(elt)
	}
	return out, nil
}

// Slice selects a slice of a list from offsets lo to hi. The range includes
// lo but excludes hi. Negative offsets select from the end of the list.
// If hi == 0, the length of the list is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	lox := q.lo
	if lox < 0 {
		lox += len(elts)
	}
	hix := q.hi
	if hix <= 0 {
		hix += len(elts)
	}
	if lox < 0 || lox >= len(elts) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.lo, len(elts))
	} else if hix < 0 || hix > len(elts) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.hi, len(elts))
	} else if lox > hix {
		return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
	}
	return elts[lox:hix], nil
}

// Pick constructs a list by picking the designated offsets from a list.
// Negative offsets select from the end of the input.
func Pick(offsets ...int) Query { return pickQuery(offsets) }

type pickQuery []int

func (q pickQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.List, 0, len(q))
	for _, off := range q {
		i, ok := fixBound(len(elts), off)
		if !ok {
			return nil, fmt.Errorf("index %d out of range (0..%d)", off, len(elts))
		}
		out = append(out, elts[i])
	}
	return out, nil
}

// Len returns an integer representing the length of the root.
//
// For an object, the length is the number of members.
// For a list, the length is the number of elements.
// For a table, the length is the number of rows.
// For a string, the length is the length of the string in bytes.
// For null, the length is zero.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v ast.Value) (ast.Value, error) {
	if ast.IsNull(v) {
		return ast.Int(0), nil
	}
	if t, ok := v.(interface {
		Len() int
	}); ok {
		return ast.Int(t.Len()), nil
	}
	return nil, fmt.Errorf("cannot take length of %s", kindOf(v))
}

// Seq is a sequential composition of queries. An empty sequence selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v ast.Value) (ast.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives. The result of
// the first alternative that does not report an error is returned. If there
// are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v ast.Value) (ast.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Recur applies a query to each recursive descendant of its input and returns
// a list of the resulting values. The arguments have the same constraints as
// Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(v ast.Value) (ast.Value, error) {
	var out ast.List

	stk := []ast.Value{v}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		if r, err := q.Query.eval(next); err == nil {
			out = append(out, r)
		}

		// Push in reverse order, so we visit in source order.
		switch t := next.(type) {
		case ast.Object:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i].Value)
			}
		case ast.List:
			for i := len(t) - 1; i >= 0; i-- {
				stk = append(stk, t[i])
			}
		case *ast.Table:
			for i := len(t.Rows) - 1; i >= 0; i-- {
				stk = append(stk, t.Rows[i])
			}
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no matches")
	}
	return out, nil
}

// Each applies a query to each element of a list or row of a table, and
// returns a list of the resulting values. It fails if the input is neither.
// The arguments have the same constraints as Path.
func Each(keys ...any) Query { return eachQuery{Path(keys...)} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := make(ast.List, 0, len(elts))
	for i, elt := range elts {
		v, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Collect applies a query to each element of a list or row of a table, and
// returns a list of the results. Unlike Each, elements for which the query
// fails are skipped. The arguments have the same constraints as Path.
func Collect(keys ...any) Query { return collectQuery{Path(keys...)} }

type collectQuery struct{ Query }

func (q collectQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := ast.List{}
	for _, elt := range elts {
		if r, err := q.Query.eval(elt); err == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

// Flatten concatenates the elements of a list of lists or tables. Elements of
// the input that are neither are kept as they are.
func Flatten() Query { return flatQuery{} }

type flatQuery struct{}

func (flatQuery) eval(v ast.Value) (ast.Value, error) {
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := ast.List{}
	for _, elt := range elts {
		if sub, err := elements(elt); err == nil {
			out = append(out, sub...)
		} else {
			out = append(out, elt)
		}
	}
	return out, nil
}

// Object constructs an object with the given keys mapped to the results of
// matching the query values against its input. Members of the result are in
// order by key.
type Object map[string]Query

func (o Object) eval(v ast.Value) (ast.Value, error) {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make(ast.Object, 0, len(keys))
	for _, key := range keys {
		val, err := o[key].eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", key, err)
		}
		out = append(out, &ast.Member{Key: key, Value: val})
	}
	return out, nil
}

// List constructs a list with the values produced by matching the given
// queries against its input.
type List []Query

func (a List) eval(v ast.Value) (ast.Value, error) {
	out := make(ast.List, len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = val
	}
	return out, nil
}

// Columns projects a table onto the named columns, in the order given. The
// result is a new table whose rows share values with the input. It fails if
// the input is not a table, or if a column is not present.
func Columns(names ...string) Query { return colQuery(names) }

type colQuery []string

func (q colQuery) eval(v ast.Value) (ast.Value, error) {
	t, ok := v.(*ast.Table)
	if !ok {
		return nil, fmt.Errorf("got %s, want table", kindOf(v))
	}
	pos := make([]int, len(q))
	for i, name := range q {
		pos[i] = slices.Index(t.Columns, name)
		if pos[i] < 0 {
			return nil, fmt.Errorf("column %q not found", name)
		}
	}
	out := ast.NewTable(slices.Clone([]string(q))...)
	out.Rows = make([]ast.Object, len(t.Rows))
	for r, row := range t.Rows {
		nrow := make(ast.Object, len(pos))
		for i, p := range pos {
			nrow[i] = row[p]
		}
		out.Rows[r] = nrow
	}
	return out, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return Value(ast.String(s)) }

// A Float query ignores its input and returns the given number.
func Float(n float64) Query { return Value(ast.Float(n)) }

// An Int query ignores its input and returns the given integer.
func Int(z int64) Query { return Value(ast.Int(z)) }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return Value(ast.Bool(b)) }

// A Null query ignores its input and returns a null value.
func Null() Query { return Value(ast.Null) }

// A Value query ignores its input and returns the given value, converted as
// by ast.ToValue.
func Value(v any) Query { return constQuery{ast.ToValue(v)} }

type constQuery struct{ ast.Value }

func (c constQuery) eval(_ ast.Value) (ast.Value, error) { return c.Value, nil }

// A Glob query returns a list of all its inputs: the member values of an
// object, the elements of a list, or the rows of a table.
func Glob() Query { return globQuery{} }

type globQuery struct{}

func (globQuery) eval(v ast.Value) (ast.Value, error) {
	if obj, ok := v.(ast.Object); ok {
		out := make(ast.List, len(obj))
		for i, m := range obj {
			out[i] = m.Value
		}
		return out, nil
	}
	if elts, err := elements(v); err == nil {
		return elts, nil
	}
	return nil, errors.New("no matching values")
}

// elements returns the elements of a list, or the rows of a table.
func elements(v ast.Value) (ast.List, error) {
	switch t := v.(type) {
	case ast.List:
		return t, nil
	case *ast.Table:
		return t.List(), nil
	}
	return nil, fmt.Errorf("got %s, want list", kindOf(v))
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
