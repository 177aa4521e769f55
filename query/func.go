// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package query

import (
	"fmt"
	"slices"

	"github.com/creachadair/toon/ast"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Exists returns a selection that reports true if its argument satisfies the
// specified query. The arguments have the same constraints as Path.
func Exists(keys ...any) Selection {
	q := Path(keys...)
	return func(v ast.Value) bool {
		_, err := q.eval(v)
		return err == nil
	}
}

// Is returns a selection that reports true if its argument is of type T.
func Is[T ast.Value]() Selection {
	return func(v ast.Value) bool { _, ok := v.(T); return ok }
}

// IsNot returns a selection that reports true if its argument is not of type T
func IsNot[T ast.Value]() Selection {
	return func(v ast.Value) bool { _, ok := v.(T); return !ok }
}

// Map constructs a mapping from the given function. The resulting mapping will
// return unmodified any value whose type does not match T.
func Map[T, U ast.Value](f func(T) U) Mapping {
	return func(v ast.Value) ast.Value {
		if w, ok := v.(T); ok {
			return f(w)
		}
		return v
	}
}

// Filter constructs a selection from the given function. The resulting
// selection will discard any value whose type does not match T.
func Filter[T ast.Value](f func(T) bool) Selection {
	return func(v ast.Value) bool { w, ok := v.(T); return ok && f(w) }
}

// A Predicate is a compiled boolean expression over the members of a value.
//
// The expression language is that of github.com/expr-lang/expr. When the
// predicate is applied to an object, each member is bound to a variable named
// by its key (the first member wins if keys repeat). The value itself is
// bound to the variable "it". Variables that are not bound evaluate to nil.
type Predicate struct {
	src  string
	prog *vm.Program
}

// Compile compiles a predicate from the source text of an expression. It
// reports an error if the expression is invalid, or its result is not a
// boolean.
func Compile(src string) (*Predicate, error) {
	prog, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", src, err)
	}
	return &Predicate{src: src, prog: prog}, nil
}

// String returns the source text of p.
func (p *Predicate) String() string { return p.src }

// Match reports whether v satisfies p.
func (p *Predicate) Match(v ast.Value) (bool, error) {
	out, err := expr.Run(p.prog, predicateEnv(v))
	if err != nil {
		return false, err
	}
	ok, _ := out.(bool)
	return ok, nil
}

func predicateEnv(v ast.Value) map[string]any {
	env := map[string]any{"it": ast.Native(v)}
	if obj, ok := v.(ast.Object); ok {
		for _, m := range slices.Backward(obj) {
			env[m.Key] = ast.Native(m.Value)
		}
	}
	return env
}

// Where returns a query that selects the elements of a list or rows of a
// table that satisfy p. The result has the same kind as the input: a table
// yields a table with the same columns.
func Where(p *Predicate) Query { return whereQuery{p} }

type whereQuery struct{ *Predicate }

func (q whereQuery) eval(v ast.Value) (ast.Value, error) {
	if t, ok := v.(*ast.Table); ok {
		out := ast.NewTable(t.Columns...)
		out.Rows = []ast.Object{}
		for i, row := range t.Rows {
			ok, err := q.Match(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			} else if ok {
				out.Rows = append(out.Rows, row)
			}
		}
		return out, nil
	}
	elts, err := elements(v)
	if err != nil {
		return nil, err
	}
	out := ast.List{}
	for i, elt := range elts {
		ok, err := q.Match(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		} else if ok {
			out = append(out, elt)
		}
	}
	return out, nil
}
