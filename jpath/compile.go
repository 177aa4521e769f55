// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/toon/query"
)

// Compile parses s as a path expression and compiles it into a query.
func Compile(s string) (query.Query, error) {
	e, err := Parse(s)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", s, err)
	}
	return e.Query()
}

// Query compiles e into a query.
//
// A step that may select several values (a wildcard, slice, filter, recursive
// descent, or a list of indices) yields a list. The steps that follow it are
// applied to each value of that list, and values for which they fail are
// dropped. Nested lists produced this way are flattened, so the result of an
// expression has at most one level of list structure added by its steps.
//
// The text of a filter is an expression in the language of query.Compile. In
// a filter, "@" refers to the value being tested, and may be used as in
// "@.price < 10". Members of an object may also be named directly.
// Script steps are not supported.
func (e Expr) Query() (query.Query, error) { return compileSteps(e) }

func compileSteps(steps []Step) (query.Query, error) {
	seq := query.Seq{}
	for i, s := range steps {
		q, multi, err := compileStep(s)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", Expr{s}.String()[1:], err)
		}
		seq = append(seq, q)
		if !multi {
			continue
		}
		rest := steps[i+1:]
		if len(rest) == 0 {
			break
		}
		rq, err := compileSteps(rest)
		if err != nil {
			return nil, err
		}
		seq = append(seq, query.Collect(rq))
		if hasMulti(rest) {
			seq = append(seq, query.Flatten())
		}
		break
	}
	return seq, nil
}

// compileStep compiles a single step, and reports whether the step may
// select multiple values.
func compileStep(s Step) (_ query.Query, multi bool, _ error) {
	switch s.Op {
	case Member:
		if s.Arg2 == Wildcard.String() {
			return query.Glob(), true, nil
		}
		return query.Path(s.Arg1), false, nil

	case Name, QName:
		return query.Path(s.Arg1), false, nil

	case Wildcard:
		return query.Glob(), true, nil

	case Recur:
		if s.Arg2 == Wildcard.String() {
			return query.Seq{query.Recur(query.Glob()), query.Flatten()}, true, nil
		}
		return query.Recur(s.Arg1), true, nil

	case Index:
		offsets, err := parseOffsets(s.Arg1)
		if err != nil {
			return nil, false, err
		}
		if len(offsets) == 1 {
			return query.Path(offsets[0]), false, nil
		}
		return query.Pick(offsets...), true, nil

	case Slice:
		lo, err := parseBound(s.Arg1)
		if err != nil {
			return nil, false, err
		}
		hi, err := parseBound(s.Arg2)
		if err != nil {
			return nil, false, err
		}
		return query.Slice(lo, hi), true, nil

	case Filter:
		p, err := query.Compile(filterText(s.Arg1))
		if err != nil {
			return nil, false, err
		}
		return query.Where(p), true, nil

	case Script:
		return nil, false, errors.New("script expressions are not supported")
	}
	return nil, false, fmt.Errorf("invalid operator %v", s.Op)
}

func hasMulti(steps []Step) bool {
	for _, s := range steps {
		if _, multi, err := compileStep(s); err == nil && multi {
			return true
		}
	}
	return false
}

// filterText rewrites each current-value marker "@" of a filter into the name
// bound by query.Predicate. Quoted string literals are copied unchanged.
func filterText(s string) string {
	var sb strings.Builder
	var quote byte // the open quotation mark, or 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0 && c == '\\' && i+1 < len(s):
			sb.WriteByte(c)
			i++
			c = s[i]
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'' || c == '`':
			quote = c
		case c == '@':
			sb.WriteString("it")
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func parseOffsets(s string) ([]int, error) {
	var out []int
	for f := range strings.SplitSeq(s, ",") {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseBound(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid bound %q", s)
	}
	return n, nil
}
