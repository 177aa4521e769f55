// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jpath implements a minimal JSONPath-style expression language for
// TOON values. Expressions are parsed into steps, and compiled into queries
// from package query.
//
// For example, given the document:
//
//	users[3]{id,name,active}:
//	  1,Alice,true
//	  2,Bob,false
//	  3,Charlie,true
//
// the expression
//
//	$.users[?(@.active)].name
//
// selects the names of the active users, ["Alice","Charlie"].
package jpath

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

/*
Grammar:

  expr = root steps
  root = "$"
 steps = step [steps]
  step = "." name
  step = ".." name
  step = "[" value "]"
  step = "[" slice "]"
  name = WORD
  name = "'" QTEXT "'"
  name = "*"
 value = name
 value = INDEX
 value = script
 value = filter
 slice = [INDEX] ":" [INDEX]
script = "(" TEXT ")"
filter = "?(" TEXT ")"

  WORD = RE `\w+`
 QTEXT = RE `[^']*`
 INDEX = RE `-?\d+(,-?\d+)*`
  TEXT = { all text with nested parentheses }
*/

// An Expr is a parsed path expression.
type Expr []Step

// Parse parses s as a path expression.
func Parse(s string) (Expr, error) {
	rest, ok := strings.CutPrefix(s, "$")
	if !ok {
		return nil, errors.New("missing root marker")
	}
	var steps Expr
	for rest != "" {
		step, next, err := parseStep(rest)
		if err != nil {
			return nil, fmt.Errorf("offset %d: %w", len(s)-len(rest), err)
		}
		steps = append(steps, step)
		rest = next
	}
	return steps, nil
}

// String renders e in the syntax accepted by Parse.
func (e Expr) String() string {
	var buf strings.Builder
	buf.WriteString("$")
	for _, s := range e {
		switch s.Op {
		case Member, Recur:
			if s.Arg2 == QName.String() {
				fmt.Fprintf(&buf, "%s'%s'", s.Op, s.Arg1)
			} else {
				fmt.Fprintf(&buf, "%s%s", s.Op, s.Arg1)
			}
		case Slice:
			fmt.Fprintf(&buf, "[%s:%s]", s.Arg1, s.Arg2)
		case Script:
			fmt.Fprintf(&buf, "[(%s)]", s.Arg1)
		case Filter:
			fmt.Fprintf(&buf, "[?(%s)]", s.Arg1)
		case QName:
			fmt.Fprintf(&buf, "['%s']", s.Arg1)
		default:
			fmt.Fprintf(&buf, "[%s]", s.Arg1)
		}
	}
	return buf.String()
}

func parseStep(s string) (_ Step, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, ".."); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid ..name: %w", err)
		}
		return Step{Op: Recur, Arg1: name, Arg2: kind.String()}, u, nil
	}
	if t, ok := strings.CutPrefix(s, "."); ok {
		kind, name, u, err := parseName(t)
		if err != nil {
			return Step{}, s, fmt.Errorf("invalid .name: %w", err)
		}
		return Step{Op: Member, Arg1: name, Arg2: kind.String()}, u, nil
	}
	t, ok := strings.CutPrefix(s, "[")
	if !ok {
		return Step{}, s, errors.New("invalid path step")
	}
	kind, val, u, err := parseValue(t)
	if err != nil {
		return Step{}, t, err
	}
	out := Step{Op: kind, Arg1: val}
	if out.Op == Slice {
		if hi, rest, err := parseIndex(u); err == nil {
			out.Arg2, u = hi, rest
		} else if out.Arg1 == "" {
			return Step{}, u, errors.New("invalid slice")
		}
	}
	u, ok = strings.CutPrefix(u, "]")
	if !ok {
		return Step{}, u, errors.New("missing close bracket")
	}
	return out, u, nil
}

func parseName(s string) (kind Op, name, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "*"); ok {
		return Wildcard, "*", t, nil
	}
	if m := wordRE.FindStringSubmatch(s); m != nil {
		return Name, m[1], s[len(m[0]):], nil
	}
	if m := quoteRE.FindStringSubmatch(s); m != nil {
		return QName, m[1], s[len(m[0]):], nil
	}
	return Invalid, "", s, errors.New("invalid name")
}

func parseIndex(s string) (text, rest string, _ error) {
	if m := indexRE.FindStringSubmatch(s); m != nil {
		return m[1], s[len(m[0]):], nil
	}
	return "", s, errors.New("invalid index")
}

func parseValue(s string) (kind Op, value, rest string, _ error) {
	if t, ok := strings.CutPrefix(s, "?("); ok {
		text, rest, err := parseScript(t)
		return Filter, text, rest, err
	}
	if t, ok := strings.CutPrefix(s, "("); ok {
		text, rest, err := parseScript(t)
		return Script, text, rest, err
	}
	if text, rest, err := parseIndex(s); err == nil {
		if u, ok := strings.CutPrefix(rest, ":"); ok {
			return Slice, text, u, nil
		}
		return Index, text, rest, nil
	}
	if u, ok := strings.CutPrefix(s, ":"); ok {
		return Slice, "", u, nil
	}
	if kind, text, rest, err := parseName(s); err == nil {
		return kind, text, rest, nil
	}
	return Invalid, "", s, fmt.Errorf("invalid value: %q", s)
}

// parseScript scans to the parenthesis that closes an already-consumed open
// parenthesis, and returns the text between them. Parentheses inside quoted
// literals are not counted.
func parseScript(s string) (text, rest string, _ error) {
	depth := 1
	var quote byte
	for i := 0; i < len(s); i++ {
		if quote != 0 {
			if s[i] == '\\' {
				i++
			} else if s[i] == quote {
				quote = 0
			}
			continue
		}
		switch s[i] {
		case '"', '\'', '`':
			quote = s[i]
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[:i], s[i+1:], nil
			}
		}
	}
	return "", s, errors.New("unbalanced parentheses")
}

var (
	wordRE  = regexp.MustCompile(`^(\w+)`)
	indexRE = regexp.MustCompile(`^(-?\d+(?:,-?\d+)*)`)
	quoteRE = regexp.MustCompile(`^'([^']*)'`)
)

// An Op is a path operator.
type Op byte

const (
	Invalid  Op = iota // invalid operator
	Member             // member lookup (.)
	Index              // list index or row lookup
	Slice              // list slice
	Wildcard           // wildcard expansion (*)
	Name               // unquoted name
	QName              // quoted name
	Recur              // recur operator (..)
	Filter             // filter expression
	Script             // script expression
)

var opText = [...]string{
	Invalid:  "invalid",
	Member:   ".",
	Index:    "index",
	Slice:    "slice",
	Wildcard: "*",
	Name:     "name",
	QName:    "qname",
	Recur:    "..",
	Filter:   "?(...)",
	Script:   "(...)",
}

func (o Op) String() string {
	if int(o) < len(opText) {
		return opText[o]
	}
	return opText[Invalid]
}

// A Step is a single step of a path expression.
//
// For Member and Recur, Arg1 is the name and Arg2 is the kind of name (see
// Op.String). For Slice, Arg1 and Arg2 are the bounds, either of which may
// be empty. For other operators, Arg1 is the bracketed text.
type Step struct {
	Op   Op
	Arg1 string
	Arg2 string
}
