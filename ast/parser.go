// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/creachadair/toon"
)

// An Option configures the behavior of Parse.
type Option func(*parseConfig)

type parseConfig struct {
	unescape bool
	sink     io.Writer
	setSink  bool
	onDiag   func(*toon.Diagnostic)
	maxDepth int
}

// Unescape configures whether escape sequences in quoted strings are decoded
// (true) or kept as written (false). The default is false: the interior of a
// quoted string is taken verbatim.
func Unescape(ok bool) Option { return func(c *parseConfig) { c.unescape = ok } }

// ReportTo configures the parser to write diagnostics to w. If w == nil,
// diagnostics are discarded. By default, diagnostics go to os.Stderr.
func ReportTo(w io.Writer) Option {
	return func(c *parseConfig) { c.sink, c.setSink = w, true }
}

// OnDiagnostic configures the parser to call f for each diagnostic, instead
// of writing it to the report sink.
func OnDiagnostic(f func(*toon.Diagnostic)) Option {
	return func(c *parseConfig) { c.onDiag = f }
}

// MaxDepth sets the maximum nesting depth of objects. If n <= 0, the default
// toon.DefaultMaxDepth is used. Exceeding the limit is a fatal error.
func MaxDepth(n int) Option { return func(c *parseConfig) { c.maxDepth = n } }

// Parse parses and returns the TOON document from r. Malformed lines are
// reported as diagnostics and skipped; they do not cause Parse to fail. If a
// fatal error occurs, Parse returns nil and the error.
func Parse(r io.Reader, opts ...Option) (Object, error) {
	return parseStream(toon.NewStream(r), opts)
}

// ParseBytes parses and returns the TOON document in data.
func ParseBytes(data []byte, opts ...Option) (Object, error) {
	return parseStream(toon.NewStreamWithScanner(toon.NewScanner(data)), opts)
}

// ParseString parses and returns the TOON document in s.
func ParseString(s string, opts ...Option) (Object, error) {
	return Parse(strings.NewReader(s), opts...)
}

// ParseFile reads and parses the TOON document in the named file.
func ParseFile(path string, opts ...Option) (Object, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := ParseBytes(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return obj, nil
}

func parseStream(st *toon.Stream, opts []Option) (Object, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.setSink {
		st.ReportTo(cfg.sink)
	}
	st.MaxDepth(cfg.maxDepth)

	h := &parseHandler{unescape: cfg.unescape}
	var sh toon.Handler = h
	if cfg.onDiag != nil {
		sh = diagHandler{h, cfg.onDiag}
	}
	if err := st.Parse(sh); err != nil {
		return nil, err
	}
	return h.root, nil
}

// A parseHandler implements the toon.Handler interface to construct value
// trees for TOON documents.
type parseHandler struct {
	stk      []*frame
	root     Object
	unescape bool
}

// A frame is an open container on the parse stack.
type frame struct {
	kind  Kind
	mem   *Member // the member whose value is being built, or nil
	obj   Object
	list  List
	table *Table
}

func (h *parseHandler) top() *frame { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() *frame {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(f *frame) { h.stk = append(h.stk, f) }

// addMember adds a new member to the object atop the stack. The member is
// added eagerly, so that source order is preserved when its value is a
// container that is completed later.
func (h *parseHandler) addMember(loc toon.Anchor, v Value) (*Member, error) {
	top := h.top()
	if top.kind != ObjectKind {
		return nil, fmt.Errorf("at %s: property %q outside an object", loc.Location().First, loc.Key())
	}
	m := &Member{Key: loc.Key(), Value: v, Indent: loc.Indent()}
	top.obj = append(top.obj, m)
	return m, nil
}

func (h *parseHandler) BeginObject(loc toon.Anchor) error {
	if len(h.stk) == 0 {
		h.push(&frame{kind: ObjectKind, obj: Object{}})
		return nil
	}
	if h.top().kind == TableKind {
		h.push(&frame{kind: ObjectKind}) // a table row
		return nil
	}
	m, err := h.addMember(loc, nil)
	if err != nil {
		return err
	}
	h.push(&frame{kind: ObjectKind, mem: m, obj: Object{}})
	return nil
}

func (h *parseHandler) EndObject(loc toon.Anchor) error {
	f := h.pop()
	switch {
	case len(h.stk) == 0:
		h.root = f.obj
	case f.mem != nil:
		f.mem.Value = f.obj
	default:
		t := h.top().table
		t.Rows = append(t.Rows, f.obj)
	}
	return nil
}

func (h *parseHandler) BeginList(loc toon.Anchor) error {
	m, err := h.addMember(loc, nil)
	if err != nil {
		return err
	}
	if cols := loc.Columns(); cols != nil {
		t := NewTable(slices.Clone(cols)...)
		if n := loc.Arity(); n > 0 {
			t.Rows = make([]Object, 0, n)
		}
		h.push(&frame{kind: TableKind, mem: m, table: t})
	} else {
		h.push(&frame{kind: ListKind, mem: m, list: List{}})
	}
	return nil
}

func (h *parseHandler) EndList(loc toon.Anchor) error {
	f := h.pop()
	if f.kind == TableKind {
		f.mem.Value = f.table
	} else {
		f.mem.Value = f.list
	}
	return nil
}

func (h *parseHandler) Value(loc toon.Anchor) error {
	v, err := h.convert(loc)
	if err != nil {
		return err
	}
	if top := h.top(); top.kind == ListKind {
		top.list.Push(v)
		return nil
	}
	_, err = h.addMember(loc, v)
	return err
}

func (h *parseHandler) EndOfInput(loc toon.Anchor) {}

// convert constructs a leaf value from the token at loc.
func (h *parseHandler) convert(loc toon.Anchor) (Value, error) {
	text := loc.Text()
	switch loc.Token() {
	case toon.String:
		return String(text), nil
	case toon.Quoted:
		in := text[1 : len(text)-1]
		if h.unescape && bytes.IndexByte(in, '\\') >= 0 {
			dec, err := toon.Unquote(string(text))
			if err != nil {
				return nil, err
			}
			return String(dec), nil
		}
		return String(in), nil
	case toon.Integer:
		z, err := strconv.ParseInt(string(text), 10, 64)
		if err == nil {
			return Int(z), nil
		}
		// Out of range for int64; fall back to floating-point.
		f, _ := strconv.ParseFloat(string(text), 64)
		return Float(f), nil
	case toon.Number:
		// A value out of range parses as ±Inf, which is kept.
		f, _ := strconv.ParseFloat(string(text), 64)
		return Float(f), nil
	case toon.True, toon.False:
		return Bool(loc.Token() == toon.True), nil
	case toon.Null:
		return Null, nil
	default:
		return nil, fmt.Errorf("unknown value %v", loc.Token())
	}
}

// diagHandler adds a Diagnostic method to a parseHandler.
type diagHandler struct {
	*parseHandler
	f func(*toon.Diagnostic)
}

func (d diagHandler) Diagnostic(diag *toon.Diagnostic) { d.f(diag) }
