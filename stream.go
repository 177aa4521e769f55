// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// DefaultMaxDepth is the default bound on the number of open objects,
// including the root, that a Stream will track.
const DefaultMaxDepth = 64

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of a value anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Key() string        // Returns the property key, or "" for an element or row
	Indent() int        // Returns the indentation level of the property
	Arity() int         // Returns the declared length of a list, or -1
	Columns() []string  // Returns the column names of a table, or nil
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and lists are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object. The first call to BeginObject opens the root, whose
	// anchor has an empty key. Subsequent calls report either a property with
	// an empty value, or a row of a table.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object.
	EndObject(loc Anchor) error

	// Begin a new list. The anchor reports the key and declared arity. For a
	// table, the anchor also reports the columns, and each row is delivered as
	// an object whose members are keyed by column name.
	BeginList(loc Anchor) error

	// End the most-recently-opened list.
	EndList(loc Anchor) error

	// Report a scalar value. If the value is a property, the anchor reports
	// its key; list elements have an empty key. Quoted strings retain their
	// quotation marks.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// DiagnosticHandler is an optional interface that a Handler may implement to
// receive diagnostics for lines that were skipped or partly ignored. If the
// handler does not implement this interface, diagnostics are written to the
// report sink of the stream (see [Stream.ReportTo]).
type DiagnosticHandler interface {
	Diagnostic(d *Diagnostic)
}

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
type Stream struct {
	s        *Scanner
	r        io.Reader
	sink     io.Writer
	maxDepth int
}

// NewStream constructs a new Stream that consumes input from r. The input is
// read in full when Parse is called.
func NewStream(r io.Reader) *Stream { return &Stream{r: r} }

// NewStreamWithScanner constructs a new Stream that consumes input from s.
func NewStreamWithScanner(s *Scanner) *Stream { return &Stream{s: s} }

// ReportTo configures s to write diagnostics to w, if the handler does not
// accept them itself. If w == nil, diagnostics are discarded. By default,
// diagnostics are written to os.Stderr.
func (s *Stream) ReportTo(w io.Writer) *Stream {
	if w == nil {
		w = io.Discard
	}
	s.sink = w
	return s
}

// MaxDepth sets the maximum number of objects that may be open at once,
// including the root. If n <= 0, DefaultMaxDepth is used.
func (s *Stream) MaxDepth(n int) *Stream { s.maxDepth = n; return s }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either a
// fatal error occurs or the input is exhausted.
//
// Malformed lines are not fatal: each is reported as a *Diagnostic and
// parsing continues with the next line. A fatal error in the input, such as
// exceeding the depth limit, is reported as a [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	if s.s == nil {
		data, err := io.ReadAll(s.r)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		s.s = NewScanner(data)
	}
	defer s.recoverParseError(&err)

	maxDepth := s.maxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	// The stack holds the anchors of the open objects. The root is at the
	// bottom; a property at indent d belongs to the object at stack[d].
	stack := []*anchor{{arity: -1}}
	s.checkError(h.BeginObject(stack[0]))

	for {
		err := s.s.Next()
		if err == io.EOF {
			break
		}
		var d *Diagnostic
		if errors.As(err, &d) {
			s.report(h, d)
			continue
		} else if err != nil {
			s.syntaxError(err, "%v", err)
		}

		p := s.s.Property()
		for len(stack) > p.Indent+1 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			s.checkError(h.EndObject(top))
		}
		if p.Form == OpenerForm && len(stack) >= maxDepth {
			panic(&SyntaxError{
				Location: p.Loc.First,
				Message:  fmt.Sprintf("nesting depth exceeds %d", maxDepth),
			})
		}
		if opened := s.emitProperty(h, p); opened != nil {
			stack = append(stack, opened)
		}
		for _, w := range p.Warnings {
			s.report(h, w)
		}
	}

	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.checkError(h.EndObject(top))
	}
	end := len(s.s.src)
	h.EndOfInput(&anchor{
		arity: -1,
		loc: Location{
			Span:  Span{Pos: end, End: end},
			First: LineCol{Line: s.s.line, Column: end - s.s.bol},
			Last:  LineCol{Line: s.s.line, Column: end - s.s.bol},
		},
	})
	return nil
}

// emitProperty delivers the events for a single property to h. If the
// property opens a nested object, emitProperty returns its anchor.
func (s *Stream) emitProperty(h Handler, p *Property) *anchor {
	prop := &anchor{
		key:    p.Key,
		indent: p.Indent,
		arity:  p.Arity,
		cols:   p.Columns,
		loc:    p.Loc,
	}
	switch p.Form {
	case ScalarForm:
		prop.setItem(p.Items[0])
		s.checkError(h.Value(prop))

	case OpenerForm:
		s.checkError(h.BeginObject(prop))
		return prop

	case EmptyForm:
		s.checkError(h.BeginObject(prop))
		s.checkError(h.EndObject(prop))

	case ListForm:
		items := p.Items
		if len(items) > p.Arity {
			p.Warnings = append(p.Warnings, warningAt(p.Loc.First.Line,
				"list has more than %d values", p.Arity))
			items = items[:p.Arity]
		}
		s.checkError(h.BeginList(prop))
		elt := &anchor{indent: p.Indent + 1, arity: -1}
		for _, item := range items {
			elt.setItem(item)
			s.checkError(h.Value(elt))
		}
		s.checkError(h.EndList(prop))

	case TableForm:
		s.checkError(h.BeginList(prop))
		for _, row := range p.Rows {
			obj := &anchor{indent: p.Indent + 1, arity: -1}
			if len(row) != 0 {
				obj.loc = spanItems(row[0].Loc, row[len(row)-1].Loc)
			}
			s.checkError(h.BeginObject(obj))
			cell := &anchor{indent: p.Indent + 1, arity: -1}
			for i, item := range row {
				cell.key = p.Columns[i]
				cell.setItem(item)
				s.checkError(h.Value(cell))
			}
			s.checkError(h.EndObject(obj))
		}
		s.checkError(h.EndList(prop))

	default:
		s.syntaxError(nil, "unknown property form %v", p.Form)
	}
	return nil
}

func (s *Stream) report(h Handler, d *Diagnostic) {
	if dh, ok := h.(DiagnosticHandler); ok {
		dh.Diagnostic(d)
		return
	}
	sink := s.sink
	if sink == nil {
		sink = os.Stderr
	}
	fmt.Fprintln(sink, d)
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: LineCol{Line: s.s.line, Column: s.s.pos - s.s.bol},
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// anchor is the concrete implementation of the Anchor interface used by the
// Stream.
type anchor struct {
	tok    Token
	text   []byte
	key    string
	indent int
	arity  int
	cols   []string
	loc    Location
}

func (a *anchor) setItem(item Item) { a.tok, a.text, a.loc = item.Token, item.Text, item.Loc }

func (a *anchor) Token() Token       { return a.tok }
func (a *anchor) Text() []byte       { return a.text }
func (a *anchor) Copy() []byte       { return bytes.Clone(a.text) }
func (a *anchor) Key() string        { return a.key }
func (a *anchor) Indent() int        { return a.indent }
func (a *anchor) Arity() int         { return a.arity }
func (a *anchor) Columns() []string  { return a.cols }
func (a *anchor) Location() Location { return a.loc }

func spanItems(first, last Location) Location {
	return Location{
		Span:  Span{Pos: first.Pos, End: last.End},
		First: first.First,
		Last:  last.Last,
	}
}
