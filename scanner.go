// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"bytes"
	"errors"
	"io"
	"strconv"
)

// Form identifies the syntax of a property line.
type Form byte

// Constants defining the valid Form values.
const (
	ScalarForm Form = iota // key: value
	OpenerForm             // key:            (opens a nested object)
	ListForm               // key[N]: v1,v2,...
	TableForm              // key[N]{c1,c2,...}: followed by N rows
	EmptyForm              // key[]:          (an empty object, opens nothing)
)

var formStr = [...]string{
	ScalarForm: "scalar",
	OpenerForm: "object",
	ListForm:   "list",
	TableForm:  "table",
	EmptyForm:  "empty",
}

func (f Form) String() string {
	if int(f) >= len(formStr) {
		return "invalid form"
	}
	return formStr[f]
}

// An Item is a single scalar value from the input: the value of a scalar
// property, an element of an inline list, or a cell of a tabular row.
type Item struct {
	Token Token
	Text  []byte // trimmed raw text; quoted strings retain their quotes
	Loc   Location
}

// A Property is a single parsed property line, including the rows of a
// tabular property.
type Property struct {
	Form    Form
	Indent  int      // indentation level: leading spaces divided by two
	Key     string   // the property key, trimmed
	Arity   int      // the declared length N of key[N], or -1
	Columns []string // the column names of a table, or nil

	Items []Item   // ScalarForm: exactly one item; ListForm: the elements
	Rows  [][]Item // TableForm: one slice per row, each len(Columns) long

	// Warnings reports parts of the property that were ignored.
	Warnings []*Diagnostic

	Loc Location
}

// A Scanner reads TOON properties from a contiguous input buffer. Each call to
// Next advances the scanner to the next property, or reports an error.
//
// The scanner does not retain or modify its input after construction, but the
// Text of each Item aliases the input buffer.
type Scanner struct {
	src  []byte
	pos  int // current offset in src
	line int // current line number, 1-based
	bol  int // offset of the beginning of the current line
	prop Property
	err  error
}

// NewScanner constructs a new scanner that consumes input from src.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src, line: 1} }

// errSkip is an internal signal that a line was discarded without a
// diagnostic.
var errSkip = errors.New("skip line")

// Next advances s to the next property of the input. At the end of the input,
// Next returns io.EOF.
//
// If the next non-blank, non-comment line is malformed, Next skips it and
// returns a *Diagnostic describing the problem. The caller may call Next
// again to resume scanning on the following line.
func (s *Scanner) Next() error {
	s.err = nil
	for {
		if s.atEOF() {
			return s.setErr(io.EOF)
		}
		start := s.pos
		if s.blankOrComment() {
			s.skipLine()
			continue
		}
		s.pos = start

		err := s.scanProperty()
		s.newline()
		if err == errSkip {
			continue
		}
		return s.setErr(err)
	}
}

// Property returns the current property. The result is only valid until the
// next call of Next.
func (s *Scanner) Property() *Property { return &s.prop }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Line reports the current 1-based line number of the scanner.
func (s *Scanner) Line() int { return s.line }

func (s *Scanner) setErr(err error) error {
	s.err = err
	return err
}

// scanProperty scans a single property line, starting at the beginning of
// the line. On return, the cursor is at the end of the last line consumed,
// before its newline.
func (s *Scanner) scanProperty() error {
	p := &s.prop
	*p = Property{Items: p.Items[:0], Arity: -1}

	first := LineCol{Line: s.line, Column: s.pos - s.bol}
	start := s.pos
	p.Indent = s.indent()

	key, ok := s.scanKey()
	if !ok {
		s.skipToEOL()
		return errSkip
	}
	p.Key = key

	sized := s.peek() == '['
	if sized {
		n, err := s.scanArity()
		if err != nil {
			s.skipToEOL()
			return err
		}
		p.Arity = n
	}
	if s.peek() == '{' {
		cols, err := s.scanColumns()
		if err != nil {
			s.skipToEOL()
			return err
		}
		p.Columns = cols
	}
	if s.peek() != ':' {
		s.skipToEOL()
		return errorAt(first.Line, "expected ':'")
	}
	s.pos++ // consume ':'

	switch {
	case p.Columns != nil && p.Arity < 0:
		s.skipToEOL()
		return errorAt(first.Line, "expected '[' before column list")

	case p.Columns != nil:
		p.Form = TableForm
		s.skipSpace()
		if !s.atEOL() {
			p.Warnings = append(p.Warnings, warningAt(s.line, "unexpected text after column list"))
		}
		s.skipToEOL()
		s.scanRows(p)

	case p.Arity >= 0:
		p.Form = ListForm
		s.scanList(p)

	default:
		s.skipSpace()
		if s.atEOL() {
			p.Form = OpenerForm
			if sized {
				p.Form = EmptyForm
			}
			s.skipToEOL()
		} else {
			p.Form = ScalarForm
			vstart := s.pos
			s.skipToEOL()
			p.Items = append(p.Items, s.item(vstart, s.pos))
		}
	}

	p.Loc = Location{
		Span:  Span{Pos: start, End: s.pos},
		First: first,
		Last:  LineCol{Line: s.line, Column: s.pos - s.bol},
	}
	return nil
}

// scanKey scans the key of a property. It reports false if the key is empty.
// A key that begins with a double quote extends to the matching quote, and is
// returned without its quotes.
func (s *Scanner) scanKey() (string, bool) {
	s.skipSpace()
	if s.peek() == '"' {
		if end := s.closingQuote(s.pos); end > 0 {
			key := string(s.src[s.pos+1 : end])
			s.pos = end + 1
			s.skipSpace()
			return key, true
		}
	}
	start := s.pos
	for !s.atEOF() && !isKeyEnd(s.src[s.pos]) {
		s.pos++
	}
	key := bytes.TrimRightFunc(s.src[start:s.pos], isSpaceRune)
	return string(key), len(key) != 0
}

// scanArity scans a bracketed array length "[N]". The digits are optional;
// if they are omitted, the result is -1.
func (s *Scanner) scanArity() (int, error) {
	s.pos++ // consume '['
	start := s.pos
	for !s.atEOF() && isDigit(s.src[s.pos]) {
		s.pos++
	}
	n := -1
	if s.pos > start {
		v, err := strconv.Atoi(string(s.src[start:s.pos]))
		if err != nil {
			return 0, errorAt(s.line, "invalid array length %q", s.src[start:s.pos])
		}
		n = v
	}
	if s.peek() == ']' {
		s.pos++
	}
	return n, nil
}

// scanColumns scans a braced list of column names "{c1,c2,...}".
func (s *Scanner) scanColumns() ([]string, error) {
	s.pos++ // consume '{'
	start := s.pos
	for !s.atEOF() && s.src[s.pos] != '}' && s.src[s.pos] != '\n' {
		s.pos++
	}
	if s.peek() != '}' {
		return nil, errorAt(s.line, "expected '}'")
	}
	body := s.src[start:s.pos]
	s.pos++ // consume '}'

	cols := []string{}
	if len(bytes.TrimSpace(body)) == 0 {
		return cols, nil
	}
	for _, col := range bytes.Split(body, []byte(",")) {
		cols = append(cols, string(bytes.TrimSpace(col)))
	}
	return cols, nil
}

// scanList scans the comma-separated elements of an inline list to the end
// of the current line. An empty slot between commas is a null element; an
// empty slot at the end of the line is ignored.
func (s *Scanner) scanList(p *Property) {
	s.skipSpace()
	if s.atEOL() {
		s.skipToEOL()
		return
	}
	for {
		item, more := s.scanItem()
		if !more && len(item.Text) == 0 && len(p.Items) != 0 {
			break // trailing comma
		}
		p.Items = append(p.Items, item)
		if !more {
			break
		}
	}
	s.skipToEOL()
}

// scanRows scans up to p.Arity rows of a tabular property. Each row occupies
// one line following the header. Rows are positional: their indentation is
// not checked. A blank line or the end of input ends the table early.
func (s *Scanner) scanRows(p *Property) {
	k := len(p.Columns)
	for len(p.Rows) < p.Arity {
		if s.peek() != '\n' {
			break // end of input
		}
		s.newline()
		s.skipSpace()
		if s.atEOL() {
			s.skipToEOL()
			break
		}

		row := make([]Item, 0, k)
		more := true
		for len(row) < k && more {
			var item Item
			item, more = s.scanItem()
			row = append(row, item)
		}
		for len(row) < k {
			row = append(row, Item{Token: Null, Loc: s.loc(s.pos, s.pos)})
		}
		if more {
			if s.skipSpace(); !s.atEOL() {
				p.Warnings = append(p.Warnings, warningAt(s.line, "row has more than %d values", k))
			}
		}
		s.skipToEOL()
		p.Rows = append(p.Rows, row)
	}
}

// scanItem scans a single comma-separated value from the current line, and
// reports whether it was followed by a comma. The comma, if any, is consumed.
// A value beginning with a double quote extends at least to its closing
// quote, so that a quoted value may contain commas.
func (s *Scanner) scanItem() (Item, bool) {
	s.skipSpace()
	start := s.pos
	if s.peek() == '"' {
		if end := s.closingQuote(s.pos); end > 0 {
			s.pos = end + 1
		}
	}
	for !s.atEOF() && s.src[s.pos] != ',' && s.src[s.pos] != '\n' {
		s.pos++
	}
	item := s.item(start, s.pos)
	if s.peek() == ',' {
		s.pos++
		return item, true
	}
	return item, false
}

// item constructs an Item for the text in src[start:end], trimmed.
func (s *Scanner) item(start, end int) Item {
	for start < end && isSpace(s.src[start]) {
		start++
	}
	for end > start && isSpace(s.src[end-1]) {
		end--
	}
	text := s.src[start:end:end]
	return Item{Token: Classify(text), Text: text, Loc: s.loc(start, end)}
}

func (s *Scanner) loc(start, end int) Location {
	return Location{
		Span:  Span{Pos: start, End: end},
		First: LineCol{Line: s.line, Column: start - s.bol},
		Last:  LineCol{Line: s.line, Column: end - s.bol},
	}
}

// closingQuote returns the offset of the double quote that closes the quoted
// text beginning at src[pos], or -1 if it is not closed on the same line.
// A backslash escapes the byte that follows it.
func (s *Scanner) closingQuote(pos int) int {
	for i := pos + 1; i < len(s.src); i++ {
		switch s.src[i] {
		case '\\':
			if i+1 < len(s.src) && s.src[i+1] == '\n' {
				return -1
			}
			i++
		case '"':
			return i
		case '\n':
			return -1
		}
	}
	return -1
}

// Lexical primitives.

func (s *Scanner) atEOF() bool { return s.pos >= len(s.src) }

// peek returns the byte at the cursor, or 0 at the end of input.
func (s *Scanner) peek() byte {
	if s.atEOF() {
		return 0
	}
	return s.src[s.pos]
}

// skipSpace advances over spaces and tabs. It never crosses a newline.
func (s *Scanner) skipSpace() {
	for !s.atEOF() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// newline consumes a newline at the cursor, if there is one.
func (s *Scanner) newline() {
	if s.peek() == '\n' {
		s.pos++
		s.line++
		s.bol = s.pos
	}
}

// indent consumes leading spaces and returns their number divided by two.
// Tabs are not counted.
func (s *Scanner) indent() int {
	n := 0
	for s.peek() == ' ' {
		n++
		s.pos++
	}
	return n / 2
}

// skipToEOL advances to the next newline without consuming it.
func (s *Scanner) skipToEOL() {
	if i := bytes.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i
	} else {
		s.pos = len(s.src)
	}
}

// skipLine advances past the next newline.
func (s *Scanner) skipLine() { s.skipToEOL(); s.newline() }

// atEOL reports whether the cursor is at the end of a line: a newline, a
// carriage return before a newline, or the end of input.
func (s *Scanner) atEOL() bool {
	switch s.peek() {
	case '\n':
		return true
	case '\r':
		return s.pos+1 == len(s.src) || s.src[s.pos+1] == '\n'
	}
	return s.atEOF()
}

// blankOrComment skips horizontal space and reports whether the rest of the
// line is blank or a comment.
func (s *Scanner) blankOrComment() bool {
	s.skipSpace()
	return s.peek() == '#' || s.atEOL()
}

func isKeyEnd(b byte) bool { return b == ':' || b == '[' || b == '{' || b == '\n' }

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f'
}

func isSpaceRune(r rune) bool { return r < 0x80 && isSpace(byte(r)) }
