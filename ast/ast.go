// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a value tree for TOON documents, and a parser that
// constructs value trees from TOON source.
package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/toon"
)

// Kind identifies the type of a Value.
type Kind byte

// Constants defining the valid Kind values.
const (
	InvalidKind Kind = iota
	StringKind
	IntegerKind
	DoubleKind
	BoolKind
	NullKind
	ObjectKind
	ListKind
	TableKind
)

var kindStr = [...]string{
	InvalidKind: "invalid",
	StringKind:  "string",
	IntegerKind: "integer",
	DoubleKind:  "double",
	BoolKind:    "bool",
	NullKind:    "null",
	ObjectKind:  "object",
	ListKind:    "list",
	TableKind:   "table",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[InvalidKind]
	}
	return kindStr[k]
}

// A Value is an arbitrary TOON value.
type Value interface {
	// Kind reports the type of the value.
	Kind() Kind

	// JSON converts the value into compact JSON text.
	JSON() string
}

// An Object is an ordered collection of key-value members. Keys need not be
// unique; lookups return the first matching member.
type Object []*Member

// Kind satisfies the Value interface.
func (Object) Kind() Kind { return ObjectKind }

// JSON satisfies the Value interface.
func (o Object) JSON() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(toon.Quote(m.Key))
		sb.WriteByte(':')
		sb.WriteString(jsonOf(m.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Add appends a member with the given key and value to o, and returns the
// new member. The value is converted as by ToValue.
func (o *Object) Add(key string, value any) *Member {
	m := Field(key, value)
	m.Indent = o.childIndent()
	*o = append(*o, m)
	return m
}

// childIndent guesses the indentation of a new member of o from its existing
// members.
func (o Object) childIndent() int {
	if len(o) != 0 {
		return o[0].Indent
	}
	return 0
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key    string
	Value  Value
	Indent int // indentation level in the source, 0 for top-level members
}

// Field constructs an object member with the given key and value. The value
// is converted as by ToValue.
func Field(key string, value any) *Member {
	return &Member{Key: key, Value: ToValue(value)}
}

// A List is a sequence of values.
type List []Value

// Kind satisfies the Value interface.
func (List) Kind() Kind { return ListKind }

// JSON satisfies the Value interface.
func (l List) JSON() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(jsonOf(v))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Len reports the number of elements in l.
func (l List) Len() int { return len(l) }

// minListCap is the initial capacity of a list that grows by Push.
const minListCap = 4

// Push appends v to the end of l. When the list is full, its capacity is
// doubled, starting from a capacity of 4.
func (l *List) Push(v Value) {
	if len(*l) == cap(*l) {
		grown := make(List, len(*l), max(minListCap, 2*cap(*l)))
		copy(grown, *l)
		*l = grown
	}
	*l = append(*l, v)
}

// A Table is a list of objects that share the same column names, in order.
// Tables are produced by the tabular form "key[N]{c1,c2,...}:".
type Table struct {
	Columns []string
	Rows    []Object
}

// NewTable constructs an empty table with the given column names.
func NewTable(columns ...string) *Table { return &Table{Columns: columns} }

// Kind satisfies the Value interface.
func (*Table) Kind() Kind { return TableKind }

// JSON satisfies the Value interface. A table is rendered as an array of
// objects, one per row.
func (t *Table) JSON() string { return t.List().JSON() }

// Len reports the number of rows in t.
func (t *Table) Len() int { return len(t.Rows) }

// List returns a list of the rows of t. The rows are shared, not copied.
func (t *Table) List() List {
	out := make(List, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row
	}
	return out
}

// AddRow appends a row to t with the given values, one per column. Missing
// values are filled with Null. It reports an error if there are more values
// than columns. Values are converted as by ToValue.
func (t *Table) AddRow(values ...any) error {
	if len(values) > len(t.Columns) {
		return fmt.Errorf("got %d values, table has %d columns", len(values), len(t.Columns))
	}
	row := make(Object, len(t.Columns))
	for i, col := range t.Columns {
		var v Value = Null
		if i < len(values) {
			v = ToValue(values[i])
		}
		row[i] = &Member{Key: col, Value: v}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// A String is a string value.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return StringKind }

// JSON satisfies the Value interface.
func (s String) JSON() string { return toon.Quote(string(s)) }

// Len reports the length of s in bytes.
func (s String) Len() int { return len(s) }

// An Int is an integer value.
type Int int64

// Kind satisfies the Value interface.
func (Int) Kind() Kind { return IntegerKind }

// JSON satisfies the Value interface.
func (z Int) JSON() string { return strconv.FormatInt(int64(z), 10) }

// A Float is a floating-point value.
type Float float64

// Kind satisfies the Value interface.
func (Float) Kind() Kind { return DoubleKind }

// JSON satisfies the Value interface. Values that are not finite have no
// JSON representation, and are rendered as null.
func (f Float) JSON() string {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return "null"
	}
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

// A Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return BoolKind }

// JSON satisfies the Value interface.
func (b Bool) JSON() string { return strconv.FormatBool(bool(b)) }

// Null is the null value.
var Null Value = nullValue{}

type nullValue struct{}

func (nullValue) Kind() Kind     { return NullKind }
func (nullValue) JSON() string   { return "null" }
func (nullValue) String() string { return "null" }

// jsonOf renders v as JSON, treating a nil value as null.
func jsonOf(v Value) string {
	if v == nil {
		return "null"
	}
	return v.JSON()
}
