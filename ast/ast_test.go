// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"math"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/toon/ast"
	"github.com/creachadair/toon/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

const testTOON = `list[2]{x}:
  1
  2
y:
  hello: there
o[2]: hi,yourself
xyz:
  p: true
  d: true
  q: false
`

func TestPath(t *testing.T) {
	v, _ := testutil.MustParse(t, testTOON)

	tests := []struct {
		name string
		path []any
		want ast.Value
		fail bool
	}{
		{"NilInput", nil, v, false},
		{"NoMatch", []any{"nonesuch"}, v, true},
		{"WrongType", []any{11}, v, true},

		{"TablePos", []any{"list", 1},
			v.Find("list").Value.(*ast.Table).Rows[1],
			false,
		},
		{"TableNeg", []any{"list", -1},
			v.Find("list").Value.(*ast.Table).Rows[1],
			false,
		},
		{"ListPos", []any{"o", 0}, ast.String("hi"), false},
		{"ListRange", []any{"o", 25}, v.Find("o").Value, true},
		{"ObjPath", []any{"xyz", "d"}, ast.Bool(true), false},
		{"ObjIndex", []any{"xyz", -1}, ast.Bool(false), false},
		{"RowPath", []any{"list", 0, "x"}, ast.Int(1), false},

		{"FuncList", []any{"o", testPathFunc}, ast.Int(2), false},
		{"FuncObj", []any{"xyz", testPathFunc}, ast.Int(3), false},
		{"FuncWrong", []any{"xyz", "d", testPathFunc}, ast.Bool(true), true},
		{"BadElement", []any{"xyz", 1.5}, v.Find("xyz").Value, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ast.Path(v, tc.path...)
			if err != nil {
				if tc.fail {
					t.Logf("Got expected error: %v", err)
				} else {
					t.Fatalf("Path: unexpected error: %v", err)
				}
			} else if tc.fail {
				t.Errorf("Path %+v: got %v, want error", tc.path, got)
			}
			if diff := cmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Wrong result (-got, +want):\n%s", diff)
			} else if err == nil {
				t.Logf("Found %s OK", got.JSON())
			}
		})
	}
}

func testPathFunc(v ast.Value) (ast.Value, error) {
	if n := ast.Len(v); n >= 0 {
		return ast.Int(n), nil
	} else if obj, ok := v.(ast.Object); ok {
		return ast.Int(len(obj)), nil
	}
	return nil, errors.New("not a thing with length")
}

func TestGet(t *testing.T) {
	root, _ := testutil.MustParse(t, `user:
  address:
    coordinates:
      lat: 42.1234
      lon: -71.5678
  name: Ann
numbers[5]: 1,2,3,4,5
dup: first
dup: second
`)

	tests := []struct {
		path string
		want ast.Value
	}{
		{"user.address.coordinates.lat", ast.Float(42.1234)},
		{"user.address.coordinates.lon", ast.Float(-71.5678)},
		{"user.name", ast.String("Ann")},
		{"dup", ast.String("first")},
		{"user.missing", nil},
		{"missing.name", nil},
		{"numbers.x", nil},
		{"user.name.first", nil},
		{"", nil},
		{".", nil},
	}
	for _, test := range tests {
		got := ast.Get(root, test.path)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Get %q: (-want, +got)\n%s", test.path, diff)
		}
	}

	if got := ast.Get(root, "user.address"); !ast.Is(got, ast.ObjectKind) {
		t.Errorf("Get user.address: got %v, want object", got)
	}
	if got := ast.Get(nil, "user"); got != nil {
		t.Errorf("Get on nil: got %v, want nil", got)
	}
}

func TestLenAt(t *testing.T) {
	root, _ := testutil.MustParse(t, "numbers[5]: 1,2,3,4,5\nobj:\n  a: 1\n"+
		"users[2]{id}:\n  7\n  8\n")

	nums := ast.Get(root, "numbers")
	if n := ast.Len(nums); n != 5 {
		t.Errorf("Len(numbers): got %d, want 5", n)
	}
	for i, want := range []ast.Value{ast.Int(1), ast.Int(2), ast.Int(3), ast.Int(4), ast.Int(5)} {
		if got := ast.At(nums, i); got != want {
			t.Errorf("At(numbers, %d): got %v, want %v", i, got, want)
		}
	}
	for _, i := range []int{5, 6, -1, -5} {
		if got := ast.At(nums, i); got != nil {
			t.Errorf("At(numbers, %d): got %v, want nil", i, got)
		}
	}

	obj := ast.Get(root, "obj")
	if n := ast.Len(obj); n != -1 {
		t.Errorf("Len(obj): got %d, want -1", n)
	}
	if got := ast.At(obj, 0); got != nil {
		t.Errorf("At(obj, 0): got %v, want nil", got)
	}
	if n := ast.Len(nil); n != -1 {
		t.Errorf("Len(nil): got %d, want -1", n)
	}

	users := ast.Get(root, "users")
	if n := ast.Len(users); n != 2 {
		t.Errorf("Len(users): got %d, want 2", n)
	}
	if got := ast.Get(ast.At(users, 1), "id"); got != ast.Int(8) {
		t.Errorf("users[1].id: got %v, want 8", got)
	}
	if got := ast.At(users, 2); got != nil {
		t.Errorf("At(users, 2): got %v, want nil", got)
	}
}

func TestAccessors(t *testing.T) {
	if got := ast.AsInt(ast.String("12")); got != 0 {
		t.Errorf("AsInt(string): got %d, want 0", got)
	}
	if got := ast.AsInt(ast.Int(-3)); got != -3 {
		t.Errorf("AsInt(int): got %d, want -3", got)
	}
	if got, ok := ast.AsString(ast.Int(5)); ok || got != "" {
		t.Errorf("AsString(int): got %q, %v; want absent", got, ok)
	}
	if got, ok := ast.AsString(ast.String("")); !ok || got != "" {
		t.Errorf(`AsString(""): got %q, %v; want "", true`, got, ok)
	}
	if got := ast.AsFloat(ast.Bool(true)); got != 0 {
		t.Errorf("AsFloat(bool): got %v, want 0", got)
	}
	if got := ast.AsFloat(ast.Int(3)); got != 3 {
		t.Errorf("AsFloat(int): got %v, want 3", got)
	}
	if got := ast.AsBool(ast.Null); got {
		t.Error("AsBool(null): got true, want false")
	}
	if got := ast.AsBool(ast.Bool(true)); !got {
		t.Error("AsBool(true): got false, want true")
	}
	if !ast.IsNull(ast.Null) {
		t.Error("IsNull(null): got false, want true")
	}
	if ast.IsNull(nil) {
		t.Error("IsNull(nil): got true, want false")
	}
	if got := ast.AsInt(nil); got != 0 {
		t.Errorf("AsInt(nil): got %d, want 0", got)
	}
}

func TestJSON(t *testing.T) {
	tab := ast.NewTable("id", "name")
	if err := tab.AddRow(1, "a"); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if err := tab.AddRow(2); err != nil {
		t.Fatalf("AddRow: %v", err)
	}

	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null, "null"},

		{ast.Bool(false), "false"},
		{ast.Bool(true), "true"},

		{ast.String(""), `""`},
		{ast.String("a \t b"), `"a \t b"`},
		{ast.String(`say "hi"`), `"say \"hi\""`},

		{ast.Float(-0.00239), `-0.00239`},
		{ast.Float(1.5e10), `1.5e+10`},
		{ast.Float(math.Inf(1)), `null`},
		{ast.Float(math.NaN()), `null`},

		{ast.Int(0), `0`},
		{ast.Int(15), `15`},
		{ast.Int(-25), `-25`},

		{ast.List{}, `[]`},
		{ast.List{
			ast.Bool(true),
			ast.Int(199),
		}, `[true,199]`},
		{ast.List{
			ast.String("free"),
			ast.String("your"),
			ast.String("mind"),
		}, `["free","your","mind"]`},

		{ast.Object{}, `{}`},
		{ast.Object{
			ast.Field("xs", ast.Null),
		}, `{"xs":null}`},
		{ast.Object{
			ast.Field("name", "Dennis"),
			ast.Field("age", 37),
			ast.Field("isOld", false),
		}, `{"name":"Dennis","age":37,"isOld":false}`},
		{ast.Object{
			ast.Field("values", ast.List{ast.Int(5), ast.Int(10), ast.Bool(true)}),
			ast.Field("page", ast.Object{
				ast.Field("token", "xyz-pdq-zvm"),
				ast.Field("count", 100),
			}),
		}, `{"values":[5,10,true],"page":{"token":"xyz-pdq-zvm","count":100}}`},

		{ast.NewTable("a"), `[]`},
		{tab, `[{"id":1,"name":"a"},{"id":2,"name":null}]`},
	}
	for _, test := range tests {
		got := test.input.JSON()
		if got != test.want {
			t.Errorf("Input: %+v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestConstruct(t *testing.T) {
	t.Run("Push", func(t *testing.T) {
		var lst ast.List
		var caps []int
		for i := range 9 {
			lst.Push(ast.Int(i))
			caps = append(caps, cap(lst))
		}
		if diff := cmp.Diff([]int{4, 4, 4, 4, 8, 8, 8, 8, 16}, caps); diff != "" {
			t.Errorf("Capacities (-want, +got):\n%s", diff)
		}
		if got, want := lst.JSON(), `[0,1,2,3,4,5,6,7,8]`; got != want {
			t.Errorf("List: got %s, want %s", got, want)
		}
	})

	t.Run("AddRow", func(t *testing.T) {
		tab := ast.NewTable("a", "b")
		if err := tab.AddRow(1, 2, 3); err == nil {
			t.Error("AddRow with too many values: got nil, want error")
		}
		if n := tab.Len(); n != 0 {
			t.Errorf("Len: got %d, want 0", n)
		}
	})

	t.Run("Add", func(t *testing.T) {
		var obj ast.Object
		obj.Add("a", 1)
		obj.Add("b", []any{"x", nil})
		obj.Add("a", 2)
		if got, want := obj.JSON(), `{"a":1,"b":["x",null],"a":2}`; got != want {
			t.Errorf("Object: got %s, want %s", got, want)
		}
		if got := obj.Find("a").Value; got != ast.Int(1) {
			t.Errorf("Find a: got %v, want 1", got)
		}
		if got := obj.Find("c"); got != nil {
			t.Errorf("Find c: got %v, want nil", got)
		}
	})
}

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  string
	}{
		{nil, "null"},
		{"fuzzy", `"fuzzy"`},
		{true, "true"},
		{int8(-4), "-4"},
		{uint32(7), "7"},
		{float32(0.5), "0.5"},
		{[]bool{true, false}, "[true,false]"},
		{[]string{}, "[]"},
		{map[string]int{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{map[string]any{"z": []any{1, "two"}}, `{"z":[1,"two"]}`},
		{(*int)(nil), "null"},
		{ast.Field("k", 3), "3"},
		{ast.List{ast.Null}, "[null]"},
	}
	for _, test := range tests {
		if got := ast.ToValue(test.input).JSON(); got != test.want {
			t.Errorf("ToValue(%#v): got %s, want %s", test.input, got, test.want)
		}
	}

	if got := ast.ToValue(uint64(math.MaxUint64)); got.Kind() != ast.DoubleKind {
		t.Errorf("ToValue(MaxUint64): got %v, want double", got.Kind())
	}

	t.Run("Invalid", func(t *testing.T) {
		mtest.MustPanic(t, func() { ast.ToValue(func() {}) })
		mtest.MustPanic(t, func() { ast.ToValue(make(chan struct{})) })
		mtest.MustPanic(t, func() { ast.ToValue(map[int]string{1: "x"}) })
		mtest.MustPanic(t, func() { ast.ToValue(struct{ X int }{1}) })
	})
}

func TestNative(t *testing.T) {
	root, _ := testutil.MustParse(t, "a: 1\nb: x\nb: y\nc[2]: true,null\n"+
		"t[1]{p,q}:\n  1.5,\"s\"\n")
	want := map[string]any{
		"a": int64(1),
		"b": "x",
		"c": []any{true, nil},
		"t": []any{map[string]any{"p": 1.5, "q": "s"}},
	}
	if diff := cmp.Diff(want, ast.Native(root)); diff != "" {
		t.Errorf("Native (-want, +got):\n%s", diff)
	}
}

func TestRelease(t *testing.T) {
	root, _ := testutil.MustParse(t, `a: 1
b:
  c: x
xs[2]: 1,2
t[2]{p,q}:
  1,2
  3,4
`)
	b := root.Find("b").Value.(ast.Object)
	tab := root.Find("t").Value.(*ast.Table)

	// root, a, b, c, xs, 2 elements, t, 2 rows, 4 cells
	if n := ast.Release(root); n != 14 {
		t.Errorf("Release: got %d values, want 14", n)
	}
	for i, m := range root {
		if m != nil {
			t.Errorf("Member %d not released: %+v", i, m)
		}
	}
	if b[0] != nil {
		t.Errorf("Nested member not released: %+v", b[0])
	}
	if tab.Rows != nil || tab.Columns != nil {
		t.Errorf("Table not released: %+v", tab)
	}
	if n := ast.Release(nil); n != 0 {
		t.Errorf("Release(nil): got %d, want 0", n)
	}
	if n := ast.Release(ast.Int(5)); n != 1 {
		t.Errorf("Release(5): got %d, want 1", n)
	}
}
