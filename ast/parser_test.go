// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/toon"
	"github.com/creachadair/toon/ast"
	"github.com/creachadair/toon/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

func TestScenarios(t *testing.T) {
	t.Run("Primitives", func(t *testing.T) {
		root, diags := testutil.MustParse(t, `name: John Doe
age: 30
height: 1.75
active: true
middle_name: null
scientific: 1.5e10
`)
		if len(diags) != 0 {
			t.Errorf("Unexpected diagnostics: %q", diags)
		}
		if s, ok := ast.AsString(ast.Get(root, "name")); !ok || s != "John Doe" {
			t.Errorf("name: got %q, %v; want John Doe", s, ok)
		}
		if age := ast.Get(root, "age"); !ast.Is(age, ast.IntegerKind) || ast.AsInt(age) != 30 {
			t.Errorf("age: got %v, want integer 30", age)
		}
		if h := ast.Get(root, "height"); !ast.Is(h, ast.DoubleKind) || math.Abs(ast.AsFloat(h)-1.75) > 1e-4 {
			t.Errorf("height: got %v, want double 1.75", h)
		}
		if a := ast.Get(root, "active"); !ast.Is(a, ast.BoolKind) || !ast.AsBool(a) {
			t.Errorf("active: got %v, want true", a)
		}
		if m := ast.Get(root, "middle_name"); !ast.IsNull(m) {
			t.Errorf("middle_name: got %v, want null", m)
		}
		if s := ast.Get(root, "scientific"); !ast.Is(s, ast.DoubleKind) || math.Abs(ast.AsFloat(s)-1.5e10) > 1e6 {
			t.Errorf("scientific: got %v, want double 1.5e10", s)
		}
	})

	t.Run("DeepNest", func(t *testing.T) {
		root, _ := testutil.MustParse(t, `user:
  address:
    coordinates:
      lat: 42.1234
      lon: -71.5678
`)
		lat := ast.Get(root, "user.address.coordinates.lat")
		if !ast.Is(lat, ast.DoubleKind) || math.Abs(ast.AsFloat(lat)-42.1234) > 1e-4 {
			t.Errorf("lat: got %v, want double 42.1234", lat)
		}
		if m := ast.Get(root, "user").(ast.Object).Find("address"); m.Indent != 1 {
			t.Errorf("address indent: got %d, want 1", m.Indent)
		}
	})

	t.Run("InlineList", func(t *testing.T) {
		root, _ := testutil.MustParse(t, "numbers[5]: 1,2,3,4,5\n")
		nums := ast.Get(root, "numbers")
		if n := ast.Len(nums); n != 5 {
			t.Errorf("Len: got %d, want 5", n)
		}
		for i := range 5 {
			if got := ast.AsInt(ast.At(nums, i)); got != int64(i+1) {
				t.Errorf("At(%d): got %d, want %d", i, got, i+1)
			}
		}
		if got := ast.At(nums, 5); got != nil {
			t.Errorf("At(5): got %v, want nil", got)
		}
	})

	t.Run("Tabular", func(t *testing.T) {
		root, _ := testutil.MustParse(t, `users[3]{id,name,active}:
  1,Alice,true
  2,Bob,false
  3,Charlie,true
`)
		users := ast.Get(root, "users")
		if n := ast.Len(users); n != 3 {
			t.Fatalf("Len: got %d, want 3", n)
		}
		if got := ast.Get(ast.At(users, 1), "active"); got != ast.Bool(false) {
			t.Errorf("users[1].active: got %v, want false", got)
		}
		want := []string{"id", "name", "active"}
		for i := range 3 {
			row := ast.At(users, i).(ast.Object)
			if diff := cmp.Diff(want, testutil.Keys(row)); diff != "" {
				t.Errorf("Row %d keys (-want, +got):\n%s", i, diff)
			}
			for _, m := range row {
				if m.Indent != 1 {
					t.Errorf("Row %d member %q indent: got %d, want 1", i, m.Key, m.Indent)
				}
			}
		}
	})

	t.Run("CommentsAndErrors", func(t *testing.T) {
		root, diags := testutil.MustParse(t, `k1: v1
no_colon_here
# k2: hidden
k2: v2
`)
		if got := ast.Get(root, "k1"); got != ast.String("v1") {
			t.Errorf("k1: got %v, want v1", got)
		}
		if got := ast.Get(root, "k2"); got != ast.String("v2") {
			t.Errorf("k2: got %v, want v2", got)
		}
		for _, key := range []string{"no_colon_here", "hidden", "# k2"} {
			if got := ast.Get(root, key); got != nil {
				t.Errorf("%s: got %v, want nil", key, got)
			}
		}
		if diff := cmp.Diff([]string{"Syntax error at line 2: expected ':'"}, diags); diff != "" {
			t.Errorf("Diagnostics (-want, +got):\n%s", diff)
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		root, _ := testutil.MustParse(t, "empty[0]:\n")
		v := ast.Get(root, "empty")
		if !ast.Is(v, ast.ListKind) || ast.Len(v) != 0 {
			t.Errorf("empty: got %v, want empty list", v)
		}
	})
}

func TestParseEdges(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // JSON
		diags []string
	}{
		{"Empty", "", `{}`, nil},
		{"OnlyComments", "# a\n  # b\n\n", `{}`, nil},
		{"EmptyValueOpens", "job:\nnext: 1", `{"job":{},"next":1}`, nil},
		{"EmptyBrackets", "k[]:\n  x: 1\ny: 2", `{"k":{},"x":1,"y":2}`, nil},
		{"EmptyBracketsNested", "o:\n  k[]:\n    x: 1\n  z: 3", `{"o":{"k":{},"x":1,"z":3}}`, nil},
		{"EmptyBracketsScalar", "k[]: 1,2,3", `{"k":"1,2,3"}`, nil},
		{"Dedent", "a:\n  b:\n    c: 1\n  d: 2\ne: 3",
			`{"a":{"b":{"c":1},"d":2},"e":3}`, nil},
		{"OverIndent", "a: 1\n      b: 2", `{"a":1,"b":2}`, nil},
		{"OverIndentNested", "a:\n      b: 2\n  c: 3", `{"a":{"b":2,"c":3}}`, nil},
		{"Tabs", "a:\n\tb: 1", `{"a":{},"b":1}`, nil},
		{"OddIndent", "a:\n   b: 1", `{"a":{"b":1}}`, nil},
		{"CRLF", "a:\r\n  b: x\r\n", `{"a":{"b":"x"}}`, nil},
		{"Duplicates", "k: 1\nk: 2", `{"k":1,"k":2}`, nil},
		{"QuotedEmpty", `e: ""`, `{"e":""}`, nil},
		{"Version", "v: 2.1.0", `{"v":"2.1.0"}`, nil},
		{"InlineHash", "a: b # c", `{"a":"b # c"}`, nil},
		{"QuotedVerbatim", `s: "a\tb"`, `{"s":"a\\tb"}`, nil},
		{"NullSlots", "xs[3]: ,2,", `{"xs":[null,2]}`, nil},
		{"BigInt", "n: 99999999999999999999", `{"n":1e+20}`, nil},
		{"HugeFloat", "n: 1e999", `{"n":null}`, nil},
		{"ListInObject", "o:\n  xs[2]: a,b\n  y: 1", `{"o":{"xs":["a","b"],"y":1}}`, nil},
		{"TableInObject", "o:\n  t[1]{a}:\n    5\n  y: 1", `{"o":{"t":[{"a":5}],"y":1}}`, nil},
		{"TableFollowedByDedent", "t[2]{a,b}:\n  1,2\n  3\nz: 0",
			`{"t":[{"a":1,"b":2},{"a":3,"b":null}],"z":0}`, nil},

		{"ListCap", "xs[2]: 1,2,3,4", `{"xs":[1,2]}`, []string{
			"Warning at line 1: list has more than 2 values",
		}},
		{"TableCap", "t[1]{a}:\n  1\n  2\n", `{"t":[{"a":1}]}`, []string{
			"Syntax error at line 3: expected ':'",
		}},
		{"RowExtra", "t[1]{a}:\n  1,2\nz: 0", `{"t":[{"a":1}],"z":0}`, []string{
			"Warning at line 2: row has more than 1 values",
		}},
		{"EmptyKey", ": v\nk: 1", `{"k":1}`, nil},
		{"ColumnsNoArity", "t{a}:\n  1\nk: 1", `{"k":1}`, []string{
			"Syntax error at line 1: expected '[' before column list",
			"Syntax error at line 2: expected ':'",
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			root, diags := testutil.MustParse(t, test.input)
			if got := root.JSON(); got != test.want {
				t.Errorf("Input: %#q\nGot:  %s\nWant: %s", test.input, got, test.want)
			}
			if diff := cmp.Diff(test.diags, diags); diff != "" {
				t.Errorf("Diagnostics (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseOptions(t *testing.T) {
	const input = "s: \"a\\tb \\u00e9\"\nbad line\n"

	t.Run("Unescape", func(t *testing.T) {
		root, _ := testutil.MustParse(t, input, ast.Unescape(true))
		if got := ast.Get(root, "s"); got != ast.String("a\tb \u00e9") {
			t.Errorf("s: got %#q, want unescaped", got)
		}
	})

	t.Run("ReportTo", func(t *testing.T) {
		var buf bytes.Buffer
		if _, err := ast.ParseString(input, ast.ReportTo(&buf)); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got, want := buf.String(), "Syntax error at line 2: expected ':'\n"; got != want {
			t.Errorf("Report: got %q, want %q", got, want)
		}
	})

	t.Run("MaxDepth", func(t *testing.T) {
		root, err := ast.ParseString("a:\n  b:\n    c: 1\n", ast.MaxDepth(2))
		var serr *toon.SyntaxError
		if !errors.As(err, &serr) {
			t.Fatalf("Parse: got error %v, want *SyntaxError", err)
		}
		if root != nil {
			t.Errorf("Parse: got %v, want nil", root)
		}
		if serr.Location.Line != 2 {
			t.Errorf("Error line: got %d, want 2", serr.Location.Line)
		}
	})

	t.Run("DefaultDepth", func(t *testing.T) {
		var sb strings.Builder
		for i := range 70 {
			sb.WriteString(strings.Repeat("  ", i) + "k:\n")
		}
		if _, err := ast.ParseString(sb.String(), ast.ReportTo(nil)); err == nil {
			t.Error("Parse of 70 levels did not report an error")
		}

		sb.Reset()
		for i := range toon.DefaultMaxDepth - 1 {
			sb.WriteString(strings.Repeat("  ", i) + "k:\n")
		}
		if _, err := ast.ParseString(sb.String(), ast.ReportTo(nil)); err != nil {
			t.Errorf("Parse of %d levels: unexpected error: %v", toon.DefaultMaxDepth-1, err)
		}
	})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hikes.toon")
	const input = `context:
  task: Our favorite hikes together
  location: Boulder
hikes[2]{id,name,distanceKm,elevationGain}:
  1,Blue Lake Trail,7.5,320
  2,Ridge Overlook,9.2,540
`
	if err := os.WriteFile(path, []byte(input), 0600); err != nil {
		t.Fatalf("Write input: %v", err)
	}

	root, err := ast.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	hikes := ast.Get(root, "hikes")
	if n := ast.Len(hikes); n != 2 {
		t.Fatalf("Len(hikes): got %d, want 2", n)
	}
	second := ast.At(hikes, 1)
	if got, _ := ast.AsString(ast.Get(second, "name")); got != "Ridge Overlook" {
		t.Errorf("hikes[1].name: got %q", got)
	}
	if got := ast.AsFloat(ast.Get(second, "distanceKm")); got != 9.2 {
		t.Errorf("hikes[1].distanceKm: got %v, want 9.2", got)
	}
	if got := ast.AsInt(ast.Get(second, "elevationGain")); got != 540 {
		t.Errorf("hikes[1].elevationGain: got %v, want 540", got)
	}

	// ParseBytes produces the same tree.
	other, err := ast.ParseBytes([]byte(input))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if diff := cmp.Diff(root, other); diff != "" {
		t.Errorf("ParseBytes (-file, +bytes):\n%s", diff)
	}

	if _, err := ast.ParseFile(filepath.Join(dir, "nonesuch.toon")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile(nonesuch): got %v, want %v", err, fs.ErrNotExist)
	}
}

func TestEmitStable(t *testing.T) {
	const input = "b: 1\na:\n  z: [x]\n  y: 2.50\nt[1]{q,p}:\n  \"r\",-0\n"
	first, _ := testutil.MustParse(t, input)
	want := ast.FormatToString(first)
	for range 5 {
		root, _ := testutil.MustParse(t, input)
		if got := ast.FormatToString(root); got != want {
			t.Fatalf("Output changed:\n%s\nwant:\n%s", got, want)
		}
	}
}
