// Package testutil defines support code for unit tests.
package testutil

import (
	"testing"

	"github.com/creachadair/toon"
	"github.com/creachadair/toon/ast"
)

// MustParse parses src as a TOON document with the given options, and
// returns the root object and the text of any diagnostics reported. It fails
// t if the parse reports a fatal error.
func MustParse(t testing.TB, src string, opts ...ast.Option) (ast.Object, []string) {
	t.Helper()
	var diags []string
	opts = append(opts[:len(opts):len(opts)], ast.OnDiagnostic(func(d *toon.Diagnostic) {
		diags = append(diags, d.Error())
	}))
	root, err := ast.ParseString(src, opts...)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return root, diags
}

// Keys returns the keys of the members of obj, in order.
func Keys(obj ast.Object) []string {
	out := make([]string, len(obj))
	for i, m := range obj {
		out[i] = m.Key
	}
	return out
}
