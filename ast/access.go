// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

// Typed accessors. Each returns the zero value of its result type when v has
// a different kind, or is nil.

// AsInt returns the value of an integer, or 0.
func AsInt(v Value) int64 {
	if z, ok := v.(Int); ok {
		return int64(z)
	}
	return 0
}

// AsFloat returns the value of a floating-point number, or 0. An integer is
// converted to floating-point.
func AsFloat(v Value) float64 {
	switch t := v.(type) {
	case Float:
		return float64(t)
	case Int:
		return float64(t)
	}
	return 0
}

// AsBool returns the value of a Boolean, or false.
func AsBool(v Value) bool {
	b, ok := v.(Bool)
	return ok && bool(b)
}

// AsString returns the value of a string and true, or "" and false if v is
// not a string.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// IsNull reports whether v is the null value. A nil Value is absent, not
// null.
func IsNull(v Value) bool { return v != nil && v.Kind() == NullKind }

// Is reports whether v is non-nil and has kind k.
func Is(v Value, k Kind) bool { return v != nil && v.Kind() == k }
