// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import "go4.org/mem"

// Token is the lexical class of a scalar value in the TOON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	String               // unquoted string
	Quoted               // double-quoted string
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null, or an empty value
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	String:  "string",
	Quoted:  "quoted string",
	Integer: "integer",
	Number:  "number",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// maxNumberLen is the longest text that Classify will consider as a number.
// Longer numeric-looking text is classified as a String.
const maxNumberLen = 127

var (
	constTrue  = mem.S("true")
	constFalse = mem.S("false")
	constNull  = mem.S("null")
)

// Classify reports the token type of text, which must already be trimmed of
// surrounding whitespace. The rules are applied in order, and the first match
// wins:
//
//   - Empty text is Null.
//   - Text of at least two bytes that begins and ends with '"' is Quoted.
//   - The exact words true, false, and null are True, False, and Null.
//   - Text matching [+-]?D+(.D+)?([eE][+-]?D+)? is Number if it has a fraction
//     or exponent, otherwise Integer.
//   - Anything else is String.
func Classify(text []byte) Token {
	t := mem.B(text)
	switch {
	case t.Len() == 0:
		return Null
	case t.Len() >= 2 && t.At(0) == '"' && t.At(t.Len()-1) == '"':
		return Quoted
	case t.Equal(constTrue):
		return True
	case t.Equal(constFalse):
		return False
	case t.Equal(constNull):
		return Null
	}
	if t.Len() <= maxNumberLen {
		if ok, isFloat := scanNumber(t); ok && isFloat {
			return Number
		} else if ok {
			return Integer
		}
	}
	return String
}

// scanNumber reports whether t is entirely a number, and if so whether the
// number has a fraction or exponent part.
func scanNumber(t mem.RO) (ok, isFloat bool) {
	i, n := 0, t.Len()
	if i < n && (t.At(i) == '-' || t.At(i) == '+') {
		i++
	}
	j := skipDigits(t, i)
	if j == i {
		return false, false // at least one integer digit is required
	}
	i = j

	if i < n && t.At(i) == '.' {
		j = skipDigits(t, i+1)
		if j == i+1 {
			return false, false // no digits after decimal point
		}
		i, isFloat = j, true
	}
	if i < n && (t.At(i) == 'e' || t.At(i) == 'E') {
		i++
		if i < n && (t.At(i) == '-' || t.At(i) == '+') {
			i++
		}
		j = skipDigits(t, i)
		if j == i {
			return false, false // missing exponent digits
		}
		i, isFloat = j, true
	}
	return i == n, isFloat
}

func skipDigits(t mem.RO, i int) int {
	for i < t.Len() && isDigit(t.At(i)) {
		i++
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }
