// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting of JSON strings and unquoting of TOON
// quoted strings.
package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// HasEscape reports whether src contains a backslash, so that Unquote would
// change it.
func HasEscape(src mem.RO) bool { return mem.IndexByte(src, '\\') >= 0 }

// Unquote decodes the interior of a TOON quoted string. The input must have
// the enclosing double quotation marks already removed.
//
// The escapes \" \\ \/ \b \f \n \r \t and \uXXXX are replaced with their
// unescaped equivalents, and a surrogate pair of \u escapes is combined.
// Decoding is lenient: an unknown escape or a malformed \u escape is
// replaced by the Unicode replacement rune, and a backslash at the end of
// the input is kept as written.
func Unquote(src mem.RO) []byte {
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(nil, src)
	}

	dec := make([]byte, 0, src.Len())
	for i >= 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			dec = append(dec, '\\')
			return dec
		}

		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			var u rune
			u, src = decodeU(src)
			dec = utf8.AppendRune(dec, u)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
	}
	return mem.Append(dec, src)
}

// decodeU decodes the four hex digits of a \u escape at the front of src, and
// a following low surrogate escape if the first is a high surrogate. It
// returns the decoded rune and the remaining input.
func decodeU(src mem.RO) (rune, mem.RO) {
	if src.Len() < 4 {
		return utf8.RuneError, src
	}
	v, ok := parseHex(src.SliceTo(4))
	if !ok {
		return utf8.RuneError, src.SliceFrom(4)
	}
	src = src.SliceFrom(4)
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, src
	}
	if src.Len() >= 6 && src.At(0) == '\\' && src.At(1) == 'u' {
		if lo, ok := parseHex(src.Slice(2, 6)); ok {
			if pr := utf16.DecodeRune(r, rune(lo)); pr != utf8.RuneError {
				return pr, src.SliceFrom(6)
			}
		}
	}
	return utf8.RuneError, src
}

func parseHex(data mem.RO) (int64, bool) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, false
		}
	}
	return v, true
}
