// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package toon

import (
	"errors"
	"strings"

	"github.com/creachadair/toon/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string { return string(escape.Quote(mem.S(src))) }

// Unquote decodes a TOON quoted string. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unknown or malformed escapes are replaced by the Unicode replacement rune.
// Unquote reports an error only if src is not enclosed in quotation marks.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1])), nil
}

// Interior returns the text of a quoted string without its quotation marks,
// and without decoding escapes. If text is not quoted, it is returned as-is.
func Interior(text []byte) []byte {
	if Classify(text) == Quoted {
		return text[1 : len(text)-1]
	}
	return text
}
