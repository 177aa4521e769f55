// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package toon implements a scanner and stream parser for TOON, a compact
// indentation-based encoding of the JSON data model.
//
// A TOON document is a sequence of property lines. Each line is indented by
// two spaces per nesting level, and has one of these forms:
//
//	key: value          a scalar property
//	key:                opens a nested object, whose properties follow
//	key[N]: v1,v2,...   an inline list of at most N values
//	key[N]{c1,c2}:      a table of at most N rows, one per following line
//	key[]:              an empty object; it does not open a nesting level
//
// Blank lines and lines whose first non-blank character is "#" are ignored.
//
// # Scanning
//
// The Scanner type reads one property at a time. Construct a scanner from a
// byte slice and call its Next method to iterate over the properties:
//
//	s := toon.NewScanner(input)
//	for {
//	   err := s.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Print(err) // a *toon.Diagnostic; the line was skipped
//	      continue
//	   }
//	   p := s.Property()
//	   log.Printf("%s: %v", p.Key, p.Form)
//	}
//
// A malformed line is not fatal: Next reports a *Diagnostic and scanning
// resumes on the following line.
//
// # Streaming
//
// The Stream type tracks the indentation of each property and delivers
// events to a Handler that describe the nesting structure of the input:
//
//	Syntax     | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	key:       | BeginObject, EndObject    | nested object
//	key[N]:    | BeginList, EndList        | inline list
//	key[N]{}:  | BeginList, EndList        | table; each row is an object
//	key: v     | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The whole document is an object, so every stream begins with BeginObject
// and ends with a matching EndObject. Diagnostics for malformed lines are
// delivered to the handler if it implements DiagnosticHandler, or written to
// os.Stderr otherwise. Only a fatal error, such as nesting deeper than the
// depth limit, stops the parse:
//
//	s := toon.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// See package [github.com/creachadair/toon/ast] for a parser that builds a
// value tree.
package toon
