// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package toon

import "fmt"

// Severity classifies a Diagnostic.
type Severity byte

const (
	// Error marks a line that was discarded.
	Error Severity = iota

	// Warning marks a line that was accepted, but part of whose content was
	// ignored.
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// A Diagnostic reports a problem with a single line of input. Diagnostics do
// not stop parsing: the offending line (or the offending part of it) is
// skipped and parsing resumes on the next line.
type Diagnostic struct {
	Severity Severity
	Line     int // 1-based
	Message  string
}

// Error satisfies the error interface. The format for an Error severity is
//
//	Syntax error at line N: message
func (d *Diagnostic) Error() string {
	if d.Severity == Warning {
		return fmt.Sprintf("Warning at line %d: %s", d.Line, d.Message)
	}
	return fmt.Sprintf("Syntax error at line %d: %s", d.Line, d.Message)
}

func errorAt(line int, msg string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: Error, Line: line, Message: fmt.Sprintf(msg, args...)}
}

func warningAt(line int, msg string, args ...any) *Diagnostic {
	return &Diagnostic{Severity: Warning, Line: line, Message: fmt.Sprintf(msg, args...)}
}

// SyntaxError is the concrete type of fatal errors reported by the stream
// parser. Unlike a Diagnostic, a SyntaxError ends the parse.
type SyntaxError struct {
	Location LineCol
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
