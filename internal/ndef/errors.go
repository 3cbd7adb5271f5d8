package ndef

import (
	"errors"
	"fmt"
)

// ParseErrorKind categorizes decode failures.
type ParseErrorKind string

const (
	// InvalidRecord means the record framing itself is broken: truncated
	// text record, undecodable text encoding, empty payload.
	InvalidRecord ParseErrorKind = "INVALID_RECORD"

	// InvalidJSON means the record carried text that is not syntactically
	// valid JSON.
	InvalidJSON ParseErrorKind = "INVALID_JSON"

	// InvalidStructure means the JSON parsed but does not match the
	// compact payload shape (missing fields, sessions not an array).
	InvalidStructure ParseErrorKind = "INVALID_STRUCTURE"
)

// ParseError reports a malformed tag record. It is classified so callers
// can tell broken framing apart from broken JSON without string matching.
type ParseError struct {
	Kind ParseErrorKind
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err (or anything it wraps) is a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

func parseErrorf(kind ParseErrorKind, wrapped error, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: wrapped}
}
