// Package core holds the types and error kinds shared across the
// transcoder: the directive model (MutationSpec, Condition, Relation),
// the locale enum, and the Kind-tagged error used for the one-line
// "prog error: <kind>: <detail>" message on fatal failure.
package core

import "fmt"

// Kind classifies a failure the way the CLI reports it on stderr.
type Kind string

const (
	KindIO                 Kind = "io"
	KindJSONParse          Kind = "json-parse"
	KindInvalidFormat      Kind = "invalid-format"
	KindUnsupportedVersion Kind = "unsupported-version"
	KindUnknownMutation    Kind = "unknown-mutation"
	KindMutationError      Kind = "mutation-error"
	KindUniqueExhausted    Kind = "unique-exhausted"
	KindMissingParameter   Kind = "missing-parameter"
	KindInvalidParameter   Kind = "invalid-parameter"
	KindCompressionError   Kind = "compression-error"
	KindUTF8Decode         Kind = "utf8-decode"
)

// Error is a kind-tagged error. Fatal conditions (header/TOC parse
// failures, block framing errors, decompression/IO errors) are returned as
// *Error up to the CLI. Mutation generators also return *Error for
// row-level failures (missing/invalid parameter, unknown mutation, unique
// exhaustion); the row mutator handles those locally, so they never reach
// the top of the call stack.
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap builds a *Error of the given kind from detail text, optionally
// wrapping an underlying error.
func Wrap(kind Kind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// Wrapf is Wrap with a formatted detail string.
func Wrapf(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...), Err: err}
}
