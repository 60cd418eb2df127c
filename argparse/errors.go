package argparse

import (
	"errors"
	"fmt"
)

// ErrorKind classifies parser errors.
type ErrorKind uint8

const (
	// KindSchema marks a malformed argument specification, detected
	// while building a parser.
	KindSchema ErrorKind = iota
	// KindType marks an operation given the wrong shape of value.
	KindType
	// KindParse marks a failure while consuming input tokens.
	KindParse
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindType:
		return "type"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is a structured parser error carrying the failure kind and the
// identity of the offending argument, when known.
type Error struct {
	Kind    ErrorKind
	Arg     string // offending argument ("--flag", "-f", or positional name)
	Message string
}

func (e *Error) Error() string {
	if e.Arg != "" {
		return fmt.Sprintf("%s error: argument %s: %s", e.Kind, e.Arg, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// ErrHelp is returned by Parse after a help action has rendered its
// text. The parse terminated successfully without a result.
var ErrHelp = errors.New("argparse: help requested")

// ErrVersion is returned by Parse after a version action has rendered
// its text. The parse terminated successfully without a result.
var ErrVersion = errors.New("argparse: version requested")

func schemaErr(arg, format string, args ...any) *Error {
	return &Error{Kind: KindSchema, Arg: arg, Message: fmt.Sprintf(format, args...)}
}

func parseErr(arg, format string, args ...any) *Error {
	return &Error{Kind: KindParse, Arg: arg, Message: fmt.Sprintf(format, args...)}
}
