// Package errors defines the error taxonomy of the command interpreter.
// Every failure a command can report is an *Error carrying a Kind, so the
// status line and the tests can tell a collision from a missing path without
// parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Kind classifies an error.
type Kind int

const (
	Unknown Kind = iota
	ParseError
	UnknownCommand
	OutOfBounds
	PathNotFound
	PathExists
	NotDirectory
	SelfSubdirectory
	NoSelection
	InvalidArgument
	PermissionDenied
	ChildProcessFailure
)

func (k Kind) String() string {
	switch k {
	case ParseError:
		return "ParseError"
	case UnknownCommand:
		return "UnknownCommand"
	case OutOfBounds:
		return "OutOfBounds"
	case PathNotFound:
		return "PathNotFound"
	case PathExists:
		return "PathExists"
	case NotDirectory:
		return "NotDirectory"
	case SelfSubdirectory:
		return "SelfSubdirectory"
	case NoSelection:
		return "NoSelection"
	case InvalidArgument:
		return "InvalidArgument"
	case PermissionDenied:
		return "PermissionDenied"
	case ChildProcessFailure:
		return "ChildProcessFailure"
	default:
		return "Unknown"
	}
}

// Error is a classified command failure. Msg is the user-facing text shown on
// the status line; Op and Path are kept for logging.
type Error struct {
	Kind Kind
	Op   string
	Path string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with a formatted message.
func New(kind Kind, op, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind, keeping it as the cause.
func Wrap(kind Kind, op, path string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or Unknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
