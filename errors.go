// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonval

import "fmt"

// ErrorKind classifies the errors reported by this module. An ErrorKind is
// itself an error, so that errors.Is(err, kind) reports whether err is an
// *Error of that kind.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	UnclosedString    ErrorKind = iota + 1 // string literal missing its closing quote
	InvalidEncoding                        // string bytes not valid in the source encoding
	MalformedEscape                        // unknown or incomplete \-escape
	UnexpectedToken                        // token that cannot begin a value
	IllegalKeyType                         // object key that is not a string
	ExpectedColon                          // object key not followed by ":"
	UnclosedObject                         // object missing "," or "}"
	UnclosedArray                          // array missing "," or "]"
	TrailingContent                        // input remaining after a complete value
	InvalidStreamKind                      // streaming write of a non-container kind
)

var kindStr = [...]string{
	0:                 "unknown error",
	UnclosedString:    "unclosed string",
	InvalidEncoding:   "invalid encoding",
	MalformedEscape:   "malformed escape",
	UnexpectedToken:   "unexpected token",
	IllegalKeyType:    "illegal key type",
	ExpectedColon:     "expected colon",
	UnclosedObject:    "unclosed object",
	UnclosedArray:     "unclosed array",
	TrailingContent:   "trailing content",
	InvalidStreamKind: "invalid stream kind",
}

func (k ErrorKind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[0]
	}
	return kindStr[k]
}

// Error satisfies the error interface.
func (k ErrorKind) Error() string { return k.String() }

// Error is the concrete type of errors reported by the scanner, the value
// reader, and the stream writer.
type Error struct {
	Kind     ErrorKind
	Location LineCol // zero if the error has no source location
	Message  string

	err error
}

// Errorf constructs an *Error of the given kind at loc, with a message
// formatted from msg and args.  If the arguments include an error wrapped
// with %w, it is reported by Unwrap.
func Errorf(kind ErrorKind, loc LineCol, msg string, args ...any) *Error {
	werr := fmt.Errorf(msg, args...)
	e := &Error{Kind: kind, Location: loc, Message: werr.Error()}
	if u, ok := werr.(interface{ Unwrap() error }); ok {
		e.err = u.Unwrap()
	}
	return e
}

// Error satisfies the error interface.
func (e *Error) Error() string {
	if e.Location.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Is reports whether target is the ErrorKind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Unwrap supports error wrapping.
func (e *Error) Unwrap() error { return e.err }
