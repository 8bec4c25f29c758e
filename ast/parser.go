// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jsonval"
	"go4.org/mem"
)

// Parse parses and returns a single JSON value from r. It reports an error if
// r contains anything but whitespace after the value.
func Parse(r io.Reader) (Value, error) {
	return NewReader(jsonval.NewScanner(r)).Read()
}

// ParseString parses and returns a single JSON value from s.
func ParseString(s string) (Value, error) {
	return NewReader(jsonval.NewMemScanner(mem.S(s))).Read()
}

// A Reader constructs values from the tokens delivered by a Tokenizer.
//
// A Reader owns its tokenizer exclusively and is not safe for concurrent use.
// While a sequence reader returned by Elements or Pairs is active, that
// sequence owns the tokenizer: starting another sequence or reading a value
// before the active sequence is exhausted is a caller error, and panics.
type Reader struct {
	tok    jsonval.Tokenizer
	last   jsonval.Token // the most recent token delivered
	active bool          // a sequence reader is in progress
}

// NewReader constructs a Reader that consumes tokens from tok.
func NewReader(tok jsonval.Tokenizer) *Reader { return &Reader{tok: tok} }

// Read parses exactly one value. It reports an error of kind TrailingContent
// if any tokens remain after the value.
func (r *Reader) Read() (_ Value, err error) {
	r.checkIdle()
	defer recoverError(&err)

	v := r.value()
	if tok, ok := r.next(); ok {
		r.fail(jsonval.TrailingContent, tok, "junk after end of value %v", tok)
	}
	return v, nil
}

// ReadValue parses one value starting at the current position of the input,
// without checking what follows it.
func (r *Reader) ReadValue() (_ Value, err error) {
	r.checkIdle()
	defer recoverError(&err)
	return r.value(), nil
}

func (r *Reader) checkIdle() {
	if r.active {
		panic("ast: reader is in use by a sequence")
	}
}

// readError carries an error out of the recursive descent.
type readError struct{ error }

func recoverError(errp *error) {
	if x := recover(); x != nil {
		if e, ok := x.(readError); ok {
			*errp = e.error
			return
		}
		panic(x)
	}
}

// next returns the next token, or false at the end of the input.
func (r *Reader) next() (jsonval.Token, bool) {
	tok, err := r.tok.Next()
	if err == io.EOF {
		return tok, false
	} else if err != nil {
		panic(readError{err})
	}
	r.last = tok
	return tok, true
}

func (r *Reader) fail(kind jsonval.ErrorKind, tok jsonval.Token, msg string, args ...any) {
	panic(readError{jsonval.Errorf(kind, tok.Location, msg, args...)})
}

// failEOF reports an error for input that ended too soon.
func (r *Reader) failEOF(kind jsonval.ErrorKind, msg string) {
	r.fail(kind, r.last, "%s, got end of input", msg)
}

// value consumes a single value of any type.
func (r *Reader) value() Value {
	tok, ok := r.next()
	if !ok {
		r.failEOF(jsonval.UnexpectedToken, "expected a value")
	}
	switch tok.Kind {
	case jsonval.LBrace:
		return r.object()
	case jsonval.LSquare:
		return r.array()
	case jsonval.String:
		return String(tok.Text)
	case jsonval.Literal:
		if v, ok := classify(tok.Text); ok {
			return v
		}
	}
	r.fail(jsonval.UnexpectedToken, tok, "unexpected %v reading value", tok)
	panic("unreachable")
}

// object consumes the members of an object through the closing brace.
// Precondition: the opening brace has been consumed.
func (r *Reader) object() Value {
	obj := Object{}
	tok, ok := r.next()
	if !ok {
		r.failEOF(jsonval.UnclosedObject, `expected "}" or a member`)
	} else if tok.Kind == jsonval.RBrace {
		return obj
	}
	r.tok.Backup(tok)

	index := make(map[string]int)
	for {
		key, val := r.member()
		if i, ok := index[key]; ok {
			obj[i].Value = val
		} else {
			index[key] = len(obj)
			obj = append(obj, &Member{Key: key, Value: val})
		}
		if r.endOf(jsonval.RBrace, jsonval.UnclosedObject, "object") {
			return obj
		}
	}
}

// member consumes a single "key": value pair.
func (r *Reader) member() (string, Value) {
	start, _ := r.peek()
	key := r.value()
	ks, ok := key.(String)
	if !ok {
		r.fail(jsonval.IllegalKeyType, start, "illegal key type %v, expecting string", key.Kind())
	}
	if tok, ok := r.next(); !ok {
		r.failEOF(jsonval.ExpectedColon, `expected ":" after object key`)
	} else if tok.Kind != jsonval.Colon {
		r.fail(jsonval.ExpectedColon, tok, `unexpected %v reading object, expecting ":"`, tok)
	}
	return string(ks), r.value()
}

// array consumes the elements of an array through the closing bracket.
// Precondition: the opening bracket has been consumed.
func (r *Reader) array() Value {
	arr := Array{}
	tok, ok := r.next()
	if !ok {
		r.failEOF(jsonval.UnclosedArray, `expected "]" or a value`)
	} else if tok.Kind == jsonval.RSquare {
		return arr
	}
	r.tok.Backup(tok)
	for {
		arr = append(arr, r.value())
		if r.endOf(jsonval.RSquare, jsonval.UnclosedArray, "array") {
			return arr
		}
	}
}

// endOf consumes the token following an element of a container, and reports
// whether it was the closing token. A comma continues the container; anything
// else fails with the given kind.
func (r *Reader) endOf(closer jsonval.TokenKind, kind jsonval.ErrorKind, label string) bool {
	tok, ok := r.next()
	if !ok {
		r.failEOF(kind, "unclosed "+label)
	}
	switch tok.Kind {
	case closer:
		return true
	case jsonval.Comma:
		return false
	}
	r.fail(kind, tok, `unexpected %v reading %s, expecting "," or %v`, tok, label, closer)
	panic("unreachable")
}

// peek returns the next token without consuming it.
func (r *Reader) peek() (jsonval.Token, bool) {
	tok, ok := r.next()
	if ok {
		r.tok.Backup(tok)
	}
	return tok, ok
}

// classify converts the text of a literal token to a value, or reports false
// if it is not a keyword or a valid number.
func classify(text string) (Value, bool) {
	switch text {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	case "null":
		return Null, true
	}
	if !isNumber(text) {
		return nil, false
	}
	if !strings.ContainsAny(text, ".eE") {
		if z, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(z), true
		}
		// Out of range for an integer; fall back to floating-point.
	}

	// N.B. A magnitude beyond the float64 range yields an infinity.
	f, _ := strconv.ParseFloat(text, 64)
	return Float(f), true
}

// isNumber reports whether text has the syntax of a JSON number:
//
//	[-] int [. digits] [(e|E) [+|-] digits]
//
// where int is either 0 or a nonzero digit followed by digits.
func isNumber(text string) bool {
	i := 0
	if i < len(text) && text[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}
		return i - start
	}

	// Integer part: extra leading zeroes are not allowed.
	if i < len(text) && text[i] == '0' {
		i++
	} else if digits() == 0 {
		return false
	}

	// Fractional part.
	if i < len(text) && text[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}

	// Exponent.
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < len(text) && (text[i] == '+' || text[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(text)
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }
