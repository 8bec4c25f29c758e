// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/creachadair/jsonval/internal/escape"
	"go4.org/mem"
)

// Options is a set of rendering options for a Format.
type Options uint

const (
	// OmitNulls skips object members whose value is null.
	OmitNulls Options = 1 << iota

	// EscapeSlash escapes "/" in strings as "\/".
	EscapeSlash
)

// A Format carries the separator, indentation and option settings for
// rendering values as text. A Format is immutable; the zero value is not
// ready for use, construct one with Dense or Indented.
type Format struct {
	comma, colon string
	indent       string // per-level indentation; empty for dense output
	opts         Options
}

// DefaultFormat is the dense format with no options set.
var DefaultFormat = Dense(0)

// Dense returns a format that renders values with no insignificant
// whitespace.
func Dense(opts Options) Format { return Format{comma: ",", colon: ":", opts: opts} }

// Indented returns a format that starts each element and member on a new
// line, indented by one copy of indent per level of nesting. If indent == ""
// it defaults to two spaces.
func Indented(indent string, opts Options) Format {
	if indent == "" {
		indent = "  "
	}
	return Format{comma: ",", colon: ": ", indent: indent, opts: opts}
}

// Options reports the options of f.
func (f Format) Options() Options { return f.opts }

// IsIndented reports whether f is an indented format.
func (f Format) IsIndented() bool { return f.indent != "" }

// Skip reports whether a member with value v is omitted from objects.
func (f Format) Skip(v Value) bool { return f.opts&OmitNulls != 0 && v.Kind() == NullKind }

// Render returns the complete text of v in format f.
func (f Format) Render(v Value) string {
	var sb strings.Builder
	f.Emit(v, 0, func(s string) error {
		sb.WriteString(s)
		return nil
	})
	return sb.String()
}

// Emit renders v at the given nesting depth, passing each fragment of text to
// emit in order. If emit reports an error, rendering stops and Emit returns
// that error.
func (f Format) Emit(v Value, depth int, emit func(string) error) error {
	switch t := v.(type) {
	case Array:
		if err := emit(f.Open(ArrayKind)); err != nil {
			return err
		}
		for i, elt := range t {
			if err := emit(f.Sep(i, depth)); err != nil {
				return err
			}
			if err := f.Emit(elt, depth+1, emit); err != nil {
				return err
			}
		}
		return emit(f.Close(ArrayKind, len(t), depth))

	case Object:
		if err := emit(f.Open(ObjectKind)); err != nil {
			return err
		}
		var n int
		for _, m := range t {
			if f.Skip(m.Value) {
				continue
			}
			if err := emit(f.Sep(n, depth)); err != nil {
				return err
			}
			if err := emit(f.Key(m.Key)); err != nil {
				return err
			}
			if err := f.Emit(m.Value, depth+1, emit); err != nil {
				return err
			}
			n++
		}
		return emit(f.Close(ObjectKind, n, depth))

	default:
		return emit(f.Scalar(v))
	}
}

// Open returns the opening bracket for a container of kind k.  It panics if k
// is not ArrayKind or ObjectKind.
func (f Format) Open(k Kind) string {
	switch k {
	case ArrayKind:
		return "["
	case ObjectKind:
		return "{"
	}
	panic(fmt.Sprintf("kind %v is not a container", k))
}

// Sep returns the text to emit before element i of a container at the given
// nesting depth.
func (f Format) Sep(i, depth int) string {
	var sep string
	if i > 0 {
		sep = f.comma
	}
	if f.indent != "" {
		sep += "\n" + strings.Repeat(f.indent, depth+1)
	}
	return sep
}

// Close returns the closing bracket for a container of kind k at the given
// nesting depth, that contains n elements.  It panics if k is not ArrayKind or
// ObjectKind.
func (f Format) Close(k Kind, n, depth int) string {
	var end string
	switch k {
	case ArrayKind:
		end = "]"
	case ObjectKind:
		end = "}"
	default:
		panic(fmt.Sprintf("kind %v is not a container", k))
	}
	if n == 0 || f.indent == "" {
		return end
	}
	return "\n" + strings.Repeat(f.indent, depth) + end
}

// Key returns the text of an object key followed by the key separator.
func (f Format) Key(key string) string {
	return string(escape.Quote(nil, mem.S(key), f.opts&EscapeSlash != 0)) + f.colon
}

// Scalar returns the text of a non-container value. It panics if v is an
// Array or Object.
func (f Format) Scalar(v Value) string {
	switch t := v.(type) {
	case nullValue:
		return "null"
	case Bool:
		return strconv.FormatBool(bool(t))
	case Int:
		return strconv.FormatInt(int64(t), 10)
	case Float:
		return formatFloat(float64(t))
	case String:
		return string(escape.Quote(nil, mem.S(string(t)), f.opts&EscapeSlash != 0))
	default:
		panic(fmt.Sprintf("unknown scalar type %T", v))
	}
}

// formatFloat renders v in the shortest form that reads back as the same
// float64, similar to the ES6 number-to-string conversion. The result always
// contains a fraction or an exponent. Non-finite values render as null.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "null"
	}
	abs := math.Abs(v)
	mode := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		mode = 'e'
	}
	buf := strconv.AppendFloat(make([]byte, 0, 24), v, mode, -1, 64)
	if mode == 'e' {
		// Clean up e-09 to e-9.
		n := len(buf)
		if n >= 4 && buf[n-4] == 'e' && buf[n-3] == '-' && buf[n-2] == '0' {
			buf[n-2] = buf[n-1]
			buf = buf[:n-1]
		}
		return string(buf)
	}
	if !strings.ContainsRune(string(buf), '.') {
		buf = append(buf, ".0"...)
	}
	return string(buf)
}
