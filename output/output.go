// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package output writes JSON values to a token sink, either one complete
// value at a time or incrementally as a stream of array elements or object
// members.
//
// To write a complete value:
//
//	out := output.New(output.NewWriterSink(w), ast.Indented("  ", 0))
//	if err := out.Write(v); err != nil {
//	   log.Fatalf("Write: %v", err)
//	}
//
// To write a large array without holding it in memory:
//
//	s, err := out.Begin(ast.ArrayKind)
//	...
//	for _, row := range rows {
//	   s.Add(toValue(row))
//	}
//	if err := s.Close(); err != nil { ... }
package output

import (
	"github.com/creachadair/jsonval"
	"github.com/creachadair/jsonval/ast"
)

// Output renders values to a Sink in a given format. An Output is not safe
// for concurrent use.
type Output struct {
	sink   Sink
	format ast.Format
	stream *Stream // the open stream, if any
	err    error   // the first error reported by sink
}

// New constructs an Output that writes to sink in format f.
func New(sink Sink, f ast.Format) *Output { return &Output{sink: sink, format: f} }

// Format returns the format used by o.
func (o *Output) Format() ast.Format { return o.format }

// Write renders the complete text of v to the sink, then flushes the sink.
// If a stream is open, it is closed first.
func (o *Output) Write(v ast.Value) error {
	o.closeStream()
	o.format.Emit(v, 0, o.emit)
	return o.flush()
}

// Begin starts a stream of the given kind, which must be ast.ArrayKind or
// ast.ObjectKind, and emits its opening bracket. If a stream is already open,
// it is closed first. For any other kind, Begin reports an error of kind
// jsonval.InvalidStreamKind.
func (o *Output) Begin(kind ast.Kind) (*Stream, error) {
	if kind != ast.ArrayKind && kind != ast.ObjectKind {
		return nil, jsonval.Errorf(jsonval.InvalidStreamKind, jsonval.LineCol{},
			"expecting either an array or an object, %v given", kind)
	}
	o.closeStream()
	o.emit(o.format.Open(kind))
	o.stream = &Stream{out: o, kind: kind}
	return o.stream, o.err
}

// Close closes the open stream, if any, and flushes the sink. If the sink
// also implements io.Closer, it is closed.
func (o *Output) Close() error {
	o.closeStream()
	err := o.flush()
	if c, ok := o.sink.(interface{ Close() error }); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// emit passes text to the sink unless an earlier write has failed.
func (o *Output) emit(text string) error {
	if o.err == nil {
		o.err = o.sink.AppendToken(text)
	}
	return o.err
}

func (o *Output) flush() error {
	if o.err == nil {
		o.err = o.sink.Flush()
	}
	return o.err
}

func (o *Output) closeStream() {
	if o.stream != nil {
		o.stream.Close()
	}
}

// A Stream writes the elements of an array or the members of an object one
// at a time. Elements already written cannot be revisited.
type Stream struct {
	out  *Output
	kind ast.Kind
	n    int // number of items written
	done bool
}

// Kind reports the kind of container s is writing.
func (s *Stream) Kind() ast.Kind { return s.kind }

// Add writes v as the next element of an array stream. It panics if s is not
// an array stream, or has been closed.
func (s *Stream) Add(v ast.Value) error {
	s.check(ast.ArrayKind)
	o := s.out
	o.emit(o.format.Sep(s.n, 0))
	o.format.Emit(v, 1, o.emit)
	s.n++
	return o.err
}

// AddPair writes a member with the given key and value to an object stream.
// If the format omits null values and v is null, AddPair does nothing.
// It panics if s is not an object stream, or has been closed.
func (s *Stream) AddPair(key string, v ast.Value) error {
	s.check(ast.ObjectKind)
	o := s.out
	if o.format.Skip(v) {
		return o.err
	}
	o.emit(o.format.Sep(s.n, 0))
	o.emit(o.format.Key(key))
	o.format.Emit(v, 1, o.emit)
	s.n++
	return o.err
}

// Close emits the closing bracket of s and flushes the sink. Closing a stream
// that is already closed does nothing and reports any earlier error.
func (s *Stream) Close() error {
	o := s.out
	if s.done {
		return o.err
	}
	s.done = true
	if o.stream == s {
		o.stream = nil
	}
	o.emit(o.format.Close(s.kind, s.n, 0))
	return o.flush()
}

func (s *Stream) check(kind ast.Kind) {
	if s.done {
		panic("output: write to a closed stream")
	} else if s.kind != kind {
		panic("output: cannot add " + kind.String() + " item to " + s.kind.String() + " stream")
	}
}
