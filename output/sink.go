// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package output

import (
	"bufio"
	"bytes"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A Sink accumulates the text fragments produced by an Output.
type Sink interface {
	// AppendToken adds text to the output.
	AppendToken(text string) error

	// Flush delivers any buffered output to its destination.
	Flush() error
}

// Buffer is a Sink that accumulates output in memory.
// The zero value is ready for use.
type Buffer struct {
	buf bytes.Buffer
}

// AppendToken satisfies the Sink interface. It never reports an error.
func (b *Buffer) AppendToken(text string) error {
	b.buf.WriteString(text)
	return nil
}

// Flush satisfies the Sink interface. It does nothing.
func (*Buffer) Flush() error { return nil }

// Bytes returns the accumulated output. The slice is valid until the next
// modification of b.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

// String returns the accumulated output as a string.
func (b *Buffer) String() string { return b.buf.String() }

// Reset discards the accumulated output.
func (b *Buffer) Reset() { b.buf.Reset() }

// WriterSink is a Sink that writes to an io.Writer through a buffer.
type WriterSink struct {
	w  *bufio.Writer
	tw io.WriteCloser // encoding transformer, or nil
}

// NewWriterSink constructs a Sink that writes UTF-8 output to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w)}
}

// NewEncodedSink constructs a Sink that converts output to enc before writing
// it to w. Text that cannot be represented in enc causes an error. If enc is
// nil or UTF-8, it is equivalent to NewWriterSink.
func NewEncodedSink(w io.Writer, enc encoding.Encoding) *WriterSink {
	if enc == nil || enc == unicode.UTF8 {
		return NewWriterSink(w)
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return &WriterSink{w: bufio.NewWriter(tw), tw: tw}
}

// AppendToken satisfies the Sink interface.
func (s *WriterSink) AppendToken(text string) error {
	_, err := s.w.WriteString(text)
	return err
}

// Flush satisfies the Sink interface.
func (s *WriterSink) Flush() error { return s.w.Flush() }

// Close flushes s and completes any pending encoding. It does not close the
// underlying writer.
func (s *WriterSink) Close() error {
	err := s.w.Flush()
	if s.tw != nil {
		if cerr := s.tw.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
