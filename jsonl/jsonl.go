// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package jsonl reads and writes newline-delimited JSON documents, one
// complete value per line.
//
// By default a Reader skips lines that do not parse, and logs each skipped
// line to its logger. In strict mode, the first malformed line ends reading
// with an error instead.
package jsonl

import (
	"bufio"
	"io"

	"github.com/creachadair/jsonval"
	"github.com/creachadair/jsonval/ast"
	"github.com/creachadair/jsonval/output"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go4.org/mem"
	"golang.org/x/text/encoding"
)

// maxLineBytes bounds the length of a single document.
const maxLineBytes = 64 << 20

// A Reader reads a sequence of documents from line-oriented input.
type Reader struct {
	sc     *bufio.Scanner
	logger log.Logger
	enc    encoding.Encoding
	strict bool

	line    int // number of the most recent line read, 1-based
	skipped int // number of malformed lines skipped
}

// NewReader constructs a Reader that consumes input from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineBytes)
	return &Reader{sc: sc, logger: log.NewNopLogger()}
}

// SetLogger sets the logger used to report skipped lines. A nil logger
// discards log output.
func (r *Reader) SetLogger(logger log.Logger) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	r.logger = logger
}

// SetStrict configures r to fail (true) or skip (false) malformed lines.
func (r *Reader) SetStrict(strict bool) { r.strict = strict }

// SetEncoding declares the encoding of the input, as for a jsonval.Scanner.
func (r *Reader) SetEncoding(enc encoding.Encoding) { r.enc = enc }

// Line reports the number of the line that produced the most recent document
// or error, 1-based.
func (r *Reader) Line() int { return r.line }

// Skipped reports the number of malformed lines skipped so far.
func (r *Reader) Skipped() int { return r.skipped }

// Next returns the next document of the input. Blank lines are ignored. At
// the end of the input, Next returns io.EOF.
func (r *Reader) Next() (ast.Value, error) {
	for r.sc.Scan() {
		r.line++
		text := r.sc.Bytes()
		if mem.TrimSpace(mem.B(text)).Len() == 0 {
			continue
		}
		s := jsonval.NewMemScanner(mem.B(text))
		s.SetEncoding(r.enc)
		v, err := ast.NewReader(s).Read()
		if err == nil {
			return v, nil
		} else if r.strict {
			return nil, errors.Wrapf(err, "line %d", r.line)
		}
		r.skipped++
		level.Warn(r.logger).Log("msg", "skipping malformed document", "line", r.line, "err", err)
	}
	if err := r.sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input")
	}
	return nil, io.EOF
}

// A Writer writes documents to an io.Writer, one per line.
type Writer struct {
	sink *output.WriterSink
	out  *output.Output
}

// NewWriter constructs a Writer that renders documents to w in dense format
// with the given options.
func NewWriter(w io.Writer, opts ast.Options) *Writer {
	sink := output.NewWriterSink(w)
	return &Writer{sink: sink, out: output.New(sink, ast.Dense(opts))}
}

// Write writes v followed by a newline.
func (w *Writer) Write(v ast.Value) error {
	if err := w.out.Write(v); err != nil {
		return errors.Wrap(err, "writing document")
	}
	if err := w.sink.AppendToken("\n"); err != nil {
		return errors.Wrap(err, "writing document")
	}
	return w.sink.Flush()
}
