// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonval

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/creachadair/jsonval/internal/escape"
	"github.com/creachadair/mds/value"
	"go4.org/mem"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// TokenKind is the type of a lexical token in the JSON grammar.
type TokenKind byte

// Constants defining the valid TokenKind values.
const (
	Invalid TokenKind = iota // invalid token
	LBrace                   // left brace "{"
	RBrace                   // right brace "}"
	LSquare                  // left square bracket "["
	RSquare                  // right square bracket "]"
	Comma                    // comma ","
	Colon                    // colon ":"
	String                   // quoted string, escapes decoded
	Literal                  // any other run of non-delimiter characters
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	String:  "string",
	Literal: "literal",
}

func (t TokenKind) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Token is a single lexical unit of the input.
type Token struct {
	Kind TokenKind
	Text string // decoded contents for String, source text otherwise

	Span     Span    // source offsets of the token
	Location LineCol // line and column of the start of the token
}

// String renders the token for diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case String:
		return "string " + strconv.Quote(t.Text)
	case Literal:
		return fmt.Sprintf("[%s]", t.Text)
	}
	return t.Kind.String()
}

// A Tokenizer delivers a sequence of tokens to a consumer.
type Tokenizer interface {
	// Next returns the next token of the input. At the end of the input,
	// Next returns io.EOF.
	Next() (Token, error)

	// Backup pushes back tok, so that the following call to Next returns it
	// before resuming the input. At most one token may be pending.
	Backup(tok Token)
}

// A Scanner reads lexical tokens from an input source. It implements the
// Tokenizer interface. A Scanner is not safe for concurrent use.
type Scanner struct {
	src     io.ByteScanner
	dec     *encoding.Decoder // nil for UTF-8
	pending value.Maybe[Token]
	buf     bytes.Buffer // raw text of the current string

	end         int // offset of the next input byte
	eline, ecol int // 0-based line and column of the next input byte
	uline, ucol int // line and column before the last byte read
}

// NewScanner constructs a new lexical scanner that consumes input from r.
func NewScanner(r io.Reader) *Scanner {
	bs, ok := r.(io.ByteScanner)
	if !ok {
		bs = bufio.NewReader(r)
	}
	return &Scanner{src: bs}
}

// NewMemScanner constructs a new lexical scanner that consumes input from
// the contents of m, which must not be modified while the scanner is in use.
func NewMemScanner(m mem.RO) *Scanner { return &Scanner{src: &memSource{data: m}} }

// SetEncoding declares the encoding of the input. String contents are
// converted from enc to UTF-8. If enc == nil the input must be UTF-8.
// Only encodings that agree with ASCII on the JSON punctuation, quotation
// mark, backslash, and whitespace bytes are supported.
func (s *Scanner) SetEncoding(enc encoding.Encoding) {
	if enc == nil || enc == unicode.UTF8 {
		s.dec = nil
	} else {
		s.dec = enc.NewDecoder()
	}
}

// LookupEncoding returns the encoding with the given IANA name or alias,
// for example "utf-8", "iso-8859-1" or "windows-1252".
func LookupEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	} else if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return enc, nil
}

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF.
func (s *Scanner) Next() (Token, error) {
	if tok, ok := s.pending.GetOK(); ok {
		s.pending = value.Absent[Token]()
		return tok, nil
	}
	for {
		pos, loc := s.end, s.loc()
		ch, err := s.byte()
		if err == io.EOF {
			return Token{}, err
		} else if err != nil {
			return Token{}, s.fail(err)
		}

		// Discard whitespace.
		if isSpace(ch) {
			continue
		}

		// Handle punctuation.
		if t, ok := selfDelim(ch); ok {
			return s.token(t, string(ch), pos, loc), nil
		}

		// Handle string values.
		if ch == '"' {
			return s.scanString(pos, loc)
		}

		// Everything else is a literal, classified by the consumer.
		return s.scanLiteral(ch, pos, loc)
	}
}

// Backup pushes tok back onto the input. It panics if a token is already
// pending.
func (s *Scanner) Backup(tok Token) {
	if s.pending.Present() {
		panic("jsonval: Backup with a token already pending")
	}
	s.pending = value.Just(tok)
}

func (s *Scanner) token(kind TokenKind, text string, pos int, loc LineCol) Token {
	return Token{Kind: kind, Text: text, Span: Span{Pos: pos, End: s.end}, Location: loc}
}

func (s *Scanner) scanString(pos int, loc LineCol) (Token, error) {
	s.buf.Reset()
	var esc bool
	for {
		ch, err := s.byte()
		if err == io.EOF {
			return Token{}, Errorf(UnclosedString, loc, "unclosed string %s", abbrev(s.buf.Bytes()))
		} else if err != nil {
			return Token{}, s.fail(err)
		}
		if ch == '"' && !esc {
			break
		}
		esc = ch == '\\' && !esc
		s.buf.WriteByte(ch)
	}

	text, err := escape.Unquote(mem.B(s.buf.Bytes()), s.dec)
	if errors.Is(err, escape.ErrEncoding) {
		return Token{}, Errorf(InvalidEncoding, loc, "%w", err)
	} else if err != nil {
		return Token{}, Errorf(MalformedEscape, loc, "%w", err)
	}
	return s.token(String, string(text), pos, loc), nil
}

func (s *Scanner) scanLiteral(first byte, pos int, loc LineCol) (Token, error) {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		ch, err := s.byte()
		if err == io.EOF {
			break // a literal may end at end of input
		} else if err != nil {
			return Token{}, s.fail(err)
		}
		if isSpace(ch) || ch == '"' || isDelim(ch) {
			s.unbyte()
			break
		}
		sb.WriteByte(ch)
	}
	return s.token(Literal, sb.String(), pos, loc), nil
}

func (s *Scanner) loc() LineCol { return LineCol{Line: s.eline + 1, Column: s.ecol} }

func (s *Scanner) byte() (byte, error) {
	ch, err := s.src.ReadByte()
	if err != nil {
		return 0, err
	}
	s.uline, s.ucol = s.eline, s.ecol
	s.end++
	if ch == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol++
	}
	return ch, nil
}

func (s *Scanner) unbyte() {
	s.src.UnreadByte()
	s.end--
	s.eline, s.ecol = s.uline, s.ucol
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) fail(err error) error { return posError{s.end, err} }

// abbrev renders a prefix of raw string text for error messages.
func abbrev(text []byte) string {
	const maxLen = 16
	if len(text) > maxLen {
		text = text[:maxLen]
	}
	return strconv.Quote(string(text))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

var self = [...]TokenKind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (TokenKind, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}

func isDelim(ch byte) bool {
	_, ok := selfDelim(ch)
	return ok
}

// memSource is an io.ByteScanner over an in-memory input.
type memSource struct {
	data mem.RO
	pos  int
}

func (m *memSource) ReadByte() (byte, error) {
	if m.pos >= m.data.Len() {
		return 0, io.EOF
	}
	b := m.data.At(m.pos)
	m.pos++
	return b, nil
}

func (m *memSource) UnreadByte() error {
	if m.pos == 0 {
		return errors.New("jsonval: UnreadByte at beginning of input")
	}
	m.pos--
	return nil
}
