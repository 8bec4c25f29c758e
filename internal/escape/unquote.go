// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
	"golang.org/x/text/encoding"
)

var (
	// ErrEscape is reported for an unknown or incomplete escape sequence.
	ErrEscape = errors.New("malformed escape")

	// ErrEncoding is reported for bytes that are not valid in the source
	// encoding.
	ErrEncoding = errors.New("invalid encoding")
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents, and the
// text between escapes is converted to UTF-8 by dec. If dec == nil, the text
// must already be valid UTF-8. A \u escape denotes one UTF-16 code unit;
// surrogate pairs are combined, and unpaired surrogates are replaced by the
// Unicode replacement rune.
func Unquote(src mem.RO, dec *encoding.Decoder) ([]byte, error) {
	dst := make([]byte, 0, src.Len())
	for src.Len() != 0 {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			i = src.Len()
		}
		var err error
		dst, err = appendText(dst, src.SliceTo(i), dec)
		if err != nil {
			return nil, err
		}
		src = src.SliceFrom(i)
		if src.Len() == 0 {
			break
		}

		// src begins with a backslash.
		if src.Len() < 2 {
			return nil, fmt.Errorf("%w: incomplete escape sequence", ErrEscape)
		}
		c := src.At(1)
		src = src.SliceFrom(2)
		switch c {
		case '"', '\\', '/':
			dst = append(dst, c)
		case 'b':
			dst = append(dst, '\b')
		case 'f':
			dst = append(dst, '\f')
		case 'n':
			dst = append(dst, '\n')
		case 'r':
			dst = append(dst, '\r')
		case 't':
			dst = append(dst, '\t')
		case 'u':
			r, n, err := unicodeEscape(src)
			if err != nil {
				return nil, err
			}
			dst = utf8.AppendRune(dst, r)
			src = src.SliceFrom(n)
		default:
			return nil, fmt.Errorf("%w: illegal escape sequence \\%c", ErrEscape, rune(c))
		}
	}
	return dst, nil
}

// unicodeEscape decodes the four hex digits at the front of src, and the
// low half of a surrogate pair if one follows. It returns the decoded rune and
// the number of bytes of src consumed.
func unicodeEscape(src mem.RO) (rune, int, error) {
	v, err := parseHex4(src)
	if err != nil {
		return 0, 0, err
	}
	r := rune(v)
	if !utf16.IsSurrogate(r) {
		return r, 4, nil
	}
	if src.Len() >= 10 && src.At(4) == '\\' && src.At(5) == 'u' {
		if lo, err := parseHex4(src.SliceFrom(6)); err == nil {
			if p := utf16.DecodeRune(r, rune(lo)); p != utf8.RuneError {
				return p, 10, nil
			}
		}
	}
	return utf8.RuneError, 4, nil
}

// appendText appends text to dst, converting it to UTF-8 with dec.
func appendText(dst []byte, text mem.RO, dec *encoding.Decoder) ([]byte, error) {
	if text.Len() == 0 {
		return dst, nil
	}
	if dec != nil {
		s, err := dec.String(text.StringCopy())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return append(dst, s...), nil
	}
	for rest := text; rest.Len() != 0; {
		r, n := mem.DecodeRune(rest)
		if r == utf8.RuneError && n <= 1 {
			return nil, fmt.Errorf("%w: byte %#02x is not valid UTF-8", ErrEncoding, rest.At(0))
		}
		rest = rest.SliceFrom(n)
	}
	return mem.Append(dst, text), nil
}

func parseHex4(src mem.RO) (int64, error) {
	if src.Len() < 4 {
		return 0, fmt.Errorf("%w: incomplete Unicode escape", ErrEscape)
	}
	var v int64
	for i := 0; i < 4; i++ {
		b := src.At(i)
		v <<= 4
		if '0' <= b && b <= '9' {
			v += int64(b - '0')
		} else if 'a' <= b && b <= 'f' {
			v += int64(b - 'a' + 10)
		} else if 'A' <= b && b <= 'F' {
			v += int64(b - 'A' + 10)
		} else {
			return 0, fmt.Errorf("%w: invalid hex digit %q", ErrEscape, rune(b))
		}
	}
	return v, nil
}
