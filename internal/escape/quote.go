// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote appends to dst the JSON encoding of src as a string, including the
// enclosing double quotation marks. If slash is true, "/" is escaped as "\/".
// Invalid UTF-8 in src is replaced by the Unicode replacement rune.
func Quote(dst []byte, src mem.RO, slash bool) []byte {
	dst = append(dst, '"')
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		if r < utf8.RuneSelf {
			switch {
			case r < ' ':
				if b := controlEsc[r]; b != 0 {
					dst = append(dst, '\\', b)
				} else {
					dst = appendU00(dst, byte(r))
				}
			case r == 0x7f:
				dst = appendU00(dst, byte(r))
			case r == '\\' || r == '"' || (r == '/' && slash):
				dst = append(dst, '\\', byte(r))
			default:
				dst = append(dst, byte(r))
			}
			continue
		}

		switch r {
		case utf8.RuneError: // also covers invalid input bytes
			dst = append(dst, `\ufffd`...)
		case '\u2028': // line separator
			dst = append(dst, `\u2028`...)
		case '\u2029': // paragraph separator
			dst = append(dst, `\u2029`...)
		default:
			dst = utf8.AppendRune(dst, r)
		}
	}
	return append(dst, '"')
}

func appendU00(dst []byte, b byte) []byte {
	return append(dst, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
}
