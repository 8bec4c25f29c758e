// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package ast

import "github.com/creachadair/jsonval"

// Elements returns a sequence reader for the elements of an array, without
// reading the whole array into memory. The sequence consumes the opening
// bracket of the array when it first advances, and stops after the matching
// closing bracket. It does not check what follows the array.
//
// The sequence is forward-only and cannot be restarted. Until it is
// exhausted it owns the underlying tokenizer; see Reader.
//
//	seq := r.Elements()
//	for seq.Next() {
//	   process(seq.Value())
//	}
//	if err := seq.Err(); err != nil {
//	   log.Fatalf("Reading array: %v", err)
//	}
func (r *Reader) Elements() *Elements {
	r.checkIdle()
	r.active = true
	return &Elements{seq: seq{r: r, opener: jsonval.LSquare, closer: jsonval.RSquare, kind: jsonval.UnclosedArray, label: "array"}}
}

// Pairs returns a sequence reader for the members of an object, analogous to
// Elements. Members are reported in input order, including any duplicate keys.
func (r *Reader) Pairs() *Pairs {
	r.checkIdle()
	r.active = true
	return &Pairs{seq: seq{r: r, opener: jsonval.LBrace, closer: jsonval.RBrace, kind: jsonval.UnclosedObject, label: "object"}}
}

// Elements is a sequence reader for array elements.
type Elements struct {
	seq
	cur Value
}

// Next advances e to the next element, and reports whether one is available.
// It returns false at the end of the array, or if an error occurs.
func (e *Elements) Next() bool {
	return e.advance(func() { e.cur = e.r.value() })
}

// Value returns the current element. It is valid only after Next returns true.
func (e *Elements) Value() Value { return e.cur }

// Pairs is a sequence reader for object members.
type Pairs struct {
	seq
	cur *Member
}

// Next advances p to the next member, and reports whether one is available.
// It returns false at the end of the object, or if an error occurs.
func (p *Pairs) Next() bool {
	return p.advance(func() {
		key, val := p.r.member()
		p.cur = &Member{Key: key, Value: val}
	})
}

// Key returns the key of the current member.
func (p *Pairs) Key() string { return p.cur.Key }

// Value returns the value of the current member.
func (p *Pairs) Value() Value { return p.cur.Value }

// Member returns the current member.
func (p *Pairs) Member() *Member { return p.cur }

// seq holds the state shared by Elements and Pairs.
type seq struct {
	r      *Reader
	opener jsonval.TokenKind
	closer jsonval.TokenKind
	kind   jsonval.ErrorKind // reported for a missing separator or closer
	label  string

	n    int // number of items delivered
	done bool
	err  error
}

// Err returns the error that ended the sequence, or nil if it ended at the
// closing bracket or has not ended.
func (s *seq) Err() error { return s.err }

// advance consumes the punctuation before the next item, and calls item to
// consume the item itself if the container has not ended.
func (s *seq) advance(item func()) (ok bool) {
	if s.done {
		return false
	}
	defer func() {
		if !ok {
			s.done = true
			s.r.active = false
		}
	}()
	defer recoverError(&s.err)

	if s.n == 0 {
		tok, ok := s.r.next()
		if !ok {
			s.r.failEOF(jsonval.UnexpectedToken, "expected "+s.opener.String())
		} else if tok.Kind != s.opener {
			s.r.fail(jsonval.UnexpectedToken, tok, "unexpected %v, expecting %v", tok, s.opener)
		}
		if tok, ok := s.r.peek(); ok && tok.Kind == s.closer {
			s.r.next()
			return false
		} else if !ok {
			s.r.failEOF(s.kind, "unclosed "+s.label)
		}
	} else if s.r.endOf(s.closer, s.kind, s.label) {
		return false
	}
	item()
	s.n++
	return true
}
