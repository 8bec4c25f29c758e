// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an in-memory model for JSON values, a reader that
// constructs values from JSON source, and formats that render them as text.
package ast

import (
	"fmt"
	"maps"
	"slices"
)

// Kind identifies the type of a JSON value.
type Kind byte

// Constants defining the valid Kind values.
const (
	NullKind Kind = iota
	BoolKind
	IntKind
	FloatKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	NullKind:   "null",
	BoolKind:   "bool",
	IntKind:    "integer",
	FloatKind:  "float",
	StringKind: "string",
	ArrayKind:  "array",
	ObjectKind: "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindStr[k]
}

// A Value is an arbitrary JSON value.
type Value interface {
	// Kind reports the type of the value.
	Kind() Kind

	// JSON renders the value as text in DefaultFormat.
	JSON() string
}

type nullValue struct{}

// Null is the JSON null constant.
var Null Value = nullValue{}

func (nullValue) Kind() Kind { return NullKind }
func (v nullValue) JSON() string { return DefaultFormat.Render(v) }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }
func (b Bool) JSON() string { return DefaultFormat.Render(b) }

// An Int is an integer value with no fraction or exponent.
type Int int64

func (Int) Kind() Kind { return IntKind }
func (z Int) JSON() string { return DefaultFormat.Render(z) }

// A Float is a floating-point value. It always renders with a fraction or an
// exponent, so that it does not read back as an Int.
type Float float64

func (Float) Kind() Kind { return FloatKind }
func (f Float) JSON() string { return DefaultFormat.Render(f) }

// A String is a string value.
type String string

func (String) Kind() Kind { return StringKind }
func (s String) JSON() string { return DefaultFormat.Render(s) }

// An Array is a sequence of values.
type Array []Value

func (Array) Kind() Kind { return ArrayKind }
func (a Array) JSON() string { return DefaultFormat.Render(a) }

// Len reports the number of elements in a.
func (a Array) Len() int { return len(a) }

// An Object is an ordered collection of key-value members.  Values built by
// the Reader have unique keys; use Set to preserve that when building an
// Object by hand.
type Object []*Member

func (Object) Kind() Kind { return ObjectKind }
func (o Object) JSON() string { return DefaultFormat.Render(o) }

// Len reports the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the first member of o with the given key, or nil.
func (o Object) Find(key string) *Member {
	for _, m := range o {
		if m.Key == key {
			return m
		}
	}
	return nil
}

// Keys returns the keys of o in order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Set sets the value of key in o to v. If key is already present its value
// is replaced in place; otherwise a new member is added at the end.
func (o *Object) Set(key string, v Value) {
	if m := o.Find(key); m != nil {
		m.Value = v
		return
	}
	*o = append(*o, &Member{Key: key, Value: v})
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.  The value
// is converted as by ToValue.
func Field(key string, val any) *Member { return &Member{Key: key, Value: ToValue(val)} }

// ToValue converts a Go value into an equivalent Value.
//
// Values of type Value are returned unchanged. A nil yields Null. Booleans,
// strings, and numbers of built-in type are converted to Bool, String, Int,
// and Float respectively. A []any becomes an Array, and a map[string]any
// becomes an Object with keys in lexicographic order. ToValue panics for any
// other type.
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		arr := make(Array, len(t))
		for i, elt := range t {
			arr[i] = ToValue(elt)
		}
		return arr
	case map[string]any:
		obj := make(Object, 0, len(t))
		for _, key := range slices.Sorted(maps.Keys(t)) {
			obj = append(obj, Field(key, t[key]))
		}
		return obj
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}
