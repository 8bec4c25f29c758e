// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"math"
	"testing"

	"github.com/creachadair/jsonval/ast"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

func TestString(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  string
	}{
		{ast.Null, "null"},

		{ast.Bool(false), "false"},
		{ast.Bool(true), "true"},

		{ast.String(""), `""`},
		{ast.String("a \t b"), `"a \t b"`},
		{ast.String("tab\tnl\nbs\\sl/"), `"tab\tnl\nbs\\sl/"`},

		{ast.Float(-0.00239), `-0.00239`},
		{ast.Float(0), `0.0`},
		{ast.Float(10), `10.0`},
		{ast.Float(12.99), `12.99`},
		{ast.Float(1e21), `1e+21`},
		{ast.Float(1.5e-7), `1.5e-7`},
		{ast.Float(math.Inf(1)), `null`},
		{ast.Float(math.NaN()), `null`},

		{ast.Int(0), `0`},
		{ast.Int(15), `15`},
		{ast.Int(-25), `-25`},
		{ast.Int(math.MinInt64), `-9223372036854775808`},

		{ast.Array{}, `[]`},
		{ast.Array{
			ast.Bool(false),
		}, `[false]`},
		{ast.Array{
			ast.Bool(true),
			ast.Int(199),
		}, `[true,199]`},
		{ast.Array{
			ast.String("free"),
			ast.String("your"),
			ast.String("mind"),
		}, `["free","your","mind"]`},

		{ast.Object{}, `{}`},
		{ast.Object{
			ast.Field("xs", ast.Null),
		}, `{"xs":null}`},
		{ast.Object{
			ast.Field("name", ast.String("Dennis")),
			ast.Field("age", ast.Int(37)),
			ast.Field("isOld", ast.Bool(false)),
		}, `{"name":"Dennis","age":37,"isOld":false}`},

		{ast.Object{
			ast.Field("values", ast.Array{
				ast.Int(5),
				ast.Int(10),
				ast.Bool(true),
			}),
			ast.Field("page", ast.Object{
				ast.Field("token", ast.String("xyz-pdq-zvm")),
				ast.Field("count", ast.Int(100)),
			}),
		}, `{"values":[5,10,true],"page":{"token":"xyz-pdq-zvm","count":100}}`},
	}
	for _, test := range tests {
		got := test.input.JSON()
		if got != test.want {
			t.Errorf("Input: %+v\nGot:  %s\nWant: %s", test.input, got, test.want)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		input ast.Value
		want  ast.Kind
		str   string
	}{
		{ast.Null, ast.NullKind, "null"},
		{ast.Bool(true), ast.BoolKind, "bool"},
		{ast.Int(1), ast.IntKind, "integer"},
		{ast.Float(1), ast.FloatKind, "float"},
		{ast.String("1"), ast.StringKind, "string"},
		{ast.Array{}, ast.ArrayKind, "array"},
		{ast.Object{}, ast.ObjectKind, "object"},
	}
	for _, tc := range tests {
		if got := tc.input.Kind(); got != tc.want {
			t.Errorf("Kind(%v): got %v, want %v", tc.input, got, tc.want)
		}
		if got := tc.want.String(); got != tc.str {
			t.Errorf("String(%d): got %q, want %q", tc.want, got, tc.str)
		}
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		input any
		want  ast.Value
	}{
		{nil, ast.Null},
		{true, ast.Bool(true)},
		{"s", ast.String("s")},
		{int8(-3), ast.Int(-3)},
		{uint32(7), ast.Int(7)},
		{int64(1) << 40, ast.Int(1 << 40)},
		{float32(0.5), ast.Float(0.5)},
		{2.0, ast.Float(2)},
		{ast.Int(9), ast.Int(9)},
		{[]any{1, "a", nil}, ast.Array{ast.Int(1), ast.String("a"), ast.Null}},
		{map[string]any{"z": 1, "a": []any{}, "m": map[string]any{}}, ast.Object{
			&ast.Member{Key: "a", Value: ast.Array{}},
			&ast.Member{Key: "m", Value: ast.Object{}},
			&ast.Member{Key: "z", Value: ast.Int(1)},
		}},
	}
	for _, tc := range tests {
		got := ast.ToValue(tc.input)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("ToValue(%#v): (-want, +got)\n%s", tc.input, diff)
		}
	}

	t.Run("Unsupported", func(t *testing.T) {
		mtest.MustPanic(t, func() { ast.ToValue(struct{}{}) })
		mtest.MustPanic(t, func() { ast.ToValue(uint64(1)) })
		mtest.MustPanic(t, func() { ast.ToValue([]int{1}) })
	})
}

func TestObject(t *testing.T) {
	var obj ast.Object
	obj.Set("b", ast.Int(1))
	obj.Set("a", ast.Int(2))
	obj.Set("b", ast.String("replaced"))

	if got, want := obj.JSON(), `{"b":"replaced","a":2}`; got != want {
		t.Errorf("JSON: got %s, want %s", got, want)
	}
	if got := obj.Len(); got != 2 {
		t.Errorf("Len: got %d, want 2", got)
	}
	if diff := cmp.Diff([]string{"b", "a"}, obj.Keys()); diff != "" {
		t.Errorf("Keys: (-want, +got)\n%s", diff)
	}
	if m := obj.Find("nonesuch"); m != nil {
		t.Errorf("Find(nonesuch): got %v, want nil", m)
	}
	if m := obj.Find("a"); m == nil || m.Value != ast.Int(2) {
		t.Errorf("Find(a): got %v, want 2", m)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []ast.Value{
		ast.Null,
		ast.Int(math.MaxInt64),
		ast.Int(math.MinInt64),
		ast.Float(1),
		ast.Float(-0.125),
		ast.Float(6.02214076e23),
		ast.Float(math.SmallestNonzeroFloat64),
		ast.Float(math.MaxFloat64),
		ast.String("tab\tnewline\nbackslash\\slash/quote\"ctl\x01\x7f"),
		ast.String("Knüper \U0001F600 \u2028"),
		ast.ToValue(map[string]any{
			"list":   []any{1, 2.5, "three", nil, true, []any{}},
			"nested": map[string]any{"a/b": map[string]any{"": false}},
			"empty":  map[string]any{},
		}),
	}
	formats := []struct {
		name string
		f    ast.Format
	}{
		{"Dense", ast.Dense(0)},
		{"DenseSlash", ast.Dense(ast.EscapeSlash)},
		{"Indented", ast.Indented("", 0)},
		{"Tabbed", ast.Indented("\t", ast.EscapeSlash)},
	}
	for _, fc := range formats {
		t.Run(fc.name, func(t *testing.T) {
			for _, v := range values {
				text := fc.f.Render(v)
				got, err := ast.ParseString(text)
				if err != nil {
					t.Errorf("Parse %s: unexpected error: %v", text, err)
					continue
				}
				if diff := cmp.Diff(v, got); diff != "" {
					t.Errorf("Round trip %s: (-want, +got)\n%s", text, diff)
				}
			}
		})
	}
}
