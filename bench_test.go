package jsonval_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/creachadair/jsonval"
	"github.com/creachadair/jsonval/ast"
	jsoniter "github.com/json-iterator/go"
	"go4.org/mem"
)

func BenchmarkScanner(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Decoder", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			dec := json.NewDecoder(bytes.NewReader(input))
			for {
				_, err := dec.Token()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("Scanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s := jsonval.NewScanner(bytes.NewReader(input))
			for {
				_, err := s.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})

	b.Run("MemScanner", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			s := jsonval.NewMemScanner(mem.B(input))
			for {
				_, err := s.Next()
				if err == io.EOF {
					break
				} else if err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		}
	})
}

func BenchmarkParse(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}

	b.Run("Unmarshal", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var v any
			if err := json.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("Jsoniter", func(b *testing.B) {
		api := jsoniter.ConfigCompatibleWithStandardLibrary
		for i := 0; i < b.N; i++ {
			var v any
			if err := api.Unmarshal(input, &v); err != nil {
				b.Fatalf("Unmarshal: %v", err)
			}
		}
	})

	b.Run("AST", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			if _, err := ast.ParseString(string(input)); err != nil {
				b.Fatalf("Parse: %v", err)
			}
		}
	})
}

func BenchmarkRender(b *testing.B) {
	input, err := os.ReadFile("testdata/input.json")
	if err != nil {
		b.Fatalf("Reading test input: %v", err)
	}
	v, err := ast.ParseString(string(input))
	if err != nil {
		b.Fatalf("Parse: %v", err)
	}
	for _, f := range []struct {
		name string
		f    ast.Format
	}{{"Dense", ast.Dense(0)}, {"Indented", ast.Indented("", 0)}} {
		b.Run(f.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = f.f.Render(v)
			}
		})
	}
}
