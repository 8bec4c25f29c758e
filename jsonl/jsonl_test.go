// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package jsonl_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/creachadair/jsonval"
	"github.com/creachadair/jsonval/ast"
	"github.com/creachadair/jsonval/jsonl"
	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const input = `{"id": 1, "name": "alpha"}

[1, 2, 3]
{"id": 2, "name": "beta"
"loose string"
  {"id": 3}
not json
`

func readAll(t *testing.T, r *jsonl.Reader) []ast.Value {
	t.Helper()
	var got []ast.Value
	for {
		v, err := r.Next()
		if err == io.EOF {
			return got
		}
		require.NoError(t, err)
		got = append(got, v)
	}
}

func TestReaderSkip(t *testing.T) {
	var logBuf bytes.Buffer
	r := jsonl.NewReader(strings.NewReader(input))
	r.SetLogger(log.NewLogfmtLogger(&logBuf))

	got := readAll(t, r)
	want := []string{
		`{"id":1,"name":"alpha"}`,
		`[1,2,3]`,
		`"loose string"`,
		`{"id":3}`,
	}
	require.Len(t, got, len(want))
	for i, v := range got {
		assert.Equal(t, want[i], v.JSON(), "document %d", i+1)
	}
	assert.Equal(t, 2, r.Skipped())
	assert.Equal(t, 7, r.Line())

	logs := strings.Split(strings.TrimSpace(logBuf.String()), "\n")
	require.Len(t, logs, 2)
	assert.Contains(t, logs[0], "level=warn")
	assert.Contains(t, logs[0], "line=4")
	assert.Contains(t, logs[1], "line=7")
	assert.Contains(t, logs[1], `msg="skipping malformed document"`)
}

func TestReaderStrict(t *testing.T) {
	r := jsonl.NewReader(strings.NewReader(input))
	r.SetStrict(true)

	for i := 0; i < 2; i++ {
		_, err := r.Next()
		require.NoError(t, err)
	}
	_, err := r.Next()
	require.Error(t, err)
	assert.True(t, errors.Is(err, jsonval.UnclosedObject), "error: %v", err)
	assert.Contains(t, err.Error(), "line 4: ")
	assert.Equal(t, 4, r.Line())
	assert.Equal(t, 0, r.Skipped())
}

func TestReaderNilLogger(t *testing.T) {
	r := jsonl.NewReader(strings.NewReader("bogus\n{}\n"))
	r.SetLogger(nil)
	got := readAll(t, r)
	require.Len(t, got, 1)
	assert.Equal(t, ast.ObjectKind, got[0].Kind())
	assert.Equal(t, 1, r.Skipped())
}

func TestReaderEncoding(t *testing.T) {
	r := jsonl.NewReader(strings.NewReader("{\"caf\xe9\": \"cr\xe8me\"}\n"))
	r.SetEncoding(charmap.ISO8859_1)
	got := readAll(t, r)
	require.Len(t, got, 1)
	obj, ok := got[0].(ast.Object)
	require.True(t, ok, "got %T, want object", got[0])
	m := obj.Find("café")
	require.NotNil(t, m)
	assert.Equal(t, ast.Value(ast.String("crème")), m.Value)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestReaderInputError(t *testing.T) {
	r := jsonl.NewReader(errReader{})
	_, err := r.Next()
	require.Error(t, err)
	assert.NotEqual(t, io.EOF, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := jsonl.NewWriter(&buf, ast.OmitNulls)
	docs := []ast.Value{
		ast.ToValue(map[string]any{"id": 1, "gone": nil}),
		ast.Array{ast.Null, ast.String("a/b")},
		ast.Float(2),
	}
	for _, d := range docs {
		require.NoError(t, w.Write(d))
	}
	assert.Equal(t, "{\"id\":1}\n[null,\"a/b\"]\n2.0\n", buf.String())

	// What the writer produces, the reader consumes.
	r := jsonl.NewReader(&buf)
	r.SetStrict(true)
	got := readAll(t, r)
	require.Len(t, got, 3)
	assert.Equal(t, `{"id":1}`, got[0].JSON())
	assert.Equal(t, docs[1], got[1])
	assert.Equal(t, docs[2], got[2])
}
