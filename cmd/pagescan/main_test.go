package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joeandaverde/pagescan/internal/testfixture"
)

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestRunDBInfoAndTablesAndSelect(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "fixture.db")
	err := testfixture.Build(path,
		`CREATE TABLE apples (id integer primary key, name text, color text)`,
		`INSERT INTO apples (name, color) VALUES ('Gala', 'Red')`,
		`INSERT INTO apples (name, color) VALUES ('Fuji', 'Yellow')`,
	)
	r.NoError(err)

	out := captureStdout(t, func() {
		code := run([]string{path, ".tables"})
		r.Equal(0, code)
	})
	r.Equal("apples\n", out)

	out = captureStdout(t, func() {
		code := run([]string{path, "SELECT name, color FROM apples"})
		r.Equal(0, code)
	})
	r.Equal("Gala|Red\nFuji|Yellow\n", out)

	out = captureStdout(t, func() {
		code := run([]string{path, "SELECT COUNT(*) FROM apples"})
		r.Equal(0, code)
	})
	r.Equal("2\n", out)
}

func TestRunNoSuchTableFails(t *testing.T) {
	r := require.New(t)

	path := filepath.Join(t.TempDir(), "fixture.db")
	r.NoError(testfixture.Build(path, `CREATE TABLE apples (name text)`))

	code := run([]string{path, "SELECT name FROM pears"})
	r.Equal(1, code)
}
