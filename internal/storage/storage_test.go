package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) []rune {
	t.Helper()
	var got []rune
	require.NoError(t, LoadFrom(strings.NewReader(input), func(r rune) {
		got = append(got, r)
	}))
	return got
}

func TestReaderCollapsesCarriageReturns(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf", "A\r\nB", "A\nB"},
		{"lf untouched", "A\nB", "A\nB"},
		{"lone cr takes next char", "A\rB", "AB"},
		{"trailing cr", "A\r", "A"},
		{"double cr keeps the second", "A\r\r\nB", "A\r\nB"},
		{"utf8", "é\r\nü", "é\nü"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(collect(t, tt.input)))
		})
	}
}

func TestCRLFYieldsThreeCharacters(t *testing.T) {
	assert.Equal(t, []rune{'A', '\n', 'B'}, collect(t, "A\r\nB"))
}

func TestWriteTo(t *testing.T) {
	src := []rune("line1\nline2")
	i := 0
	next := func() (rune, bool) {
		if i >= len(src) {
			return 0, false
		}
		i++
		return src[i-1], true
	}

	var out bytes.Buffer
	require.NoError(t, WriteTo(&out, next))
	assert.Equal(t, "line1\nline2", out.String())
}

func TestLoadCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	var got []rune
	require.NoError(t, Load(path, func(r rune) { got = append(got, r) }))
	assert.Empty(t, got)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadRejectsDirectory(t *testing.T) {
	err := Load(t.TempDir(), func(rune) {})
	assert.ErrorIs(t, err, ErrIsDirectory)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	src := []rune("héllo\r\nworld")
	i := 0
	require.NoError(t, Save(path, func() (rune, bool) {
		if i >= len(src) {
			return 0, false
		}
		i++
		return src[i-1], true
	}))

	var got []rune
	require.NoError(t, Load(path, func(r rune) { got = append(got, r) }))
	assert.Equal(t, "héllo\nworld", string(got))
}

func runes(s string) func() (rune, bool) {
	src := []rune(s)
	i := 0
	return func() (rune, bool) {
		if i >= len(src) {
			return 0, false
		}
		i++
		return src[i-1], true
	}
}

func TestSaveReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer old text"), 0600))

	require.NoError(t, Save(path, runes("new")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "the file keeps its mode")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestSaveOverDirectoryFails(t *testing.T) {
	parent := t.TempDir()
	target := filepath.Join(parent, "sub")
	require.NoError(t, os.Mkdir(target, 0755))

	err := Save(target, runes("text"))
	assert.ErrorIs(t, err, ErrIsDirectory)

	entries, err := os.ReadDir(parent)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaveIntoMissingDirectoryKeepsNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "doc.txt")
	assert.Error(t, Save(path, runes("text")))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
