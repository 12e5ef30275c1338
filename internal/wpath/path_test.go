package wpath

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justrnr500/wildcd/internal/wildcard"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		root     string
		selector []string
	}{
		{name: "absolute with wildcard", path: "/a/b/*/c", root: "/a/b", selector: []string{"*", "c"}},
		{name: "no wildcard", path: "a/b", root: "a/b", selector: nil},
		{name: "relative wildcard first", path: "*/x", root: ".", selector: []string{"*", "x"}},
		{name: "filesystem root", path: "/", root: "/", selector: nil},
		{name: "wildcard below filesystem root", path: "/*", root: "/", selector: []string{"*"}},
		{name: "duplicate separators", path: "a//b/?", root: "a/b", selector: []string{"?"}},
		{name: "trailing separator", path: "/root/#a?/", root: "/root", selector: []string{"#a?"}},
		{name: "digit token", path: "/v/release#/bin", root: "/v", selector: []string{"release#", "bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, selector := Split(filepath.FromSlash(tt.path))
			assert.Equal(t, filepath.FromSlash(tt.root), root)
			assert.Equal(t, tt.selector, selector)
		})
	}
}

func TestSplitPreservesLength(t *testing.T) {
	for _, p := range []string{"/a/b/c", "/a/*/c", "/*/b/c", "x/y/z?"} {
		root, selector := Split(p)
		got := len(Segments(root)) + len(selector)
		if want := len(Segments(p)); got != want {
			t.Errorf("Split(%q): root+selector has %d segments, want %d", p, got, want)
		}
	}
}

func TestCompileInvalidRoot(t *testing.T) {
	fsys := newFixture(t)

	_, err := Compile("/root/missing/*", WithFS(fsys))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRoot), "want ErrInvalidRoot, got %v", err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "want wrapped ErrNotExist, got %v", err)

	_, err = Compile("/root/missing", WithFS(fsys))
	assert.ErrorIs(t, err, ErrInvalidRoot)
}

func TestCompileInvalidPattern(t *testing.T) {
	fsys := newFixture(t)

	_, err := Compile("/root/a|*", WithFS(fsys))
	assert.ErrorIs(t, err, wildcard.ErrInvalidPattern)

	_, err = Compile("/root/*/[x]", WithFS(fsys))
	assert.ErrorIs(t, err, wildcard.ErrInvalidPattern)
}

func TestCompileInvalidExclude(t *testing.T) {
	fsys := newFixture(t)

	_, err := Compile("/root/*", WithFS(fsys), WithExclude("[unterminated"))
	assert.Error(t, err)
}

func TestCompileResolvesRelative(t *testing.T) {
	fsys := newFixture(t)

	w, err := Compile("aaa/../*", WithFS(fsys), WithBase("/root"))
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/root"), w.Root())
	assert.Equal(t, []string{"*"}, w.Selector())
	assert.Equal(t, 1, w.Depth())
	assert.Equal(t, filepath.FromSlash("/root/*"), w.String())
}

func TestWildcardPathEqual(t *testing.T) {
	fsys := newFixture(t)

	a, err := Compile("/root/*/file#", WithFS(fsys))
	require.NoError(t, err)
	b, err := Compile("/root/*/file#", WithFS(fsys))
	require.NoError(t, err)
	c, err := Compile("/root/*/file?", WithFS(fsys))
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a.Pattern().Equal(b.Pattern()))
}

func TestAferoReadable(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, mem.MkdirAll("/locked", 0o755))
	require.NoError(t, mem.Chmod("/locked", 0o000))
	fsys := NewAferoFS(mem)

	assert.False(t, fsys.Readable("/locked"))
	assert.False(t, fsys.Readable("/missing"))

	_, err := fsys.ReadDirNames("/locked")
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestSegments(t *testing.T) {
	got := Segments(filepath.FromSlash("/a//b/c/"))
	if !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("Segments = %v", got)
	}
}
