package zipread

import (
	"errors"
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fsArchive(t *testing.T) *Archive {
	t.Helper()
	b := sampleArchive(t)
	b.add(stored("other/deep/c.txt", []byte("nested")))
	b.add(stored("../escape.txt", []byte("not reachable")))
	return mustParse(t, b.finish(""))
}

func TestFS(t *testing.T) {
	fsys := fsArchive(t).FS()
	require.NoError(t, fstest.TestFS(fsys, "dir/a.txt", "dir/b.txt", "other/deep/c.txt"))
}

func TestFSReadDir(t *testing.T) {
	fsys := fsArchive(t).FS()

	for _, tc := range []struct {
		dir  string
		want []string
	}{
		{dir: ".", want: []string{"dir", "other"}},
		{dir: "dir", want: []string{"a.txt", "b.txt"}},
		{dir: "other", want: []string{"deep"}},
		{dir: "other/deep", want: []string{"c.txt"}},
	} {
		entries, err := fs.ReadDir(fsys, tc.dir)
		require.NoError(t, err, tc.dir)
		var got []string
		for _, de := range entries {
			got = append(got, de.Name())
		}
		assert.Equal(t, tc.want, got, tc.dir)
	}

	_, err := fs.ReadDir(fsys, "dir/a.txt")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestFSStat(t *testing.T) {
	fsys := fsArchive(t).FS()

	info, err := fs.Stat(fsys, "dir/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "b.txt", info.Name())
	assert.Equal(t, int64(len("world world world")), info.Size())
	assert.False(t, info.IsDir())
	e, ok := info.Sys().(*Entry)
	require.True(t, ok)
	assert.Equal(t, Deflate, e.Method())

	info, err = fs.Stat(fsys, "other/deep")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, "deep", info.Name())

	_, err = fs.Stat(fsys, "missing")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFSReadFile(t *testing.T) {
	fsys := fsArchive(t).FS()

	data, err := fs.ReadFile(fsys, "dir/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "world world world", string(data))

	_, err = fs.ReadFile(fsys, "dir")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestFSInvalidPaths(t *testing.T) {
	fsys := fsArchive(t).FS()
	for _, name := range []string{"../escape.txt", "/dir/a.txt", "dir/", ""} {
		_, err := fsys.Open(name)
		assert.True(t, errors.Is(err, fs.ErrInvalid) || errors.Is(err, fs.ErrNotExist), "%q: %v", name, err)
	}
}

func TestFSOpenDecodeError(t *testing.T) {
	b := new(zipBuilder)
	f := stored("bad.bin", []byte("data"))
	f.method = 99
	b.add(f)
	fsys := mustParse(t, b.finish("")).FS()

	_, err := fsys.Open("bad.bin")
	var pathErr *fs.PathError
	require.ErrorAs(t, err, &pathErr)
	assert.True(t, IsUnsupportedCompressionError(err))
}

func TestFSDirFileReadDir(t *testing.T) {
	fsys := fsArchive(t).FS()
	f, err := fsys.Open("dir")
	require.NoError(t, err)
	defer f.Close()

	dir, ok := f.(fs.ReadDirFile)
	require.True(t, ok)

	first, err := dir.ReadDir(1)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "a.txt", first[0].Name())

	rest, err := dir.ReadDir(5)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "b.txt", rest[0].Name())

	_, err = dir.ReadDir(1)
	assert.Equal(t, io.EOF, err)
}

func TestFSWalkDir(t *testing.T) {
	fsys := fsArchive(t).FS()

	var walked []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		walked = append(walked, p)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		".",
		"dir", "dir/a.txt", "dir/b.txt",
		"other", "other/deep", "other/deep/c.txt",
	}, walked)
}

func TestFSFirstEntryWins(t *testing.T) {
	b := new(zipBuilder)
	b.add(stored("implied/child.txt", []byte("child")))
	b.add(stored("implied/", nil))
	b.add(stored("dup.txt", []byte("first")))
	b.add(stored("dup.txt", []byte("second")))
	fsys := mustParse(t, b.finish("")).FS()

	// the real directory entry replaces the synthesized one
	info, err := fs.Stat(fsys, "implied")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	_, isEntry := info.Sys().(*Entry)
	assert.True(t, isEntry)

	data, err := fs.ReadFile(fsys, "dup.txt")
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	entries, err := fs.ReadDir(fsys, ".")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "dup.txt", entries[0].Name())
	assert.Equal(t, "implied", entries[1].Name())
}
