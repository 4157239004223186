package zipread

import (
	"bytes"
	"context"
	"testing"

	"github.com/STARRY-S/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writtenArchive builds an archive with a general purpose ZIP writer
// rather than zipBuilder, so the layout is what real tools produce.
func writtenArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	for _, f := range []struct {
		name   string
		method uint16
		data   string
	}{
		{name: "docs/", method: zip.Store},
		{name: "docs/stored.txt", method: zip.Store, data: "kept as is"},
		{name: "docs/deflated.txt", method: zip.Deflate, data: "squeezed squeezed squeezed squeezed"},
	} {
		fw, err := w.CreateHeader(&zip.FileHeader{Name: f.name, Method: f.method})
		require.NoError(t, err)
		_, err = fw.Write([]byte(f.data))
		require.NoError(t, err)
	}
	require.NoError(t, w.SetComment("written by a zip writer"))
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestWrittenArchive(t *testing.T) {
	a := mustParse(t, writtenArchive(t))

	assert.Equal(t, ModeDirectory, a.Mode())
	assert.Equal(t, "written by a zip writer", a.Comment())
	assert.Empty(t, a.Skipped())
	require.Equal(t, []string{"docs/", "docs/stored.txt", "docs/deflated.txt"}, names(a.Entries()))

	e, ok := a.Lookup("docs/deflated.txt")
	require.True(t, ok)
	assert.Equal(t, Deflate, e.Method())
	assert.NotZero(t, e.Flags()&flagDataDescriptor, "sizes follow the payload")
	data, err := e.Data()
	require.NoError(t, err)
	assert.Equal(t, "squeezed squeezed squeezed squeezed", string(data))

	results, err := a.Verify(context.Background(), 2)
	require.NoError(t, err)
	for _, r := range results {
		assert.NoError(t, r.Err, r.Entry.Name())
	}
}

func TestWrittenArchiveWithoutDirectory(t *testing.T) {
	buf := writtenArchive(t)
	cd := bytes.Index(buf, directorySig)
	require.Positive(t, cd)

	a := mustParse(t, buf[:cd])
	assert.Equal(t, ModeScan, a.Mode())

	// every header is accounted for, either as an entry or as a skip
	seen := names(a.Entries())
	var skipped []string
	for _, s := range a.Skipped() {
		assert.ErrorIs(t, s.Err, ErrDataDescriptor, s.Name)
		skipped = append(skipped, s.Name)
	}
	assert.ElementsMatch(t, []string{"docs/", "docs/stored.txt", "docs/deflated.txt"}, append(seen, skipped...))
	assert.Contains(t, skipped, "docs/deflated.txt", "the last header is still reached")
}
