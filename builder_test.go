package zipread

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"
)

// fixture is one entry to be written by zipBuilder.
type fixture struct {
	name    string
	method  Method
	flags   uint16
	payload []byte // bytes stored in the archive
	size    uint32 // uncompressed size
	crc     uint32
	extra   []byte // local header extra field only

	offset uint32 // set by zipBuilder
}

// stored returns a fixture holding data uncompressed.
func stored(name string, data []byte) fixture {
	return fixture{
		name:    name,
		method:  Store,
		payload: data,
		size:    uint32(len(data)),
		crc:     crc32.ChecksumIEEE(data),
	}
}

// deflated returns a fixture holding data as raw deflate.
func deflated(t *testing.T, name string, data []byte) fixture {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return fixture{
		name:    name,
		method:  Deflate,
		payload: buf.Bytes(),
		size:    uint32(len(data)),
		crc:     crc32.ChecksumIEEE(data),
	}
}

// zipBuilder assembles archives byte by byte so tests can produce
// exactly the malformed layouts they need.
type zipBuilder struct {
	buf     bytes.Buffer
	entries []fixture
}

func (b *zipBuilder) add(f fixture) *zipBuilder {
	f.offset = uint32(b.buf.Len())
	le := binary.LittleEndian
	binary.Write(&b.buf, le, uint32(0x04034b50))
	binary.Write(&b.buf, le, uint16(20)) // version needed
	binary.Write(&b.buf, le, f.flags)
	binary.Write(&b.buf, le, uint16(f.method))
	binary.Write(&b.buf, le, uint32(0)) // mod time and date
	binary.Write(&b.buf, le, f.crc)
	binary.Write(&b.buf, le, uint32(len(f.payload)))
	binary.Write(&b.buf, le, f.size)
	binary.Write(&b.buf, le, uint16(len(f.name)))
	binary.Write(&b.buf, le, uint16(len(f.extra)))
	b.buf.WriteString(f.name)
	b.buf.Write(f.extra)
	b.buf.Write(f.payload)
	b.entries = append(b.entries, f)
	return b
}

// localOnly returns the local headers and payloads with no central
// directory or end record.
func (b *zipBuilder) localOnly() []byte {
	return bytes.Clone(b.buf.Bytes())
}

// directory returns the central directory for everything added so far,
// as it would be written at offset.
func (b *zipBuilder) directory() []byte {
	var cd bytes.Buffer
	le := binary.LittleEndian
	for _, f := range b.entries {
		binary.Write(&cd, le, uint32(0x02014b50))
		binary.Write(&cd, le, uint16(20)) // version made by
		binary.Write(&cd, le, uint16(20)) // version needed
		binary.Write(&cd, le, f.flags)
		binary.Write(&cd, le, uint16(f.method))
		binary.Write(&cd, le, uint32(0)) // mod time and date
		binary.Write(&cd, le, f.crc)
		binary.Write(&cd, le, uint32(len(f.payload)))
		binary.Write(&cd, le, f.size)
		binary.Write(&cd, le, uint16(len(f.name)))
		binary.Write(&cd, le, uint16(0)) // extra length
		binary.Write(&cd, le, uint16(0)) // comment length
		binary.Write(&cd, le, uint16(0)) // disk number start
		binary.Write(&cd, le, uint16(0)) // internal attributes
		binary.Write(&cd, le, uint32(0)) // external attributes
		binary.Write(&cd, le, f.offset)
		cd.WriteString(f.name)
	}
	return cd.Bytes()
}

// finish returns a complete archive with a central directory and an
// end record carrying comment.
func (b *zipBuilder) finish(comment string) []byte {
	out := b.localOnly()
	cd := b.directory()
	cdOffset := uint32(len(out))
	out = append(out, cd...)
	return append(out, makeEOCD(uint16(len(b.entries)), uint32(len(cd)), cdOffset, comment)...)
}

func makeEOCD(entries uint16, cdSize, cdOffset uint32, comment string) []byte {
	buf := new(bytes.Buffer)
	le := binary.LittleEndian
	binary.Write(buf, le, uint32(0x06054b50))
	binary.Write(buf, le, uint16(0))            // disk number
	binary.Write(buf, le, uint16(0))            // disk with directory
	binary.Write(buf, le, entries)              // entries on disk
	binary.Write(buf, le, entries)              // total entries
	binary.Write(buf, le, cdSize)               // size of directory
	binary.Write(buf, le, cdOffset)             // offset of directory
	binary.Write(buf, le, uint16(len(comment))) // comment length
	buf.WriteString(comment)
	return buf.Bytes()
}

// names returns the names of entries in order.
func names(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}

// sampleArchive is the three-entry archive used by many tests.
func sampleArchive(t *testing.T) *zipBuilder {
	t.Helper()
	b := new(zipBuilder)
	b.add(stored("dir/", nil))
	b.add(stored("dir/a.txt", []byte("hello")))
	b.add(deflated(t, "dir/b.txt", []byte("world world world")))
	return b
}

func mustParse(t *testing.T, buf []byte) *Archive {
	t.Helper()
	a, err := Parse(buf)
	require.NoError(t, err)
	return a
}
