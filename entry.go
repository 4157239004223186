package zipread

import (
	"io"
	"io/fs"
	"path"
	"strings"
	"time"
)

// Entry describes one file or directory in an archive. It does not
// hold any bytes of its own; its payload is a window into the
// archive that discovered it.
type Entry struct {
	archive *Archive

	name             string
	method           Method
	flags            uint16
	crc32            uint32
	compressedSize   int64
	uncompressedSize int64
	headerOffset     int64
	offset           int64
}

// Name returns the entry's path within the archive.
func (e *Entry) Name() string { return e.name }

// IsDir reports whether the entry is a directory, which is the
// case exactly when its name ends with a slash.
func (e *Entry) IsDir() bool { return strings.HasSuffix(e.name, "/") }

// Method returns the compression method code from the entry's header.
func (e *Entry) Method() Method { return e.method }

// Flags returns the general purpose bit flags.
func (e *Entry) Flags() uint16 { return e.flags }

// CRC32 returns the checksum of the uncompressed contents as recorded
// in the headers.
func (e *Entry) CRC32() uint32 { return e.crc32 }

// CompressedSize returns the length of the payload in the archive.
func (e *Entry) CompressedSize() int64 { return e.compressedSize }

// UncompressedSize returns the length of the contents as recorded in
// the headers.
func (e *Entry) UncompressedSize() int64 { return e.uncompressedSize }

// HeaderOffset returns the offset of the entry's local file header.
func (e *Entry) HeaderOffset() int64 { return e.headerOffset }

// Offset returns the offset of the entry's payload in the archive.
func (e *Entry) Offset() int64 { return e.offset }

// Raw returns the payload exactly as it is stored in the archive.
// The returned slice shares memory with the archive and must not be
// modified.
func (e *Entry) Raw() []byte {
	return e.archive.view(e.offset, e.compressedSize)
}

// Data decompresses and returns the entry's contents. The work is
// repeated on every call. If the entry's method cannot be decoded,
// the error is an *UnsupportedCompressionError.
func (e *Entry) Data() ([]byte, error) {
	data, err := decode(e.Raw(), e.method, e.archive.decompressors, e.uncompressedSize)
	if err != nil {
		return nil, e.wrapErr(err)
	}
	return data, nil
}

// Open returns a reader of the entry's decompressed contents.
func (e *Entry) Open() (io.ReadCloser, error) {
	rc, err := openPayload(e.Raw(), e.method, e.archive.decompressors)
	if err != nil {
		return nil, e.wrapErr(err)
	}
	return errWrapReader{rc, e}, nil
}

// OpenContent is like Open, but if the decompressed contents are
// themselves in a recognized single-file compression format (such
// as a .gz file stored in the archive), that layer is removed too.
func (e *Entry) OpenContent() (io.ReadCloser, error) {
	data, err := e.Data()
	if err != nil {
		return nil, err
	}
	return openContent(e.name, data)
}

func (e *Entry) wrapErr(err error) error {
	if err == nil || err == io.EOF || IsUnsupportedCompressionError(err) {
		return err
	}
	return &DecompressionError{Name: e.name, Method: e.method, Err: err}
}

// errWrapReader attaches the entry to errors from the decompressor.
type errWrapReader struct {
	io.ReadCloser
	entry *Entry
}

func (r errWrapReader) Read(p []byte) (int, error) {
	n, err := r.ReadCloser.Read(p)
	return n, r.entry.wrapErr(err)
}

// FileInfo returns an fs.FileInfo for the entry.
func (e *Entry) FileInfo() fs.FileInfo { return entryInfo{e} }

type entryInfo struct{ e *Entry }

func (fi entryInfo) Name() string { return path.Base(strings.TrimSuffix(fi.e.name, "/")) }
func (fi entryInfo) Size() int64  { return fi.e.uncompressedSize }
func (fi entryInfo) IsDir() bool  { return fi.e.IsDir() }
func (fi entryInfo) Sys() any     { return fi.e }

// ModTime is always the zero time; timestamps are not decoded.
func (fi entryInfo) ModTime() time.Time { return time.Time{} }

func (fi entryInfo) Mode() fs.FileMode {
	if fi.e.IsDir() {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
