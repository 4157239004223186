package zipread

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// Method is a ZIP compression method code as recorded in an entry's
// headers. Any value may appear; only some can be decoded.
type Method uint16

// Compression methods.
// See https://pkware.cachefly.net/webdocs/casestudies/APPNOTE.TXT section 4.4.5.
const (
	Store   Method = 0
	Deflate Method = 8
	BZIP2   Method = 12
	LZMA    Method = 14
	ZSTD    Method = 93
	XZ      Method = 95
)

// MethodKind classifies a Method for decoding.
type MethodKind int

const (
	KindStored MethodKind = iota
	KindDeflated
	KindUnsupported
)

// Kind reports whether m is stored, deflated, or something else.
// Codes other than 0 and 8 are KindUnsupported even if a Reader has
// been configured with a decompressor for them.
func (m Method) Kind() MethodKind {
	switch m {
	case Store:
		return KindStored
	case Deflate:
		return KindDeflated
	default:
		return KindUnsupported
	}
}

func (m Method) String() string {
	switch m {
	case Store:
		return "store"
	case Deflate:
		return "deflate"
	case BZIP2:
		return "bzip2"
	case LZMA:
		return "lzma"
	case ZSTD:
		return "zstd"
	case XZ:
		return "xz"
	default:
		return fmt.Sprintf("method(%d)", uint16(m))
	}
}

// Decompressor can decompress data by wrapping a reader.
type Decompressor interface {
	// OpenReader wraps r with a new reader that decompresses what is read.
	// The reader must be closed when reading is finished.
	OpenReader(r io.Reader) (io.ReadCloser, error)
}

// ExtendedMethods returns decompressors for the ZIP methods beyond
// store and deflate that this package can decode. Assign the result
// to Reader.Decompressors to enable them.
func ExtendedMethods() map[Method]Decompressor {
	return map[Method]Decompressor{
		BZIP2: Bz2{},
		ZSTD:  Zstd{},
		XZ:    Xz{},
	}
}

// openPayload returns a reader of the decompressed contents of view.
// Deflated payloads are raw deflate streams with no zlib or gzip
// wrapper.
func openPayload(view []byte, m Method, extra map[Method]Decompressor) (io.ReadCloser, error) {
	switch m.Kind() {
	case KindStored:
		return io.NopCloser(bytes.NewReader(view)), nil
	case KindDeflated:
		return flate.NewReader(bytes.NewReader(view)), nil
	}
	if d, ok := extra[m]; ok {
		return d.OpenReader(bytes.NewReader(view))
	}
	return nil, &UnsupportedCompressionError{Method: m}
}

// decode returns the decompressed contents of view. Nothing is cached;
// each call does the full work again. sizeHint is the expected length
// of the output and only used to size the buffer.
func decode(view []byte, m Method, extra map[Method]Decompressor, sizeHint int64) ([]byte, error) {
	if m.Kind() == KindStored {
		// callers must not be able to write into the archive buffer
		return bytes.Clone(view), nil
	}
	rc, err := openPayload(view, m, extra)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	const maxPrealloc = 64 << 20
	buf := new(bytes.Buffer)
	if sizeHint > 0 {
		buf.Grow(int(min(sizeHint, maxPrealloc)))
	}
	if _, err := io.Copy(buf, rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
