package zipread

import (
	"io"

	"github.com/klauspost/compress/s2"
)

// Sz reads framed Snappy streams and their S2 extension.
type Sz struct{}

func (Sz) Name() string { return ".sz" }

func (sz Sz) Match(filename string, stream io.Reader) (MatchResult, error) {
	mr, err := matchFormat(sz.Name(), snappyHeader, filename, stream)
	if hasExt(filename, ".s2") {
		mr.ByName = true
	}
	return mr, err
}

func (Sz) OpenReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

var snappyHeader = []byte{0xff, 0x06, 0x00, 0x00, 0x73, 0x4e, 0x61, 0x50, 0x70, 0x59}

var _ ContentFormat = Sz{}
