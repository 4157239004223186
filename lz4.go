package zipread

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// Lz4 reads LZ4 frames.
type Lz4 struct{}

func (Lz4) Name() string { return ".lz4" }

func (lz Lz4) Match(filename string, stream io.Reader) (MatchResult, error) {
	return matchFormat(lz.Name(), lz4Header, filename, stream)
}

func (Lz4) OpenReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

var lz4Header = []byte{0x04, 0x22, 0x4d, 0x18}

var _ ContentFormat = Lz4{}
