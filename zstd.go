package zipread

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Zstd reads Zstandard frames, and backs ZIP method 93.
type Zstd struct {
	DecoderOptions []zstd.DOption
}

func (Zstd) Name() string { return ".zst" }

func (zs Zstd) Match(filename string, stream io.Reader) (MatchResult, error) {
	return matchFormat(zs.Name(), zstdHeader, filename, stream)
}

func (zs Zstd) OpenReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r, zs.DecoderOptions...)
	if err != nil {
		return nil, err
	}
	return zstdReader{zr}, nil
}

// zstdReader adapts a decoder, whose Close returns nothing, to io.ReadCloser.
type zstdReader struct {
	*zstd.Decoder
}

func (r zstdReader) Close() error {
	r.Decoder.Close()
	return nil
}

var zstdHeader = []byte{0x28, 0xb5, 0x2f, 0xfd}

var _ ContentFormat = Zstd{}
