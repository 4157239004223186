package zipread

import (
	"io"

	"github.com/sorairolake/lzip-go"
)

// Lzip reads lzip members.
type Lzip struct{}

func (Lzip) Name() string { return ".lz" }

func (lz Lzip) Match(filename string, stream io.Reader) (MatchResult, error) {
	return matchFormat(lz.Name(), lzipHeader, filename, stream)
}

func (Lzip) OpenReader(r io.Reader) (io.ReadCloser, error) {
	lzr, err := lzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(lzr), nil
}

var lzipHeader = []byte("LZIP")

var _ ContentFormat = Lzip{}
