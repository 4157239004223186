package zipread

import (
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli reads brotli streams. They carry no
// magic number, so they are only ever matched by name.
type Brotli struct{}

func (Brotli) Name() string { return ".br" }

func (br Brotli) Match(filename string, _ io.Reader) (MatchResult, error) {
	return MatchResult{ByName: hasExt(filename, br.Name())}, nil
}

func (Brotli) OpenReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}

var _ ContentFormat = Brotli{}
