package zipread

import (
	"io"

	"github.com/dsnet/compress/bzip2"
)

// Bz2 reads bzip2 streams, and backs ZIP method 12.
type Bz2 struct{}

func (Bz2) Name() string { return ".bz2" }

func (bz Bz2) Match(filename string, stream io.Reader) (MatchResult, error) {
	return matchFormat(bz.Name(), bzip2Header, filename, stream)
}

func (Bz2) OpenReader(r io.Reader) (io.ReadCloser, error) {
	bzR, err := bzip2.NewReader(r, nil)
	if err != nil {
		return nil, err
	}
	return bzR, nil
}

var bzip2Header = []byte("BZh")

var _ ContentFormat = Bz2{}
