package zipread

import (
	"io"

	fastxz "github.com/therootcompany/xz"
)

// Xz reads xz streams, and backs ZIP method 95.
type Xz struct{}

func (Xz) Name() string { return ".xz" }

func (x Xz) Match(filename string, stream io.Reader) (MatchResult, error) {
	return matchFormat(x.Name(), xzHeader, filename, stream)
}

func (Xz) OpenReader(r io.Reader) (io.ReadCloser, error) {
	xr, err := fastxz.NewReader(r, 0)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xr), nil
}

var xzHeader = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

var _ ContentFormat = Xz{}
