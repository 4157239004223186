package zipread

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
)

// Gz reads gzip streams.
type Gz struct {
	// DisableMultistream stops reading after the first gzip member
	// instead of concatenating all of them.
	DisableMultistream bool

	// Multithreaded decodes with pgzip, which reads ahead on other
	// goroutines. It only pays off for streams of a megabyte or more.
	Multithreaded bool
}

func (Gz) Name() string { return ".gz" }

func (gz Gz) Match(filename string, stream io.Reader) (MatchResult, error) {
	return matchFormat(gz.Name(), gzHeader, filename, stream)
}

func (gz Gz) OpenReader(r io.Reader) (io.ReadCloser, error) {
	if gz.Multithreaded {
		gzR, err := pgzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		if gz.DisableMultistream {
			gzR.Multistream(false)
		}
		return gzR, nil
	}

	gzR, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	if gz.DisableMultistream {
		gzR.Multistream(false)
	}
	return gzR, nil
}

var gzHeader = []byte{0x1f, 0x8b}

var _ ContentFormat = Gz{}
