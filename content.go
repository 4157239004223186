package zipread

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ContentFormat is a single-file compression format that an entry's
// contents may be stored in, independently of the ZIP method used to
// store the entry itself.
type ContentFormat interface {
	Decompressor

	// Name returns the format's usual file extension, with the dot.
	Name() string

	// Match reports whether the filename or the start of stream
	// identify the format. Either may be empty.
	Match(filename string, stream io.Reader) (MatchResult, error)
}

// MatchResult records whether a format was matched by name, by
// stream, or both. A stream match is the stronger of the two.
type MatchResult struct {
	ByName, ByStream bool
}

// Matched returns true if a match was made by either name or stream.
func (mr MatchResult) Matched() bool { return mr.ByName || mr.ByStream }

// ErrNoMatch is returned if no content format matched.
var ErrNoMatch = fmt.Errorf("no formats matched")

// contentFormats is checked in order; earlier formats win ties.
var contentFormats = []ContentFormat{
	Gz{},
	Bz2{},
	Xz{},
	Zstd{},
	Lz4{},
	Sz{},
	Lzip{},
	Brotli{},
}

// IdentifyContent returns the content format of data, trying magic
// numbers first and falling back to the extension of filename.
func IdentifyContent(filename string, data []byte) (ContentFormat, error) {
	base := path.Base(filename)
	var byName ContentFormat
	for _, f := range contentFormats {
		mr, err := f.Match(base, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("matching %s: %w", f.Name(), err)
		}
		if mr.ByStream {
			return f, nil
		}
		if mr.ByName && byName == nil {
			byName = f
		}
	}
	if byName != nil {
		return byName, nil
	}
	return nil, ErrNoMatch
}

// openContent returns a reader of data with any recognized content
// compression removed. Unrecognized data is returned as-is.
func openContent(filename string, data []byte) (io.ReadCloser, error) {
	f, err := IdentifyContent(filename, data)
	if errors.Is(err, ErrNoMatch) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	if err != nil {
		return nil, err
	}
	return f.OpenReader(bytes.NewReader(data))
}

// matchFormat matches by file extension and by the magic number at
// the start of stream.
func matchFormat(ext string, header []byte, filename string, stream io.Reader) (MatchResult, error) {
	var mr MatchResult
	mr.ByName = hasExt(filename, ext)

	head, err := peek(stream, len(header))
	if err != nil {
		return mr, err
	}
	mr.ByStream = bytes.Equal(head, header)
	return mr, nil
}

func hasExt(filename, ext string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ext)
}

// peek returns up to n leading bytes of stream. Running out of
// input early is not an error; the result is just shorter.
func peek(stream io.Reader, n int) ([]byte, error) {
	if stream == nil {
		return nil, nil
	}
	head, err := io.ReadAll(io.LimitReader(stream, int64(n)))
	if err != nil {
		return nil, err
	}
	return head, nil
}
