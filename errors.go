package zipread

import (
	"errors"
	"fmt"
)

// Structural problems that cause a header to be skipped or a scan to
// end. They never fail Open; they are recorded in Archive.Skipped.
var (
	// ErrLocalHeaderMismatch means a directory record points at
	// bytes that do not begin with a local file header signature.
	ErrLocalHeaderMismatch = errors.New("local header signature mismatch")

	// ErrEntryOutOfBounds means a header describes a name or payload
	// that extends past the end of the archive.
	ErrEntryOutOfBounds = errors.New("entry extends past end of archive")

	// ErrDataDescriptor means a local header defers its sizes to a
	// trailing data descriptor. A header scan skips such entries.
	ErrDataDescriptor = errors.New("sizes stored in data descriptor are not supported when scanning")

	// ErrDirectoryTruncated means the central directory walk met bytes
	// that are not a directory record before reaching its announced end.
	ErrDirectoryTruncated = errors.New("central directory truncated")
)

// OpenError is returned when the archive file cannot be read.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("%s: reading archive: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// UnsupportedCompressionError is returned when the data of an
// entry is requested and its compression method has no decoder.
type UnsupportedCompressionError struct {
	Method Method
}

func (e *UnsupportedCompressionError) Error() string {
	return fmt.Sprintf("unsupported compression method: %d", uint16(e.Method))
}

// IsUnsupportedCompressionError returns true if err is, or wraps,
// an UnsupportedCompressionError.
func IsUnsupportedCompressionError(err error) bool {
	var uce *UnsupportedCompressionError
	return errors.As(err, &uce)
}

// DecompressionError is returned when an entry's payload cannot be
// decoded with its declared method.
type DecompressionError struct {
	Name   string
	Method Method
	Err    error
}

func (e *DecompressionError) Error() string {
	return fmt.Sprintf("%s: decompressing with %s: %v", e.Name, e.Method, e.Err)
}

func (e *DecompressionError) Unwrap() error { return e.Err }
