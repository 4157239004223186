package zipread

import (
	"context"
	"errors"
	"fmt"
	"hash/crc32"

	"golang.org/x/sync/errgroup"
)

// ErrChecksum is reported by Verify when decoded contents do not
// match the CRC-32 recorded for the entry.
var ErrChecksum = errors.New("checksum mismatch")

// ErrSizeMismatch is reported by Verify when decoded contents are
// not as long as the headers say.
var ErrSizeMismatch = errors.New("uncompressed size mismatch")

// VerifyResult is the outcome of checking one entry.
type VerifyResult struct {
	Entry *Entry

	// Err is nil if the entry decoded to the recorded size and
	// checksum. Otherwise it wraps ErrChecksum, ErrSizeMismatch, or
	// the error returned by Entry.Data.
	Err error
}

// Verify decodes every file entry and checks its length and CRC-32
// against the headers. Up to workers entries are decoded at once; a
// value below 1 means one at a time. Directories are not included.
// Results are in entry order. The returned error is only ever the
// context's.
func (a *Archive) Verify(ctx context.Context, workers int) ([]VerifyResult, error) {
	var files []*Entry
	for _, e := range a.entries {
		if !e.IsDir() {
			files = append(files, e)
		}
	}
	results := make([]VerifyResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, e := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = VerifyResult{Entry: e, Err: verifyEntry(e)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func verifyEntry(e *Entry) error {
	data, err := e.Data()
	if err != nil {
		return err
	}
	if int64(len(data)) != e.uncompressedSize {
		return fmt.Errorf("%s: %w: got %d bytes, want %d", e.name, ErrSizeMismatch, len(data), e.uncompressedSize)
	}
	if sum := crc32.ChecksumIEEE(data); sum != e.crc32 {
		return fmt.Errorf("%s: %w: got %08x, want %08x", e.name, ErrChecksum, sum, e.crc32)
	}
	return nil
}
