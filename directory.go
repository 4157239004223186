package zipread

import "log/slog"

// parser builds the entries of a single archive.
type parser struct {
	archive *Archive
	names   nameDecoder
	logger  *slog.Logger
}

// findDirectory locates and decodes the end of central directory
// record. It reports false if there is none, or if the directory it
// points to starts beyond the end of the archive; either way the
// entries must be recovered by scanning.
func (p *parser) findDirectory() (eocdRecord, bool) {
	buf := p.archive.buf
	off, ok := locateEOCD(buf)
	if !ok {
		p.logger.Debug("no end of central directory record; scanning for local headers")
		return eocdRecord{}, false
	}
	eocd := readEOCD(buf, off)
	if eocd.directoryOffset > int64(len(buf)) {
		p.logger.Debug("central directory offset is past end of archive; scanning for local headers",
			slog.Int64("eocd_offset", off),
			slog.Int64("directory_offset", eocd.directoryOffset))
		return eocdRecord{}, false
	}
	p.logger.Debug("found end of central directory record",
		slog.Int64("eocd_offset", off),
		slog.Int64("directory_offset", eocd.directoryOffset),
		slog.Int64("directory_size", eocd.directorySize))
	return eocd, true
}

// walkDirectory produces one entry per central directory record whose
// local header can be found. The walk ends early, keeping what it has,
// at the first position that is not a directory record.
func (p *parser) walkDirectory(eocd eocdRecord) []*Entry {
	buf := p.archive.buf
	size := int64(len(buf))
	end := min(eocd.directoryOffset+eocd.directorySize, size)

	var entries []*Entry
	for off := eocd.directoryOffset; off < end; {
		if off+directoryLen > size || !hasSig(buf[off:], directorySig) {
			p.skip(off, "", ErrDirectoryTruncated)
			break
		}
		rec, ok := readDirectoryRecord(buf, off)
		if !ok {
			p.skip(off, "", ErrEntryOutOfBounds)
			break
		}
		off += rec.size()

		name := p.names.decode(rec.name, rec.flags)

		// the local header carries its own name and extra field
		// lengths, which need not match the directory's copies
		lh, ok := readLocalHeader(buf, rec.localHeaderOffset)
		if !ok {
			p.skip(rec.localHeaderOffset, name, ErrLocalHeaderMismatch)
			continue
		}
		start := lh.dataOffset(rec.localHeaderOffset)
		if start+int64(rec.compressedSize) > size {
			p.skip(rec.localHeaderOffset, name, ErrEntryOutOfBounds)
			continue
		}

		entries = append(entries, &Entry{
			archive:          p.archive,
			name:             name,
			method:           rec.method,
			flags:            rec.flags,
			crc32:            rec.crc32,
			compressedSize:   int64(rec.compressedSize),
			uncompressedSize: int64(rec.uncompressedSize),
			headerOffset:     rec.localHeaderOffset,
			offset:           start,
		})
	}
	return entries
}

// skip records a header that produced no entry.
func (p *parser) skip(off int64, name string, err error) {
	p.archive.skipped = append(p.archive.skipped, Skipped{Offset: off, Name: name, Err: err})
	p.logger.Warn("skipping entry",
		slog.Int64("offset", off),
		slog.String("name", name),
		slog.Any("error", err))
}
