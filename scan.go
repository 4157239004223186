package zipread

import "bytes"

// scan recovers entries by searching forward for local file headers.
// After each header the search resumes past the end of its payload,
// so bytes inside a payload are never taken for a header.
//
// The sizes in a local header are trusted. A header that says its
// sizes follow the payload in a data descriptor produces no entry.
// The search continues past its descriptor when one can be found,
// and right after the header otherwise.
func (p *parser) scan() []*Entry {
	buf := p.archive.buf
	size := int64(len(buf))

	var entries []*Entry
	for pos := int64(0); pos <= size-int64(len(localHeaderSig)); {
		i := bytes.Index(buf[pos:], localHeaderSig)
		if i < 0 {
			break
		}
		off := pos + int64(i)

		lh, ok := readLocalHeader(buf, off)
		if !ok {
			p.skip(off, "", ErrEntryOutOfBounds)
			break
		}
		nameStart := off + localHeaderLen
		nameEnd := nameStart + int64(lh.nameLen)
		if nameEnd > size {
			p.skip(off, "", ErrEntryOutOfBounds)
			break
		}
		name := p.names.decode(buf[nameStart:nameEnd], lh.flags)

		start := lh.dataOffset(off)
		if lh.flags&flagDataDescriptor != 0 {
			p.skip(off, name, ErrDataDescriptor)
			pos, _ = skipDescriptor(buf, start)
			continue
		}

		end := start + int64(lh.compressedSize)
		if end > size {
			p.skip(off, name, ErrEntryOutOfBounds)
			break
		}

		entries = append(entries, &Entry{
			archive:          p.archive,
			name:             name,
			method:           lh.method,
			flags:            lh.flags,
			crc32:            lh.crc32,
			compressedSize:   int64(lh.compressedSize),
			uncompressedSize: int64(lh.uncompressedSize),
			headerOffset:     off,
			offset:           start,
		})
		pos = end
	}
	return entries
}
