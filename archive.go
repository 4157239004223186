// Package zipread reads ZIP archives held entirely in memory.
//
// An archive is loaded once, its entries are discovered once, and
// nothing about it changes afterwards. Entry contents are decompressed
// only when asked for, and are never cached: every call to Entry.Data
// decodes the payload again.
//
// Entries are normally discovered by walking the central directory
// that the end of central directory record points to. If that record
// cannot be found (for example because the archive was truncated),
// entries are recovered instead by scanning the file front to back for
// local file headers. Archive.Mode reports which of the two was used.
package zipread

import (
	"fmt"
	"log/slog"
	"maps"
)

// Mode says how an archive's entries were discovered.
type Mode int

const (
	// ModeDirectory means the entries came from the central directory.
	ModeDirectory Mode = iota

	// ModeScan means no usable end of central directory record was
	// found and the entries came from a forward scan for local headers.
	ModeScan
)

func (m Mode) String() string {
	switch m {
	case ModeDirectory:
		return "directory"
	case ModeScan:
		return "scan"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Skipped describes a header that did not produce an entry.
type Skipped struct {
	// Offset of the offending header in the archive.
	Offset int64

	// Name of the entry, if it could be read.
	Name string

	// Err is one of ErrLocalHeaderMismatch, ErrEntryOutOfBounds,
	// ErrDataDescriptor or ErrDirectoryTruncated.
	Err error
}

// Reader holds the options used to open archives. The zero value is
// ready to use: names are read as UTF-8 and only stored and deflated
// entries can be decoded.
type Reader struct {
	// TextEncoding is the IANA name of the charset used for entry
	// names that are not flagged as UTF-8, such as "IBM437" or
	// "Shift_JIS". If empty, names are read as UTF-8.
	TextEncoding string

	// Decompressors for compression methods other than store and
	// deflate. See ExtendedMethods.
	Decompressors map[Method]Decompressor

	// Logger receives debug output about entry discovery and
	// warnings about skipped headers. Nil discards it.
	Logger *slog.Logger
}

// DefaultReader is the Reader used by the package-level Open and Parse.
var DefaultReader = Reader{}

// Open reads the archive at path using DefaultReader.
func Open(path string) (*Archive, error) {
	return DefaultReader.Open(path)
}

// Parse reads the archive in buf using DefaultReader.
func Parse(buf []byte) (*Archive, error) {
	return DefaultReader.Parse(buf)
}

// Open loads the file at path and parses it. The only errors are
// failing to read the file, which is an *OpenError, and an unknown
// TextEncoding. A file that is not a well-formed archive still opens;
// it may just have fewer entries, or none.
func (r Reader) Open(path string) (*Archive, error) {
	names, err := newNameDecoder(r.TextEncoding)
	if err != nil {
		return nil, err
	}
	buf, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return r.parse(buf, names), nil
}

// Parse discovers the entries of the archive in buf. The returned
// Archive keeps buf; it must not be modified afterwards.
func (r Reader) Parse(buf []byte) (*Archive, error) {
	names, err := newNameDecoder(r.TextEncoding)
	if err != nil {
		return nil, err
	}
	return r.parse(buf, names), nil
}

func (r Reader) parse(buf []byte, names nameDecoder) *Archive {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	a := &Archive{
		buf:           buf,
		decompressors: maps.Clone(r.Decompressors),
	}
	p := &parser{archive: a, names: names, logger: logger}

	eocd, found := p.findDirectory()
	if found {
		a.mode = ModeDirectory
		a.comment = names.decode(eocd.comment, 0)
		a.entries = p.walkDirectory(eocd)
	} else {
		a.mode = ModeScan
		a.entries = p.scan()
	}

	a.byName = make(map[string]*Entry, len(a.entries))
	for _, e := range a.entries {
		if _, dup := a.byName[e.name]; !dup {
			a.byName[e.name] = e
		}
	}
	a.fsIndex = buildFSIndex(a.entries)

	logger.Debug("parsed archive",
		slog.String("mode", a.mode.String()),
		slog.Int("entries", len(a.entries)),
		slog.Int("skipped", len(a.skipped)))
	return a
}

// Archive is a parsed ZIP archive. It owns the bytes of the file;
// its entries view into them. An Archive is never modified after it
// is returned, so it is safe for concurrent use.
type Archive struct {
	buf           []byte
	entries       []*Entry
	byName        map[string]*Entry
	mode          Mode
	comment       string
	skipped       []Skipped
	decompressors map[Method]Decompressor
	fsIndex       map[string]*fsNode
}

// Entries returns the entries in the order they were discovered:
// central directory order, or file order when scanning.
func (a *Archive) Entries() []*Entry {
	out := make([]*Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len returns the number of entries.
func (a *Archive) Len() int { return len(a.entries) }

// Size returns the length of the archive in bytes.
func (a *Archive) Size() int64 { return int64(len(a.buf)) }

// Mode returns how the entries were discovered.
func (a *Archive) Mode() Mode { return a.mode }

// Comment returns the archive comment. It is always empty in ModeScan.
func (a *Archive) Comment() string { return a.comment }

// Skipped returns the headers that were discarded while discovering
// entries, in the order they were met.
func (a *Archive) Skipped() []Skipped {
	out := make([]Skipped, len(a.skipped))
	copy(out, a.skipped)
	return out
}

// Lookup returns the first entry with exactly the given name.
func (a *Archive) Lookup(name string) (*Entry, bool) {
	e, ok := a.byName[name]
	return e, ok
}

// view returns the bytes of the archive in [off, off+n).
func (a *Archive) view(off, n int64) []byte {
	return a.buf[off : off+n : off+n]
}
