package zipread

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

// FS returns a read-only file system view of the archive. Directories
// that are implied by entry paths but have no entry of their own are
// synthesized. Entries whose names are not valid fs paths (absolute,
// containing "..", and so on) are not reachable through it. When two
// entries share a path, the first one wins.
//
// The returned value also implements fs.ReadDirFS, fs.ReadFileFS and
// fs.StatFS.
func (a *Archive) FS() fs.FS { return archiveFS{a} }

// fsNode is one path in the file system view.
type fsNode struct {
	name     string
	entry    *Entry // nil for synthesized directories
	children []*fsNode
}

func (n *fsNode) isDir() bool { return n.entry == nil || n.entry.IsDir() }

func (n *fsNode) info() fs.FileInfo {
	if n.entry == nil {
		return implicitDirInfo{n.name}
	}
	return n.entry.FileInfo()
}

// buildFSIndex maps every reachable path to its node, with each
// directory's children sorted by name.
func buildFSIndex(entries []*Entry) map[string]*fsNode {
	index := map[string]*fsNode{".": {name: "."}}

	// node returns the node for p, creating it and any missing
	// parents as synthesized directories.
	var node func(p string) *fsNode
	node = func(p string) *fsNode {
		if n, ok := index[p]; ok {
			return n
		}
		n := &fsNode{name: path.Base(p)}
		index[p] = n
		parent := node(path.Dir(p))
		parent.children = append(parent.children, n)
		return n
	}

	for _, e := range entries {
		p, ok := fsPath(e)
		if !ok {
			continue
		}
		// a real entry replaces a synthesized directory, but the
		// first real entry for a path is kept
		if n := node(p); n.entry == nil {
			n.entry = e
		}
	}

	for _, n := range index {
		slices.SortFunc(n.children, func(x, y *fsNode) int { return strings.Compare(x.name, y.name) })
	}
	return index
}

type archiveFS struct {
	a *Archive
}

// Open opens the named file. Files are decompressed when opened.
func (f archiveFS) Open(name string) (fs.File, error) {
	n, err := f.lookup("open", name)
	if err != nil {
		return nil, err
	}
	if n.isDir() {
		return &dirFile{info: n.info(), entries: dirEntries(n)}, nil
	}
	data, err := n.entry.Data()
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return &entryFile{info: n.info(), Reader: bytes.NewReader(data)}, nil
}

// ReadFile returns the decompressed contents of the named file.
func (f archiveFS) ReadFile(name string) ([]byte, error) {
	n, err := f.lookup("readfile", name)
	if err != nil {
		return nil, err
	}
	if n.isDir() {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	data, err := n.entry.Data()
	if err != nil {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: err}
	}
	return data, nil
}

// Stat returns info about the named file without decompressing it.
func (f archiveFS) Stat(name string) (fs.FileInfo, error) {
	n, err := f.lookup("stat", name)
	if err != nil {
		return nil, err
	}
	return n.info(), nil
}

// ReadDir lists the named directory, sorted by name.
func (f archiveFS) ReadDir(name string) ([]fs.DirEntry, error) {
	n, err := f.lookup("readdir", name)
	if err != nil {
		return nil, err
	}
	if !n.isDir() {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	return dirEntries(n), nil
}

func (f archiveFS) lookup(op, name string) (*fsNode, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrInvalid}
	}
	n, ok := f.a.fsIndex[name]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return n, nil
}

func dirEntries(n *fsNode) []fs.DirEntry {
	out := make([]fs.DirEntry, len(n.children))
	for i, c := range n.children {
		out[i] = fs.FileInfoToDirEntry(c.info())
	}
	return out
}

// fsPath returns the entry's name in fs path form.
func fsPath(e *Entry) (string, bool) {
	p := strings.TrimSuffix(e.name, "/")
	return p, p != "" && p != "." && fs.ValidPath(p)
}

// entryFile is an open regular file whose contents have
// already been decompressed.
type entryFile struct {
	info fs.FileInfo
	*bytes.Reader
}

func (f *entryFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *entryFile) Close() error               { return nil }

// dirFile is an open directory.
type dirFile struct {
	info    fs.FileInfo
	entries []fs.DirEntry
	offset  int
}

func (d *dirFile) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *dirFile) Close() error               { return nil }

func (d *dirFile) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.Name(), Err: fs.ErrInvalid}
}

// ReadDir implements fs.ReadDirFile.
func (d *dirFile) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := d.entries[d.offset:]
	if n <= 0 {
		d.offset = len(d.entries)
		return remaining, nil
	}
	if len(remaining) == 0 {
		return nil, io.EOF
	}
	n = min(n, len(remaining))
	d.offset += n
	return remaining[:n], nil
}

// implicitDirInfo is a directory that exists only because
// entries are stored beneath it.
type implicitDirInfo struct {
	name string
}

func (d implicitDirInfo) Name() string     { return d.name }
func (implicitDirInfo) Size() int64        { return 0 }
func (implicitDirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (implicitDirInfo) ModTime() time.Time { return time.Time{} }
func (implicitDirInfo) IsDir() bool        { return true }
func (implicitDirInfo) Sys() any           { return nil }

// Interface guards
var (
	_ fs.ReadDirFS   = archiveFS{}
	_ fs.ReadFileFS  = archiveFS{}
	_ fs.StatFS      = archiveFS{}
	_ fs.ReadDirFile = (*dirFile)(nil)
)
