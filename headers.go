package zipread

import (
	"bytes"
	"encoding/binary"
)

// Record signatures. Each begins with the two byte marker "PK".
var (
	localHeaderSig = []byte{0x50, 0x4b, 0x03, 0x04}
	directorySig   = []byte{0x50, 0x4b, 0x01, 0x02}
	eocdSig        = []byte{0x50, 0x4b, 0x05, 0x06}
	descriptorSig  = []byte{0x50, 0x4b, 0x07, 0x08}
)

// Fixed lengths of each record, excluding variable-length fields.
const (
	localHeaderLen = 30
	directoryLen   = 46
	eocdLen        = 22
	descriptorLen  = 16

	// maxCommentLen is the largest archive comment the EOCD can announce.
	maxCommentLen = 65535
)

// General purpose bit flags.
const (
	flagDataDescriptor = 0x0008
	flagUTF8           = 0x0800
)

// directoryRecord holds the fields of a central directory
// record needed to build an Entry. It does not outlive parsing.
type directoryRecord struct {
	flags             uint16
	method            Method
	crc32             uint32
	compressedSize    uint32
	uncompressedSize  uint32
	nameLen           int
	extraLen          int
	commentLen        int
	localHeaderOffset int64
	name              []byte
}

// size is the total length of the record including its variable fields.
func (r directoryRecord) size() int64 {
	return directoryLen + int64(r.nameLen) + int64(r.extraLen) + int64(r.commentLen)
}

// readDirectoryRecord decodes the record at off. The caller has
// already checked the signature and that the fixed part is in bounds.
// ok is false if the variable-length part runs past the buffer.
func readDirectoryRecord(buf []byte, off int64) (rec directoryRecord, ok bool) {
	b := buf[off : off+directoryLen]
	rec = directoryRecord{
		flags:             binary.LittleEndian.Uint16(b[8:10]),
		method:            Method(binary.LittleEndian.Uint16(b[10:12])),
		crc32:             binary.LittleEndian.Uint32(b[16:20]),
		compressedSize:    binary.LittleEndian.Uint32(b[20:24]),
		uncompressedSize:  binary.LittleEndian.Uint32(b[24:28]),
		nameLen:           int(binary.LittleEndian.Uint16(b[28:30])),
		extraLen:          int(binary.LittleEndian.Uint16(b[30:32])),
		commentLen:        int(binary.LittleEndian.Uint16(b[32:34])),
		localHeaderOffset: int64(binary.LittleEndian.Uint32(b[42:46])),
	}
	if off+rec.size() > int64(len(buf)) {
		return rec, false
	}
	nameStart := off + directoryLen
	rec.name = buf[nameStart : nameStart+int64(rec.nameLen)]
	return rec, true
}

// localHeader holds the fields of a local file header.
type localHeader struct {
	flags            uint16
	method           Method
	crc32            uint32
	compressedSize   uint32
	uncompressedSize uint32
	nameLen          int
	extraLen         int
}

// dataOffset returns the offset of the payload that follows
// the header starting at off.
func (h localHeader) dataOffset(off int64) int64 {
	return off + localHeaderLen + int64(h.nameLen) + int64(h.extraLen)
}

// readLocalHeader decodes the fixed part of the local header at off.
// ok is false if the fixed part does not fit or the signature is wrong.
func readLocalHeader(buf []byte, off int64) (h localHeader, ok bool) {
	if off < 0 || off+localHeaderLen > int64(len(buf)) {
		return h, false
	}
	b := buf[off : off+localHeaderLen]
	if !hasSig(b, localHeaderSig) {
		return h, false
	}
	return localHeader{
		flags:            binary.LittleEndian.Uint16(b[6:8]),
		method:           Method(binary.LittleEndian.Uint16(b[8:10])),
		crc32:            binary.LittleEndian.Uint32(b[14:18]),
		compressedSize:   binary.LittleEndian.Uint32(b[18:22]),
		uncompressedSize: binary.LittleEndian.Uint32(b[22:26]),
		nameLen:          int(binary.LittleEndian.Uint16(b[26:28])),
		extraLen:         int(binary.LittleEndian.Uint16(b[28:30])),
	}, true
}

// eocdRecord is the part of the end of central directory record
// that locates the directory.
type eocdRecord struct {
	directorySize   int64
	directoryOffset int64
	comment         []byte
}

// readEOCD decodes the record at off, which must be a located
// signature with at least eocdLen bytes following it. The comment
// is clipped to the buffer if the announced length overruns it.
func readEOCD(buf []byte, off int64) eocdRecord {
	b := buf[off : off+eocdLen]
	rec := eocdRecord{
		directorySize:   int64(binary.LittleEndian.Uint32(b[12:16])),
		directoryOffset: int64(binary.LittleEndian.Uint32(b[16:20])),
	}
	commentLen := int64(binary.LittleEndian.Uint16(b[20:22]))
	start := off + eocdLen
	end := min(start+commentLen, int64(len(buf)))
	rec.comment = buf[start:end]
	return rec
}

// skipDescriptor finds the data descriptor that ends a payload
// starting at start, and returns the offset just past it. A candidate
// counts only if its compressed size is the distance from start, so
// a signature inside the payload is not taken for the end of it.
func skipDescriptor(buf []byte, start int64) (int64, bool) {
	for pos := start; pos <= int64(len(buf))-descriptorLen; {
		i := bytes.Index(buf[pos:], descriptorSig)
		if i < 0 {
			break
		}
		d := pos + int64(i)
		if d+descriptorLen > int64(len(buf)) {
			break
		}
		if int64(binary.LittleEndian.Uint32(buf[d+8:d+12])) == d-start {
			return d + descriptorLen, true
		}
		pos = d + 1
	}
	return start, false
}

func hasSig(b, sig []byte) bool {
	return len(b) >= len(sig) &&
		b[0] == sig[0] && b[1] == sig[1] && b[2] == sig[2] && b[3] == sig[3]
}
