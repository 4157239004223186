package zipread

// locateEOCD searches backward for the end of central directory
// signature. The search starts at the last position a full record
// could begin and gives up once it is further from the end than the
// longest possible archive comment allows. The match nearest to the
// end of the buffer wins.
func locateEOCD(buf []byte) (int64, bool) {
	size := int64(len(buf))
	if size < eocdLen {
		return 0, false
	}
	start := size - eocdLen
	stop := max(0, size-(maxCommentLen+eocdLen))
	for p := start; p >= stop; p-- {
		if buf[p] == eocdSig[0] && hasSig(buf[p:], eocdSig) {
			return p, true
		}
	}
	return 0, false
}
