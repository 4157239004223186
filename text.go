package zipread

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// nameDecoder turns raw header name bytes into a string.
type nameDecoder struct {
	enc encoding.Encoding
}

// newNameDecoder looks up the named IANA charset. An empty
// charset means names are taken as UTF-8.
func newNameDecoder(charset string) (nameDecoder, error) {
	if charset == "" {
		return nameDecoder{}, nil
	}
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nameDecoder{}, fmt.Errorf("looking up text encoding %q: %w", charset, err)
	}
	if enc == nil {
		return nameDecoder{}, fmt.Errorf("text encoding %q is not supported", charset)
	}
	return nameDecoder{enc: enc}, nil
}

// decode returns name as a string. Without a legacy charset, or when
// the entry is flagged as UTF-8, the bytes are used as-is.
func (d nameDecoder) decode(name []byte, flags uint16) string {
	if d.enc == nil || flags&flagUTF8 != 0 {
		return string(name)
	}
	out, err := d.enc.NewDecoder().Bytes(name)
	if err != nil || !utf8.Valid(out) {
		return string(name)
	}
	return string(out)
}
