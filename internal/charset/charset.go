// Package charset maps buffer bytes to and from the characters shown in
// the text panel. Two charsets are supported: ascii (Windows-1252) and
// ebcdic (EBCDIC code page 1140, the mainframe encoding mailbag records
// arrive in).
package charset

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Errors returned by charset operations.
var (
	ErrUnknownCharset = errors.New("unknown charset")
	ErrUnencodable    = errors.New("character not encodable in charset")
)

// Charset identifies a text panel encoding.
type Charset int

// Available charsets.
const (
	ASCII Charset = iota
	EBCDIC
)

// String returns the charset name as used in flags and config.
func (c Charset) String() string {
	if c == EBCDIC {
		return "ebcdic"
	}
	return "ascii"
}

// Parse parses a charset name.
func Parse(s string) (Charset, error) {
	switch s {
	case "ascii":
		return ASCII, nil
	case "ebcdic":
		return EBCDIC, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCharset, s)
	}
}

// Toggle returns the other charset.
func (c Charset) Toggle() Charset {
	if c == ASCII {
		return EBCDIC
	}
	return ASCII
}

func (c Charset) table() *charmap.Charmap {
	if c == EBCDIC {
		return charmap.CodePage1140
	}
	return charmap.Windows1252
}

// Printable returns the character the text panel shows for one byte:
// the decoded character when it lands in the printable ASCII range,
// otherwise '.'.
func (c Charset) Printable(b byte) rune {
	r := c.table().DecodeByte(b)
	if r >= 0x20 && r < 0x7F {
		return r
	}
	return '.'
}

// Encode maps a typed character to the byte that represents it.
func (c Charset) Encode(r rune) (byte, error) {
	b, ok := c.table().EncodeRune(r)
	if !ok {
		return 0, fmt.Errorf("%w: %q in %s", ErrUnencodable, r, c)
	}
	return b, nil
}

// EncodeString maps a search or edit string to its byte representation.
func (c Charset) EncodeString(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, err := c.Encode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
