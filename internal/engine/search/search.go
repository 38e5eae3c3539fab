// Package search builds byte needles from the search dialog's term and
// runs them against the buffer. A term can be interpreted as text in the
// active charset, as raw data digits in the active display format, or as
// a fixed-width integer packed with the active byte order.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/format"
)

// Errors returned by needle construction.
var (
	ErrEmptyTerm    = errors.New("empty search term")
	ErrUnevenDigits = errors.New("digits do not divide into whole bytes")
)

// Direction selects which way a search scans from the cursor.
type Direction int

// Search directions.
const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == Forward {
		return Backward
	}
	return Forward
}

// Format selects how the term converts to bytes.
type Format int

// Term formats, in dialog cycle order.
const (
	FormatS8 Format = iota
	FormatS16
	FormatS32
	FormatData
	FormatU8
	FormatU16
	FormatU32
	FormatText
)

// Label returns the selector label shown in the dialog.
func (f Format) Label() string {
	switch f {
	case FormatS8:
		return "S8"
	case FormatS16:
		return "S16"
	case FormatS32:
		return "S32"
	case FormatData:
		return "Data"
	case FormatU8:
		return "U8"
	case FormatU16:
		return "U16"
	case FormatU32:
		return "U32"
	case FormatText:
		return "Text"
	default:
		return "?"
	}
}

// Next returns the format after f in the dialog cycle.
func (f Format) Next() Format {
	switch f {
	case FormatS8:
		return FormatS16
	case FormatS16:
		return FormatS32
	case FormatS32:
		return FormatData
	case FormatData:
		return FormatU8
	case FormatU8:
		return FormatU16
	case FormatU16:
		return FormatU32
	case FormatU32:
		return FormatText
	case FormatText:
		return FormatS8
	default:
		return FormatS8
	}
}

// field returns the inspector field that packs integer terms, nil for
// the non-integer formats.
func (f Format) field() inspector.Field {
	switch f {
	case FormatS8:
		return inspector.S8
	case FormatS16:
		return inspector.S16
	case FormatS32:
		return inspector.S32
	case FormatU8:
		return inspector.U8
	case FormatU16:
		return inspector.U16
	case FormatU32:
		return inspector.U32
	default:
		return nil
	}
}

// Query is the persistent search state.
type Query struct {
	Term      string
	Direction Direction
	Format    Format
}

// MaxTermLen bounds the search term, matching the dialog's input width.
const MaxTermLen = 45

// Needle converts the query term into the byte sequence to scan for.
// The active data format, charset and byte order decide the conversion
// for data, text and integer terms respectively.
func (q Query) Needle(data format.Data, cs charset.Charset, e format.Endian) ([]byte, error) {
	if q.Term == "" {
		return nil, ErrEmptyTerm
	}

	switch q.Format {
	case FormatText:
		return cs.EncodeString(q.Term)
	case FormatData:
		return parseDataTerm(q.Term, data)
	default:
		return q.Format.field().Encode(q.Term, e)
	}
}

// parseDataTerm interprets the digits of the current display format as a
// byte sequence: spaces are cosmetic, and the digits must divide evenly
// into whole bytes.
func parseDataTerm(term string, data format.Data) ([]byte, error) {
	digits := strings.ReplaceAll(term, " ", "")
	if digits == "" {
		return nil, ErrEmptyTerm
	}

	per := data.DigitsPerByte()
	if len(digits)%per != 0 {
		return nil, fmt.Errorf("%w: %d digits, %d per byte", ErrUnevenDigits, len(digits), per)
	}

	out := make([]byte, 0, len(digits)/per)
	for i := 0; i < len(digits); i += per {
		b, err := data.ParseByte(digits[i : i+per])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Run scans the buffer for the needle relative to the cursor. Forward
// searches start one past the cursor; backward searches find the
// rightmost match starting before the cursor.
func Run(buf *buffer.Buffer, d Direction, needle []byte, cursor buffer.ByteOffset) (buffer.ByteOffset, error) {
	if d == Forward {
		return buf.Find(needle, cursor+1)
	}
	return buf.FindBackward(needle, cursor)
}
