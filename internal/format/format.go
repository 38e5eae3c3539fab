package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
)

// Errors returned by format operations.
var (
	ErrUnknownFormat = errors.New("unknown format")
	ErrByteRange     = errors.New("value does not fit in one byte")
	ErrBadDigits     = errors.New("invalid digits for format")
)

// Data is the numeric display format of the data panel.
type Data int

// Available data formats.
const (
	DataHex Data = iota
	DataDecimal
	DataOctal
	DataBinary
)

// String returns the format name as used in flags and config.
func (d Data) String() string {
	switch d {
	case DataHex:
		return "hex"
	case DataDecimal:
		return "decimal"
	case DataOctal:
		return "octal"
	case DataBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// ModeLabel returns the short status-line label for the format.
func (d Data) ModeLabel() string {
	switch d {
	case DataHex:
		return "Hex"
	case DataDecimal:
		return "Dec"
	case DataOctal:
		return "Oct"
	case DataBinary:
		return "Bin"
	default:
		return "???"
	}
}

// ParseData parses a data format name.
func ParseData(s string) (Data, error) {
	switch s {
	case "hex":
		return DataHex, nil
	case "decimal":
		return DataDecimal, nil
	case "octal":
		return DataOctal, nil
	case "binary":
		return DataBinary, nil
	default:
		return 0, fmt.Errorf("%w: data format %q", ErrUnknownFormat, s)
	}
}

// Base returns the numeric base bytes are entered and displayed in.
func (d Data) Base() int {
	switch d {
	case DataHex:
		return 16
	case DataDecimal:
		return 10
	case DataOctal:
		return 8
	case DataBinary:
		return 2
	default:
		return 16
	}
}

// DigitsPerByte returns how many digits one byte occupies on screen.
func (d Data) DigitsPerByte() int {
	return d.Layout().DigitsPerByte
}

// Layout returns the panel layout of the format.
func (d Data) Layout() Layout {
	switch d {
	case DataHex:
		return Layout{Sections: 2, SectionBytes: 8, DigitsPerByte: 2}
	case DataDecimal:
		return Layout{Sections: 2, SectionBytes: 5, DigitsPerByte: 3}
	case DataOctal:
		return Layout{Sections: 3, SectionBytes: 4, DigitsPerByte: 3}
	case DataBinary:
		return Layout{Sections: 4, SectionBytes: 1, DigitsPerByte: 8}
	default:
		return Layout{Sections: 2, SectionBytes: 8, DigitsPerByte: 2}
	}
}

// RecordLayout returns the layout for fixed-record display: each row is
// one record of recSize bytes, split into the format's usual sections
// with a possible trailing partial section.
func (d Data) RecordLayout(recSize int) Layout {
	l := d.Layout()
	if recSize <= 0 {
		return l
	}
	l.Partial = recSize % l.SectionBytes
	l.Sections = recSize / l.SectionBytes
	return l
}

// FormatByte renders one byte in the format's digit width.
func (d Data) FormatByte(v byte) string {
	switch d {
	case DataHex:
		return fmt.Sprintf("%02x", v)
	case DataDecimal:
		return fmt.Sprintf("%03d", v)
	case DataOctal:
		return fmt.Sprintf("%03o", v)
	case DataBinary:
		return fmt.Sprintf("%08b", v)
	default:
		return fmt.Sprintf("%02x", v)
	}
}

// ValidDigit reports whether r is a legal input digit for the format.
func (d Data) ValidDigit(r rune) bool {
	switch d {
	case DataHex:
		return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
	case DataDecimal:
		return r >= '0' && r <= '9'
	case DataOctal:
		return r >= '0' && r <= '7'
	case DataBinary:
		return r == '0' || r == '1'
	default:
		return false
	}
}

// IsEditDigit reports whether r belongs to the digit superset that the
// data panel consumes regardless of the active format. Digits outside
// the active format's set are consumed and ignored, never dispatched as
// commands.
func IsEditDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// ParseByte parses a complete digit group into one byte value.
func (d Data) ParseByte(digits string) (byte, error) {
	v, err := strconv.ParseUint(digits, d.Base(), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDigits, digits)
	}
	if v > 0xFF {
		return 0, fmt.Errorf("%w: %q", ErrByteRange, digits)
	}
	return byte(v), nil
}

// Layout describes the data panel geometry of one format.
type Layout struct {
	Sections      int // full sections per row
	SectionBytes  int // bytes per full section
	DigitsPerByte int // screen digits per byte
	Partial       int // bytes in a trailing partial section (record mode)
}

// RowBytes returns the number of bytes displayed per row.
func (l Layout) RowBytes() int {
	return l.Sections*l.SectionBytes + l.Partial
}

// SectionCount returns the number of drawn sections, counting a partial
// section as one.
func (l Layout) SectionCount() int {
	n := l.Sections
	if l.Partial > 0 {
		n++
	}
	return n
}

// SectionLen returns the byte count of section i (the last section may
// be partial in record mode).
func (l Layout) SectionLen(i int) int {
	if i < l.Sections {
		return l.SectionBytes
	}
	if i == l.Sections && l.Partial > 0 {
		return l.Partial
	}
	return 0
}

// Offset is the offset column display format.
type Offset int

// Available offset formats.
const (
	OffsetHex Offset = iota
	OffsetDecimal
)

// OffsetWidth is the fixed character width of the offset column.
const OffsetWidth = 8

// String returns the format name as used in flags and config.
func (o Offset) String() string {
	switch o {
	case OffsetHex:
		return "hex"
	case OffsetDecimal:
		return "decimal"
	default:
		return "unknown"
	}
}

// ParseOffset parses an offset format name.
func ParseOffset(s string) (Offset, error) {
	switch s {
	case "hex":
		return OffsetHex, nil
	case "decimal":
		return OffsetDecimal, nil
	default:
		return 0, fmt.Errorf("%w: offset format %q", ErrUnknownFormat, s)
	}
}

// Format renders a byte offset in the fixed column width.
func (o Offset) Format(off int64) string {
	if o == OffsetHex {
		return fmt.Sprintf("%08x", off)
	}
	return fmt.Sprintf("%08d", off)
}

// Endian selects the byte order multi-byte values decode with.
type Endian int

// Available byte orders.
const (
	LittleEndian Endian = iota
	BigEndian
)

// String returns the byte order name as used in flags and config.
func (e Endian) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// ParseEndian parses a byte order name.
func ParseEndian(s string) (Endian, error) {
	switch s {
	case "big":
		return BigEndian, nil
	case "little":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("%w: endian %q", ErrUnknownFormat, s)
	}
}

// Toggle returns the other byte order.
func (e Endian) Toggle() Endian {
	if e == BigEndian {
		return LittleEndian
	}
	return BigEndian
}

// Order returns the encoding/binary byte order.
func (e Endian) Order() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
