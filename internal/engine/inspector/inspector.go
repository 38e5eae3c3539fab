// Package inspector decodes the bytes at the cursor into the value rows
// shown above the status line: signed and unsigned integers of one, two
// and four bytes, and epoch timestamps. Every built-in field can also
// encode an entered value back into bytes for writing at the cursor.
package inspector

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dshills/hexed/internal/format"
)

// Errors returned by field encoding.
var (
	ErrBadValue      = errors.New("value does not parse")
	ErrValueRange    = errors.New("value out of range for field")
	ErrFieldReadOnly = errors.New("field is read-only")
)

// TimeLayout is the display and input layout of timestamp fields.
const TimeLayout = "2006/01/02 15:04:05"

// Field decodes and encodes a fixed-width value at the cursor.
type Field interface {
	// Header is the short label rendered before the value.
	Header() string
	// ByteCount is how many bytes starting at the cursor the field reads.
	ByteCount() int
	// InputWidth is the widest input the edit dialog accepts, 0 when the
	// field is read-only.
	InputWidth() int
	// Decode renders the value of the leading bytes of data. ok is false
	// when data holds fewer than ByteCount bytes.
	Decode(data []byte, e format.Endian) (value string, ok bool)
	// Encode parses an entered value into the bytes to write back.
	Encode(s string, e format.Endian) ([]byte, error)
}

// Built-in fields.
var (
	S8  Field = intField{"S8", 1, true, 4}
	U8  Field = intField{"U8", 1, false, 3}
	S16 Field = intField{"S16", 2, true, 6}
	U16 Field = intField{"U16", 2, false, 5}
	S32 Field = intField{"S32", 4, true, 11}
	U32 Field = intField{"U32", 4, false, 10}

	// UTC and Local decode a signed 32-bit epoch at the cursor.
	UTC   Field = timeField{"UTC", false}
	Local Field = timeField{"Local", true}

	// MailbagUTC decodes eight ASCII hex digits as epoch seconds, the
	// timestamp convention of mailbag records.
	MailbagUTC Field = mailbagField{}
)

// Rows returns the built-in field table: two rows of four fields.
// Mailbag mode swaps the timestamp fields for the ASCII-hex decoder and
// leaves the second row without a fourth field.
func Rows(mailbag bool) [][]Field {
	if mailbag {
		return [][]Field{
			{S8, S16, S32, MailbagUTC},
			{U8, U16, U32},
		}
	}
	return [][]Field{
		{S8, S16, S32, UTC},
		{U8, U16, U32, Local},
	}
}

// intField decodes fixed-width integers with the active byte order.
type intField struct {
	header string
	width  int
	signed bool
	input  int
}

func (f intField) Header() string  { return f.header }
func (f intField) ByteCount() int  { return f.width }
func (f intField) InputWidth() int { return f.input }

func (f intField) Decode(data []byte, e format.Endian) (string, bool) {
	if len(data) < f.width {
		return "", false
	}

	var u uint64
	switch f.width {
	case 1:
		u = uint64(data[0])
	case 2:
		u = uint64(e.Order().Uint16(data))
	case 4:
		u = uint64(e.Order().Uint32(data))
	}

	if f.signed {
		switch f.width {
		case 1:
			return strconv.FormatInt(int64(int8(u)), 10), true
		case 2:
			return strconv.FormatInt(int64(int16(u)), 10), true
		case 4:
			return strconv.FormatInt(int64(int32(u)), 10), true
		}
	}
	return strconv.FormatUint(u, 10), true
}

func (f intField) Encode(s string, e format.Endian) ([]byte, error) {
	bits := f.width * 8

	var u uint64
	if f.signed {
		v, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return nil, encodeErr(err, s)
		}
		u = uint64(v)
	} else {
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, encodeErr(err, s)
		}
		u = v
	}

	out := make([]byte, f.width)
	switch f.width {
	case 1:
		out[0] = byte(u)
	case 2:
		e.Order().PutUint16(out, uint16(u))
	case 4:
		e.Order().PutUint32(out, uint32(u))
	}
	return out, nil
}

// timeField decodes a signed 32-bit epoch as a formatted timestamp.
type timeField struct {
	header string
	local  bool
}

func (f timeField) Header() string  { return f.header }
func (f timeField) ByteCount() int  { return 4 }
func (f timeField) InputWidth() int { return len(TimeLayout) }

func (f timeField) location() *time.Location {
	if f.local {
		return time.Local
	}
	return time.UTC
}

func (f timeField) Decode(data []byte, e format.Endian) (string, bool) {
	if len(data) < 4 {
		return "", false
	}
	epoch := int64(int32(e.Order().Uint32(data)))
	return time.Unix(epoch, 0).In(f.location()).Format(TimeLayout), true
}

func (f timeField) Encode(s string, e format.Endian) ([]byte, error) {
	t, err := time.ParseInLocation(TimeLayout, s, f.location())
	if err != nil {
		return nil, encodeErr(err, s)
	}

	epoch := t.Unix()
	if epoch < -1<<31 || epoch > 1<<31-1 {
		return nil, fmt.Errorf("%w: %q", ErrValueRange, s)
	}

	out := make([]byte, 4)
	e.Order().PutUint32(out, uint32(int32(epoch)))
	return out, nil
}

// mailbagField decodes eight ASCII hex digits at the cursor as UTC epoch
// seconds.
type mailbagField struct{}

func (mailbagField) Header() string  { return "UTC" }
func (mailbagField) ByteCount() int  { return 8 }
func (mailbagField) InputWidth() int { return len(TimeLayout) }

func (mailbagField) Decode(data []byte, _ format.Endian) (string, bool) {
	if len(data) < 8 {
		return "", false
	}
	epoch, err := strconv.ParseInt(string(data[:8]), 16, 64)
	if err != nil {
		return "", false
	}
	return time.Unix(epoch, 0).UTC().Format(TimeLayout), true
}

func (mailbagField) Encode(s string, _ format.Endian) ([]byte, error) {
	t, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return nil, encodeErr(err, s)
	}

	epoch := t.Unix()
	if epoch < 0 || epoch > 0xFFFFFFFF {
		return nil, fmt.Errorf("%w: %q", ErrValueRange, s)
	}
	return []byte(fmt.Sprintf("%08x", epoch)), nil
}

// Custom is a read-only field backed by a user-provided decoder.
// Decode errors render as a marked value instead of failing the redraw.
type Custom struct {
	Name  string
	Width int
	Fn    func(data []byte, endian string) (string, error)
}

func (c Custom) Header() string  { return c.Name }
func (c Custom) ByteCount() int  { return c.Width }
func (c Custom) InputWidth() int { return 0 }

func (c Custom) Decode(data []byte, e format.Endian) (string, bool) {
	if len(data) < c.Width {
		return "", false
	}
	v, err := c.Fn(data[:c.Width], e.String())
	if err != nil {
		return "?" + err.Error(), true
	}
	return v, true
}

func (c Custom) Encode(string, format.Endian) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrFieldReadOnly, c.Name)
}

func encodeErr(err error, input string) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %q", ErrValueRange, input)
	}
	return fmt.Errorf("%w: %q", ErrBadValue, input)
}
