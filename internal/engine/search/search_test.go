package search

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/format"
)

func TestNeedleText(t *testing.T) {
	q := Query{Term: "AB", Format: FormatText}

	got, err := q.Needle(format.DataHex, charset.ASCII, format.LittleEndian)
	if err != nil {
		t.Fatalf("Needle failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0x41, 0x42}) {
		t.Errorf("expected [41 42], got % x", got)
	}
}

func TestNeedleTextEBCDIC(t *testing.T) {
	q := Query{Term: "A", Format: FormatText}

	got, err := q.Needle(format.DataHex, charset.EBCDIC, format.LittleEndian)
	if err != nil {
		t.Fatalf("Needle failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0xC1}) {
		t.Errorf("expected [C1], got % x", got)
	}
}

func TestNeedleDataHex(t *testing.T) {
	q := Query{Term: "de ad be ef", Format: FormatData}

	got, err := q.Needle(format.DataHex, charset.ASCII, format.LittleEndian)
	if err != nil {
		t.Fatalf("Needle failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Errorf("expected [de ad be ef], got % x", got)
	}
}

func TestNeedleDataBinary(t *testing.T) {
	q := Query{Term: "0000000111111111", Format: FormatData}

	got, err := q.Needle(format.DataBinary, charset.ASCII, format.LittleEndian)
	if err != nil {
		t.Fatalf("Needle failed: %v", err)
	}
	if !bytes.Equal(got, []byte{0x01, 0xFF}) {
		t.Errorf("expected [01 ff], got % x", got)
	}
}

func TestNeedleDataUneven(t *testing.T) {
	q := Query{Term: "abc", Format: FormatData}

	if _, err := q.Needle(format.DataHex, charset.ASCII, format.LittleEndian); !errors.Is(err, ErrUnevenDigits) {
		t.Errorf("expected ErrUnevenDigits, got %v", err)
	}
}

func TestNeedleDataBadDigits(t *testing.T) {
	q := Query{Term: "99", Format: FormatData}

	if _, err := q.Needle(format.DataOctal, charset.ASCII, format.LittleEndian); !errors.Is(err, format.ErrBadDigits) {
		t.Errorf("expected ErrBadDigits, got %v", err)
	}
}

func TestNeedleInteger(t *testing.T) {
	tests := []struct {
		name   string
		q      Query
		endian format.Endian
		want   []byte
	}{
		{"u16 little", Query{Term: "4660", Format: FormatU16}, format.LittleEndian, []byte{0x34, 0x12}},
		{"u16 big", Query{Term: "4660", Format: FormatU16}, format.BigEndian, []byte{0x12, 0x34}},
		{"s8", Query{Term: "-1", Format: FormatS8}, format.LittleEndian, []byte{0xFF}},
		{"u32 big", Query{Term: "1", Format: FormatU32}, format.BigEndian, []byte{0, 0, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.q.Needle(format.DataHex, charset.ASCII, tt.endian)
			if err != nil {
				t.Fatalf("Needle failed: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("expected % x, got % x", tt.want, got)
			}
		})
	}
}

func TestNeedleEmptyTerm(t *testing.T) {
	q := Query{Term: "", Format: FormatText}

	if _, err := q.Needle(format.DataHex, charset.ASCII, format.LittleEndian); !errors.Is(err, ErrEmptyTerm) {
		t.Errorf("expected ErrEmptyTerm, got %v", err)
	}
}

func TestFormatCycle(t *testing.T) {
	// One full trip through the selector cycle returns to the start.
	want := []Format{FormatS8, FormatS16, FormatS32, FormatData, FormatU8, FormatU16, FormatU32, FormatText}

	f := FormatS8
	for i, expect := range want {
		if f != expect {
			t.Fatalf("step %d: expected %s, got %s", i, expect.Label(), f.Label())
		}
		f = f.Next()
	}
	if f != FormatS8 {
		t.Errorf("cycle did not wrap, ended at %s", f.Label())
	}
}

func TestDirectionToggle(t *testing.T) {
	if Forward.Toggle() != Backward || Backward.Toggle() != Forward {
		t.Error("toggle should alternate directions")
	}
}

func TestRunForward(t *testing.T) {
	buf := buffer.NewFromBytes([]byte("xAByyAB"))

	// Forward starts one past the cursor, so a match at the cursor is
	// skipped.
	off, err := Run(buf, Forward, []byte("AB"), 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if off != 5 {
		t.Errorf("expected offset 5, got %d", off)
	}
}

func TestRunBackward(t *testing.T) {
	buf := buffer.NewFromBytes([]byte("ABxxAB"))

	off, err := Run(buf, Backward, []byte("AB"), 4)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if off != 0 {
		t.Errorf("expected offset 0, got %d", off)
	}
}

func TestRunNotFound(t *testing.T) {
	buf := buffer.NewFromBytes([]byte("abc"))

	if _, err := Run(buf, Forward, []byte("zz"), 0); !errors.Is(err, buffer.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
