package engine

import (
	"errors"
	"testing"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/engine/history"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/engine/search"
	"github.com/dshills/hexed/internal/format"
)

// newEditor builds an editor over n bytes where data[i] == byte(i).
func newEditor(n int, opts ...Option) *Editor {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return New(buffer.NewFromBytes(data), opts...)
}

// ============================================================================
// Construction
// ============================================================================

func TestNewDefaults(t *testing.T) {
	e := New(nil)

	if e.DataFormat() != format.DataHex {
		t.Errorf("default data format = %v, want hex", e.DataFormat())
	}
	if e.TextFormat() != charset.ASCII {
		t.Errorf("default text format = %v, want ascii", e.TextFormat())
	}
	if e.OffsetFormat() != format.OffsetDecimal {
		t.Errorf("default offset format = %v, want decimal", e.OffsetFormat())
	}
	if e.Endian() != format.LittleEndian {
		t.Errorf("default endian = %v, want little", e.Endian())
	}
	if e.Focus() != AreaData {
		t.Errorf("default focus = %v, want data", e.Focus())
	}
	if e.Cursor() != 0 || e.FirstLine() != 0 {
		t.Errorf("cursor/firstLine = %d/%d, want 0/0", e.Cursor(), e.FirstLine())
	}
	if e.Len() != 0 {
		t.Errorf("empty editor len = %d", e.Len())
	}
}

func TestNewOptions(t *testing.T) {
	e := newEditor(16,
		WithDataFormat(format.DataOctal),
		WithTextFormat(charset.EBCDIC),
		WithOffsetFormat(format.OffsetHex),
		WithEndian(format.BigEndian),
		WithMailbag(),
		WithRecordSize(6),
	)

	if e.DataFormat() != format.DataOctal {
		t.Errorf("data format = %v, want octal", e.DataFormat())
	}
	if e.TextFormat() != charset.EBCDIC {
		t.Errorf("text format = %v, want ebcdic", e.TextFormat())
	}
	if e.OffsetFormat() != format.OffsetHex {
		t.Errorf("offset format = %v, want hex", e.OffsetFormat())
	}
	if e.Endian() != format.BigEndian {
		t.Errorf("endian = %v, want big", e.Endian())
	}
	if !e.Mailbag() {
		t.Error("mailbag not enabled")
	}
	if e.RecordSize() != 6 {
		t.Errorf("record size = %d, want 6", e.RecordSize())
	}
	if got := e.Layout().RowBytes(); got != 6 {
		t.Errorf("record row bytes = %d, want 6", got)
	}
}

// ============================================================================
// Cursor Movement and Scrolling
// ============================================================================

func TestMoveCursorClampsAtEnds(t *testing.T) {
	e := newEditor(32)

	e.MoveCursor(1000)
	if e.Cursor() != 31 {
		t.Errorf("cursor after big forward move = %d, want 31", e.Cursor())
	}
	e.MoveCursor(-1000)
	if e.Cursor() != 0 {
		t.Errorf("cursor after big backward move = %d, want 0", e.Cursor())
	}
}

func TestMoveCursorEmptyBuffer(t *testing.T) {
	e := New(nil)
	e.MoveCursor(5)
	if e.Cursor() != 0 || e.FirstLine() != 0 {
		t.Errorf("cursor/firstLine = %d/%d, want 0/0", e.Cursor(), e.FirstLine())
	}
}

func TestMoveCursorScrolls(t *testing.T) {
	// Hex layout is 16 bytes per row; 256 bytes gives rows 0..15.
	e := newEditor(256)
	e.SetPageRows(4)

	// Row 5 is below the last visible row (3): scroll down just enough.
	e.MoveCursor(16 * 5)
	if e.Cursor() != 80 {
		t.Errorf("cursor = %d, want 80", e.Cursor())
	}
	if e.FirstLine() != 2 {
		t.Errorf("firstLine after scroll down = %d, want 2", e.FirstLine())
	}

	// Moving back above the window puts that row on top.
	e.MoveCursor(-16 * 5)
	if e.FirstLine() != 0 {
		t.Errorf("firstLine after scroll up = %d, want 0", e.FirstLine())
	}
}

func TestMoveToSnapTopClampsAtEOF(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)

	// Snapping row 15 to the top would scroll past the last page;
	// the view stops at the end-of-file line instead.
	e.MoveTo(255, true)
	if e.Cursor() != 255 {
		t.Errorf("cursor = %d, want 255", e.Cursor())
	}
	if e.FirstLine() != 13 {
		t.Errorf("firstLine = %d, want 13", e.FirstLine())
	}
}

func TestMoveToSnapTopVisibleKeepsScroll(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)
	e.MoveCursor(32) // row 2, still visible

	first := e.FirstLine()
	e.MoveTo(48, true) // row 3, also visible
	if e.FirstLine() != first {
		t.Errorf("firstLine moved from %d to %d for a visible target", first, e.FirstLine())
	}
}

func TestPageDownPageUp(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)

	e.PageDown()
	if e.Cursor() != 64 || e.FirstLine() != 4 {
		t.Errorf("after PageDown cursor/firstLine = %d/%d, want 64/4", e.Cursor(), e.FirstLine())
	}
	e.PageDown()
	if e.Cursor() != 128 || e.FirstLine() != 8 {
		t.Errorf("after second PageDown cursor/firstLine = %d/%d, want 128/8", e.Cursor(), e.FirstLine())
	}
	e.PageUp()
	if e.Cursor() != 64 || e.FirstLine() != 4 {
		t.Errorf("after PageUp cursor/firstLine = %d/%d, want 64/4", e.Cursor(), e.FirstLine())
	}
}

func TestPageUpAtTopStays(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)
	e.PageUp()
	if e.Cursor() != 0 || e.FirstLine() != 0 {
		t.Errorf("cursor/firstLine = %d/%d, want 0/0", e.Cursor(), e.FirstLine())
	}
}

func TestHomeEnd(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)

	e.End()
	if e.Cursor() != 255 {
		t.Errorf("End cursor = %d, want 255", e.Cursor())
	}
	if e.FirstLine() != 12 {
		t.Errorf("End firstLine = %d, want 12", e.FirstLine())
	}

	e.Home()
	if e.Cursor() != 0 || e.FirstLine() != 0 {
		t.Errorf("Home cursor/firstLine = %d/%d, want 0/0", e.Cursor(), e.FirstLine())
	}
}

func TestSetPageRowsKeepsCursorVisible(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(8)
	e.MoveCursor(16 * 7) // row 7, visible with 8 rows

	e.SetPageRows(4)
	first := e.FirstLine()
	if 7 < first || 7 > first+3 {
		t.Errorf("cursor row 7 not visible with firstLine %d and 4 rows", first)
	}
}

func TestToggleFocus(t *testing.T) {
	e := newEditor(16)

	e.ToggleFocus()
	if e.Focus() != AreaText {
		t.Errorf("focus = %v, want text", e.Focus())
	}
	e.ToggleFocus()
	if e.Focus() != AreaData {
		t.Errorf("focus = %v, want data", e.Focus())
	}

	e.SetFocus(AreaText)
	if e.Focus() != AreaText {
		t.Errorf("focus = %v, want text", e.Focus())
	}
	if AreaData.String() != "data" || AreaText.String() != "text" {
		t.Errorf("area names = %q/%q", AreaData.String(), AreaText.String())
	}
}

// ============================================================================
// Typing
// ============================================================================

func TestTypeDigitWritesByte(t *testing.T) {
	e := newEditor(16)

	for _, r := range "41" {
		ok, err := e.TypeDigit(r)
		if !ok || err != nil {
			t.Fatalf("TypeDigit(%q) = %v, %v", r, ok, err)
		}
	}

	if b, _ := e.Byte(0); b != 0x41 {
		t.Errorf("byte 0 = %#02x, want 0x41", b)
	}
	if e.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", e.Cursor())
	}
	if e.Pending() != "" {
		t.Errorf("pending = %q, want empty", e.Pending())
	}
	if !e.Modified() {
		t.Error("buffer not marked modified")
	}
}

func TestTypeDigitAccumulates(t *testing.T) {
	e := newEditor(16)

	if ok, _ := e.TypeDigit('4'); !ok {
		t.Fatal("first digit not consumed")
	}
	if e.Pending() != "4" {
		t.Errorf("pending = %q, want \"4\"", e.Pending())
	}
	if b, _ := e.Byte(0); b != 0 {
		t.Errorf("byte 0 written early: %#02x", b)
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor moved early: %d", e.Cursor())
	}
}

func TestTypeDigitSwallowsInvalidForFormat(t *testing.T) {
	e := newEditor(16, WithDataFormat(format.DataDecimal))

	// Hex letters are consumed in decimal mode without touching the
	// accumulator.
	e.TypeDigit('9')
	e.TypeDigit('9')
	if ok, _ := e.TypeDigit('f'); !ok {
		t.Error("hex letter fell through in decimal mode")
	}
	if e.Pending() != "99" {
		t.Errorf("pending = %q, want \"99\"", e.Pending())
	}

	// Completing 999 overflows a byte; the input is discarded.
	e.TypeDigit('9')
	if e.Pending() != "" {
		t.Errorf("pending after overflow = %q, want empty", e.Pending())
	}
	if b, _ := e.Byte(0); b != 0 {
		t.Errorf("byte 0 = %#02x after overflowed entry", b)
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d after overflowed entry", e.Cursor())
	}
}

func TestTypeDigitRejectsNonDigit(t *testing.T) {
	e := newEditor(16)
	if ok, _ := e.TypeDigit('g'); ok {
		t.Error("'g' consumed as digit input")
	}
}

func TestTypeDigitReadOnly(t *testing.T) {
	e := New(buffer.NewFromBytes(make([]byte, 16), buffer.WithReadOnly()))

	e.TypeDigit('4')
	ok, err := e.TypeDigit('1')
	if !ok {
		t.Error("digit not consumed in read-only buffer")
	}
	if !errors.Is(err, buffer.ErrReadOnly) {
		t.Errorf("err = %v, want ErrReadOnly", err)
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor advanced on rejected write: %d", e.Cursor())
	}
}

func TestTypeText(t *testing.T) {
	e := newEditor(16)

	ok, err := e.TypeText('A')
	if !ok || err != nil {
		t.Fatalf("TypeText('A') = %v, %v", ok, err)
	}
	if b, _ := e.Byte(0); b != 0x41 {
		t.Errorf("byte 0 = %#02x, want 0x41", b)
	}
	if e.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", e.Cursor())
	}
}

func TestTypeTextEBCDIC(t *testing.T) {
	e := newEditor(16, WithTextFormat(charset.EBCDIC))

	if ok, err := e.TypeText('A'); !ok || err != nil {
		t.Fatalf("TypeText('A') = %v, %v", ok, err)
	}
	if b, _ := e.Byte(0); b != 0xc1 {
		t.Errorf("byte 0 = %#02x, want 0xc1 (EBCDIC A)", b)
	}
}

func TestTypeTextRejectsOutOfRange(t *testing.T) {
	e := newEditor(16)

	for _, r := range []rune{0x1f, 0x7f, 'é'} {
		if ok, _ := e.TypeText(r); ok {
			t.Errorf("rune %#x consumed as text input", r)
		}
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", e.Cursor())
	}
}

func TestClearPending(t *testing.T) {
	e := newEditor(16)
	e.TypeDigit('4')
	e.ClearPending()
	if e.Pending() != "" {
		t.Errorf("pending = %q after clear", e.Pending())
	}
}

// ============================================================================
// Display Configuration
// ============================================================================

func TestSetDataFormatNormalizes(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)
	e.MoveTo(160, false) // hex row 10
	e.TypeDigit('4')

	e.SetDataFormat(format.DataBinary)
	if e.DataFormat() != format.DataBinary {
		t.Fatalf("data format = %v, want binary", e.DataFormat())
	}
	// Binary rows hold 4 bytes, so the cursor sits on row 40 and the
	// view renormalizes with that row on top.
	if e.FirstLine() != 40 {
		t.Errorf("firstLine = %d, want 40", e.FirstLine())
	}
	if e.Pending() != "" {
		t.Errorf("pending survived format change: %q", e.Pending())
	}
}

func TestSetDataFormatSameValueKeepsScroll(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)
	e.MoveCursor(16 * 5)

	first := e.FirstLine()
	e.SetDataFormat(format.DataHex)
	if e.FirstLine() != first {
		t.Errorf("firstLine changed from %d to %d", first, e.FirstLine())
	}
}

func TestSetRecordSizeNormalizes(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)
	e.MoveTo(60, false)

	e.SetRecordSize(6)
	if got := e.Layout().RowBytes(); got != 6 {
		t.Fatalf("row bytes = %d, want 6", got)
	}
	if e.FirstLine() != 10 {
		t.Errorf("firstLine = %d, want 10", e.FirstLine())
	}
}

func TestRecordInfo(t *testing.T) {
	e := newEditor(256, WithRecordSize(6))
	e.MoveTo(13, false)

	cur, total, ok := e.RecordInfo()
	if !ok {
		t.Fatal("record info unavailable in record mode")
	}
	if cur != 3 {
		t.Errorf("record = %d, want 3", cur)
	}
	if total != 43 {
		t.Errorf("record count = %d, want 43", total)
	}
}

func TestRecordInfoOffWithoutRecords(t *testing.T) {
	e := newEditor(256)
	if _, _, ok := e.RecordInfo(); ok {
		t.Error("record info reported without record mode")
	}
}

func TestToggleEndian(t *testing.T) {
	e := newEditor(16)

	if got := e.ToggleEndian(); got != format.BigEndian {
		t.Errorf("first toggle = %v, want big", got)
	}
	if got := e.ToggleEndian(); got != format.LittleEndian {
		t.Errorf("second toggle = %v, want little", got)
	}
}

// ============================================================================
// Inspector
// ============================================================================

func TestInspectorValue(t *testing.T) {
	e := newEditor(16) // bytes 00 01 02 ...

	if got := e.InspectorValue(inspector.U16); got != "256" {
		t.Errorf("little-endian U16 at 0 = %q, want \"256\"", got)
	}
	e.ToggleEndian()
	if got := e.InspectorValue(inspector.U16); got != "1" {
		t.Errorf("big-endian U16 at 0 = %q, want \"1\"", got)
	}
}

func TestInspectorValueShortAtEOF(t *testing.T) {
	e := newEditor(16)
	e.End()
	if got := e.InspectorValue(inspector.U32); got != "" {
		t.Errorf("U32 across EOF = %q, want empty", got)
	}
}

func TestApplyField(t *testing.T) {
	e := newEditor(16)

	if err := e.ApplyField(inspector.U16, "513"); err != nil {
		t.Fatalf("ApplyField: %v", err)
	}
	b0, _ := e.Byte(0)
	b1, _ := e.Byte(1)
	if b0 != 0x01 || b1 != 0x02 {
		t.Errorf("bytes = %#02x %#02x, want 0x01 0x02", b0, b1)
	}
	if !e.Modified() {
		t.Error("buffer not marked modified")
	}
}

func TestApplyFieldPastEOF(t *testing.T) {
	e := newEditor(16)
	e.End()
	if err := e.ApplyField(inspector.U32, "1"); !errors.Is(err, buffer.ErrOffsetOutOfRange) {
		t.Errorf("err = %v, want ErrOffsetOutOfRange", err)
	}
}

// ============================================================================
// Undo / Redo
// ============================================================================

func TestUndoRedo(t *testing.T) {
	e := newEditor(16)
	e.MoveTo(5, false)
	e.TypeDigit('f')
	e.TypeDigit('f')

	if b, _ := e.Byte(5); b != 0xff {
		t.Fatalf("byte 5 = %#02x, want 0xff", b)
	}
	if e.Cursor() != 6 {
		t.Fatalf("cursor = %d, want 6", e.Cursor())
	}

	if _, err := e.Undo(); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if b, _ := e.Byte(5); b != 5 {
		t.Errorf("byte 5 after undo = %#02x, want 0x05", b)
	}
	if e.Cursor() != 5 {
		t.Errorf("cursor after undo = %d, want 5", e.Cursor())
	}
	if !e.CanRedo() {
		t.Error("CanRedo false after undo")
	}

	if _, err := e.Redo(); err != nil {
		t.Fatalf("Redo: %v", err)
	}
	if b, _ := e.Byte(5); b != 0xff {
		t.Errorf("byte 5 after redo = %#02x, want 0xff", b)
	}
}

func TestUndoEmpty(t *testing.T) {
	e := newEditor(16)
	if _, err := e.Undo(); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("err = %v, want ErrNothingToUndo", err)
	}
}

// ============================================================================
// Search
// ============================================================================

func TestSearchText(t *testing.T) {
	e := New(buffer.NewFromBytes([]byte("ABCABC")))
	e.SetQuery(search.Query{Term: "BC", Direction: search.Forward, Format: search.FormatText})

	loc, err := e.Search()
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if loc != 1 || e.Cursor() != 1 {
		t.Errorf("first hit = %d (cursor %d), want 1", loc, e.Cursor())
	}

	loc, err = e.Search()
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if loc != 4 {
		t.Errorf("second hit = %d, want 4", loc)
	}

	q := e.Query()
	q.Direction = search.Backward
	e.SetQuery(q)
	loc, err = e.Search()
	if err != nil {
		t.Fatalf("backward Search: %v", err)
	}
	if loc != 1 {
		t.Errorf("backward hit = %d, want 1", loc)
	}
}

func TestSearchMissKeepsCursor(t *testing.T) {
	e := New(buffer.NewFromBytes([]byte("ABCABC")))
	e.MoveTo(2, false)
	e.SetQuery(search.Query{Term: "ZZ", Format: search.FormatText})

	if _, err := e.Search(); !errors.Is(err, buffer.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if e.Cursor() != 2 {
		t.Errorf("cursor moved on miss: %d", e.Cursor())
	}
}

func TestSearchDataDigits(t *testing.T) {
	e := newEditor(16)
	e.SetQuery(search.Query{Term: "02 03", Format: search.FormatData})

	loc, err := e.Search()
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if loc != 2 {
		t.Errorf("hit = %d, want 2", loc)
	}
}

// ============================================================================
// Navigation Expressions
// ============================================================================

func TestGotoAbsolute(t *testing.T) {
	e := newEditor(256)
	e.SetPageRows(4)

	if err := e.Goto("100"); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if e.Cursor() != 100 {
		t.Errorf("cursor = %d, want 100", e.Cursor())
	}

	// Absolute targets past the end land on the last byte.
	if err := e.Goto("9999"); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if e.Cursor() != 255 {
		t.Errorf("cursor = %d, want 255", e.Cursor())
	}
}

func TestGotoAbsoluteHex(t *testing.T) {
	e := newEditor(256, WithOffsetFormat(format.OffsetHex))

	if err := e.Goto("ff"); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if e.Cursor() != 255 {
		t.Errorf("cursor = %d, want 255", e.Cursor())
	}
}

func TestGotoRelative(t *testing.T) {
	// Relative moves are decimal even when offsets display in hex.
	e := newEditor(256, WithOffsetFormat(format.OffsetHex))
	e.MoveTo(100, false)

	if err := e.Goto("+10"); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if e.Cursor() != 110 {
		t.Errorf("cursor = %d, want 110", e.Cursor())
	}

	if err := e.Goto("-300"); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if e.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0", e.Cursor())
	}
}

func TestGotoMalformed(t *testing.T) {
	e := newEditor(256)
	e.MoveTo(7, false)

	for _, expr := range []string{"xyz", "ff", "+", "12.5"} {
		if err := e.Goto(expr); !errors.Is(err, ErrBadOffset) {
			t.Errorf("Goto(%q) err = %v, want ErrBadOffset", expr, err)
		}
	}
	if e.Cursor() != 7 {
		t.Errorf("cursor moved on malformed input: %d", e.Cursor())
	}
}

func TestGotoEmptyIsNoop(t *testing.T) {
	e := newEditor(256)
	e.MoveTo(7, false)
	if err := e.Goto("  "); err != nil {
		t.Fatalf("Goto: %v", err)
	}
	if e.Cursor() != 7 {
		t.Errorf("cursor = %d, want 7", e.Cursor())
	}
}
