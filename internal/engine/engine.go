package engine

import (
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/engine/history"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/engine/search"
	"github.com/dshills/hexed/internal/format"
)

// Re-export commonly used types from sub-packages.
type (
	// ByteOffset is a position in the buffer.
	ByteOffset = buffer.ByteOffset
	// Change is one recorded byte-range overwrite.
	Change = buffer.Change
	// RevisionID identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Area identifies which panel owns keyboard input.
type Area int

// Input areas.
const (
	AreaData Area = iota
	AreaText
)

// String returns the area name as shown in the status bar.
func (a Area) String() string {
	if a == AreaText {
		return "text"
	}
	return "data"
}

// Toggle returns the other input area.
func (a Area) Toggle() Area {
	if a == AreaData {
		return AreaText
	}
	return AreaData
}

// Editor is the central editing coordinator. It owns the buffer and
// history and tracks the display state the renderer reads: formats,
// byte order, cursor, scroll position and the pending digit
// accumulator.
//
// All methods are thread-safe.
type Editor struct {
	mu   sync.RWMutex
	buf  *buffer.Buffer
	hist *history.History

	// Display configuration.
	dataFormat   format.Data
	textFormat   charset.Charset
	offsetFormat format.Offset
	endian       format.Endian
	mailbag      bool
	recSize      int

	// Navigation state.
	cursor    ByteOffset
	firstLine int64
	pageRows  int
	focus     Area

	// Pending digits of a partially typed byte in the data panel.
	editDigits []rune

	// Persistent search state shared with the search dialog.
	query search.Query

	maxUndo int
}

// New creates an editor over the given buffer. A nil buffer gets an
// empty in-memory one.
func New(buf *buffer.Buffer, opts ...Option) *Editor {
	e := &Editor{
		buf:          buf,
		dataFormat:   format.DataHex,
		textFormat:   charset.ASCII,
		offsetFormat: format.OffsetDecimal,
		endian:       format.LittleEndian,
		pageRows:     DefaultPageRows,
		maxUndo:      DefaultMaxUndoEntries,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.buf == nil {
		e.buf = buffer.New()
	}
	e.hist = history.New(e.maxUndo)

	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Len returns the buffer length in bytes.
func (e *Editor) Len() ByteOffset {
	return e.buf.Len()
}

// Byte returns the byte at offset and whether the offset is in range.
func (e *Editor) Byte(offset ByteOffset) (byte, bool) {
	return e.buf.Byte(offset)
}

// Bytes returns a copy of up to n bytes starting at offset, clipped to
// the buffer end.
func (e *Editor) Bytes(offset ByteOffset, n int) []byte {
	return e.buf.Bytes(offset, n)
}

// Path returns the file path backing the buffer.
func (e *Editor) Path() string {
	return e.buf.Path()
}

// Modified reports whether the buffer has unsaved changes.
func (e *Editor) Modified() bool {
	return e.buf.Modified()
}

// ReadOnly reports whether edits are rejected.
func (e *Editor) ReadOnly() bool {
	return e.buf.ReadOnly()
}

// Cursor returns the current cursor offset.
func (e *Editor) Cursor() ByteOffset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// FirstLine returns the first visible buffer row.
func (e *Editor) FirstLine() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.firstLine
}

// PageRows returns the number of visible data rows.
func (e *Editor) PageRows() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pageRows
}

// Focus returns the panel that owns keyboard input.
func (e *Editor) Focus() Area {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focus
}

// Pending returns the digits of a partially typed byte.
func (e *Editor) Pending() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return string(e.editDigits)
}

// DataFormat returns the data panel display format.
func (e *Editor) DataFormat() format.Data {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dataFormat
}

// TextFormat returns the text panel charset.
func (e *Editor) TextFormat() charset.Charset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.textFormat
}

// OffsetFormat returns the offset column display format.
func (e *Editor) OffsetFormat() format.Offset {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.offsetFormat
}

// Endian returns the byte order used by the inspector and search.
func (e *Editor) Endian() format.Endian {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.endian
}

// Mailbag reports whether the mailbag timestamp field is shown.
func (e *Editor) Mailbag() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.mailbag
}

// RecordSize returns the fixed record length, or 0 when record mode is
// off.
func (e *Editor) RecordSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.recSize
}

// Layout returns the data panel layout for the active format, shaped
// by the record size when record mode is on.
func (e *Editor) Layout() format.Layout {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.layoutLocked()
}

func (e *Editor) layoutLocked() format.Layout {
	if e.recSize > 0 {
		return e.dataFormat.RecordLayout(e.recSize)
	}
	return e.dataFormat.Layout()
}

func (e *Editor) rowBytesLocked() int64 {
	return int64(e.layoutLocked().RowBytes())
}

// RecordInfo returns the one-based record number at the cursor and the
// record count. ok is false when record mode is off.
func (e *Editor) RecordInfo() (current, total int64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.recSize <= 0 {
		return 0, 0, false
	}
	rec := int64(e.recSize)
	n := int64(e.buf.Len())
	return int64(e.cursor)/rec + 1, (n + rec - 1) / rec, true
}

// ============================================================================
// Cursor Movement and Scrolling
// ============================================================================

// MoveCursor moves the cursor by delta bytes, clamped to the buffer,
// and scrolls the view the minimum amount needed to keep it visible.
func (e *Editor) MoveCursor(delta int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.moveCursorLocked(delta, false)
}

// MoveTo places the cursor at offset, clamped to the buffer. With
// snapTop set, a cursor that lands offscreen scrolls its row to the
// top of the panel instead of the nearest edge.
func (e *Editor) MoveTo(offset ByteOffset, snapTop bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cursor = offset
	e.moveCursorLocked(0, snapTop)
}

// Home moves to the first byte.
func (e *Editor) Home() {
	e.MoveTo(0, false)
}

// End moves to the last byte.
func (e *Editor) End() {
	e.MoveTo(e.buf.Len()-1, false)
}

// PageDown scrolls one page forward and moves the cursor with it.
func (e *Editor) PageDown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.firstLine += int64(e.pageRows)
	e.moveCursorLocked(e.rowBytesLocked()*int64(e.pageRows), false)
}

// PageUp scrolls one page back and moves the cursor with it.
func (e *Editor) PageUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.firstLine -= int64(e.pageRows)
	if e.firstLine < 0 {
		e.firstLine = 0
	}
	e.moveCursorLocked(-e.rowBytesLocked()*int64(e.pageRows), false)
}

// SetPageRows tells the editor how many data rows the screen shows.
// The view calls this after every layout change so scroll math stays
// in step with the geometry.
func (e *Editor) SetPageRows(n int) {
	if n < 1 {
		n = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pageRows = n
	e.moveCursorLocked(0, false)
}

// ToggleFocus switches keyboard input between the data and text
// panels.
func (e *Editor) ToggleFocus() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focus = e.focus.Toggle()
}

// SetFocus gives keyboard input to the given panel.
func (e *Editor) SetFocus(a Area) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.focus = a
}

// moveCursorLocked applies a cursor delta and reconciles the scroll
// position. Positive deltas clamp at the last byte, negative deltas at
// zero, so a zero delta clamps both ways.
func (e *Editor) moveCursorLocked(delta int64, snapTop bool) {
	n := int64(e.buf.Len())
	if n == 0 {
		e.cursor = 0
		e.firstLine = 0
		return
	}

	c := int64(e.cursor) + delta
	if delta >= 0 && c > n-1 {
		c = n - 1
	}
	if delta <= 0 && c < 0 {
		c = 0
	}
	e.cursor = ByteOffset(c)
	e.scrollIntoViewLocked(snapTop)
}

// scrollIntoViewLocked moves firstLine so the cursor row is on screen,
// then clamps it so the view never scrolls past the last page.
func (e *Editor) scrollIntoViewLocked(snapTop bool) {
	rowBytes := e.rowBytesLocked()
	cursorLine := int64(e.cursor) / rowBytes
	lastLine := e.firstLine + int64(e.pageRows) - 1

	switch {
	case cursorLine < e.firstLine:
		e.firstLine = cursorLine
	case cursorLine > lastLine:
		if snapTop {
			e.firstLine = cursorLine
		} else {
			e.firstLine += cursorLine - lastLine
		}
	}

	eofFirst := int64(e.buf.Len())/rowBytes - int64(e.pageRows) + 1
	if eofFirst < 0 {
		eofFirst = 0
	}
	if e.firstLine > eofFirst {
		e.firstLine = eofFirst
	}
	if e.firstLine < 0 {
		e.firstLine = 0
	}
}

// normalizeLocked scrolls the cursor row to the top of the panel,
// subject to the end-of-file clamp. Used when the row width changes
// and the old scroll position no longer means anything.
func (e *Editor) normalizeLocked() {
	e.firstLine = int64(e.cursor) / e.rowBytesLocked()
	e.scrollIntoViewLocked(false)
}

// ============================================================================
// Display Configuration
// ============================================================================

// SetDataFormat switches the data panel display format. The row width
// changes with the format, so the view renormalizes around the cursor
// and any pending digits are dropped.
func (e *Editor) SetDataFormat(f format.Data) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if f == e.dataFormat {
		return
	}
	e.dataFormat = f
	e.editDigits = e.editDigits[:0]
	e.normalizeLocked()
}

// SetTextFormat switches the text panel charset.
func (e *Editor) SetTextFormat(c charset.Charset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.textFormat = c
}

// SetOffsetFormat switches the offset column display format.
func (e *Editor) SetOffsetFormat(o format.Offset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.offsetFormat = o
}

// ToggleEndian flips the byte order used by the inspector and search.
func (e *Editor) ToggleEndian() format.Endian {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endian = e.endian.Toggle()
	return e.endian
}

// SetRecordSize turns record mode on (n > 0) or off (n <= 0). Row
// width follows the record size, so the view renormalizes.
func (e *Editor) SetRecordSize(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n == e.recSize {
		return
	}
	e.recSize = n
	e.editDigits = e.editDigits[:0]
	e.normalizeLocked()
}

// SetMailbag toggles the mailbag timestamp inspector field.
func (e *Editor) SetMailbag(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mailbag = on
}

// ============================================================================
// Typing
// ============================================================================

// TypeDigit handles a printable key while the data panel has focus.
// Hex digit characters are always consumed there, even in formats that
// reject some of them, so stray letters never fall through to
// bindings. Digits valid for the format accumulate until a full byte
// is typed; the byte is written at the cursor and the cursor advances.
// Values that do not fit in a byte are discarded.
//
// The returned bool reports whether the key was consumed.
func (e *Editor) TypeDigit(r rune) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !format.IsEditDigit(r) {
		return false, nil
	}
	if !e.dataFormat.ValidDigit(r) {
		return true, nil
	}

	e.editDigits = append(e.editDigits, r)
	if len(e.editDigits) < e.layoutLocked().DigitsPerByte {
		return true, nil
	}

	digits := string(e.editDigits)
	e.editDigits = e.editDigits[:0]

	v, err := e.dataFormat.ParseByte(digits)
	if err != nil {
		return true, nil
	}
	if err := e.writeByteLocked(e.cursor, v); err != nil {
		return true, err
	}
	e.moveCursorLocked(1, false)
	return true, nil
}

// TypeText handles a printable key while the text panel has focus.
// The rune is encoded in the panel charset and written at the cursor;
// runes outside the charset are consumed without writing.
func (e *Editor) TypeText(r rune) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r < 0x20 || r > 0x7e {
		return false, nil
	}
	b, err := e.textFormat.Encode(r)
	if err != nil {
		return true, nil
	}
	if err := e.writeByteLocked(e.cursor, b); err != nil {
		return true, err
	}
	e.moveCursorLocked(1, false)
	return true, nil
}

// ClearPending drops a partially typed byte. Any key that is not part
// of the byte entry cancels it.
func (e *Editor) ClearPending() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editDigits = e.editDigits[:0]
}

func (e *Editor) writeByteLocked(offset ByteOffset, v byte) error {
	ch, err := e.buf.SetByte(offset, v)
	if err != nil {
		return err
	}
	e.hist.Record(ch)
	return nil
}

// ============================================================================
// Inspector
// ============================================================================

// InspectorValue decodes the field's value at the cursor. Fields that
// reach past the end of the buffer decode to an empty string.
func (e *Editor) InspectorValue(f inspector.Field) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	data := e.buf.Bytes(e.cursor, f.ByteCount())
	s, ok := f.Decode(data, e.endian)
	if !ok {
		return ""
	}
	return s
}

// ApplyField encodes the input in the field's representation and
// writes the bytes at the cursor.
func (e *Editor) ApplyField(f inspector.Field, input string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, err := f.Encode(input, e.endian)
	if err != nil {
		return err
	}
	ch, err := e.buf.WriteAt(e.cursor, data)
	if err != nil {
		return err
	}
	e.hist.Record(ch)
	return nil
}

// ============================================================================
// Undo / Redo
// ============================================================================

// Undo reverts the most recent change and moves the cursor to it.
func (e *Editor) Undo() (Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch, err := e.hist.Undo(e.buf)
	if err != nil {
		return Change{}, err
	}
	e.cursor = ch.Offset
	e.moveCursorLocked(0, false)
	return ch, nil
}

// Redo reapplies the most recently undone change and moves the cursor
// to it.
func (e *Editor) Redo() (Change, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ch, err := e.hist.Redo(e.buf)
	if err != nil {
		return Change{}, err
	}
	e.cursor = ch.Offset
	e.moveCursorLocked(0, false)
	return ch, nil
}

// CanUndo reports whether there is a change to undo.
func (e *Editor) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo reports whether there is an undone change to reapply.
func (e *Editor) CanRedo() bool {
	return e.hist.CanRedo()
}

// ============================================================================
// File Operations
// ============================================================================

// Save writes the buffer back to its file.
func (e *Editor) Save() error {
	return e.buf.Save()
}

// SaveAs writes the buffer to path and rebinds the buffer to it.
func (e *Editor) SaveAs(path string) error {
	return e.buf.SaveAs(path)
}

// ============================================================================
// Search
// ============================================================================

// Query returns the persistent search state.
func (e *Editor) Query() search.Query {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query
}

// SetQuery replaces the persistent search state.
func (e *Editor) SetQuery(q search.Query) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.query = q
}

// Search runs the stored query from the cursor. On a hit the cursor
// moves to the match; on a miss the cursor stays put and the error is
// buffer.ErrNotFound.
func (e *Editor) Search() (ByteOffset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	needle, err := e.query.Needle(e.dataFormat, e.textFormat, e.endian)
	if err != nil {
		return 0, err
	}
	loc, err := search.Run(e.buf, e.query.Direction, needle, e.cursor)
	if err != nil {
		return 0, err
	}
	e.cursor = loc
	e.moveCursorLocked(0, false)
	return loc, nil
}

// ============================================================================
// Navigation Expressions
// ============================================================================

// Goto interprets a navigate expression. A leading + or - moves the
// cursor relative to its position, always in decimal. Anything else is
// an absolute offset, read as hex when the offset column displays hex
// and decimal otherwise. The result is clamped to the buffer and the
// view renormalizes when the target was offscreen.
func (e *Editor) Goto(expr string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}

	var target int64
	switch expr[0] {
	case '+', '-':
		n, err := strconv.ParseInt(expr, 10, 64)
		if err != nil {
			return ErrBadOffset
		}
		target = int64(e.cursor) + n
	default:
		base := 10
		if e.offsetFormat == format.OffsetHex {
			base = 16
		}
		n, err := strconv.ParseInt(expr, base, 64)
		if err != nil {
			return ErrBadOffset
		}
		target = n
	}

	e.cursor = ByteOffset(target)
	e.moveCursorLocked(0, true)
	return nil
}
