// Package engine coordinates the state of one hex editing session.
//
// The engine package is the facade over the editing sub-packages,
// combining file bytes, undo history, display formats, cursor movement
// and search into a single thread-safe API:
//
//   - buffer: file bytes with overwrite-only edits
//   - history: undo/redo stacks of recorded byte changes
//   - inspector: typed value decoding and encoding at the cursor
//   - search: needle construction and directional buffer scans
//
// # Thread Safety
//
// All Editor operations are thread-safe. The editor uses a read-write
// mutex so concurrent readers (the renderer polling state) never block
// each other, while writes are serialized.
//
// # Basic Usage
//
// Load a file and edit it:
//
//	buf, err := buffer.Load("data.bin")
//	if err != nil {
//		return err
//	}
//	ed := engine.New(buf, engine.WithDataFormat(format.DataHex))
//	ed.SetPageRows(24)
//
//	ed.MoveCursor(16)         // down one row in hex layout
//	ed.TypeDigit('f')         // first nibble of a byte edit
//	ed.TypeDigit('f')         // second nibble writes 0xff
//	if _, err := ed.Undo(); err != nil {
//		return err
//	}
//
// The view layer reads geometry inputs (Layout, FirstLine, Cursor) and
// bytes (Byte, Bytes) through the same facade.
package engine
