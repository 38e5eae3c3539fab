// Package buffer provides a thread-safe byte buffer holding the file being
// edited. The whole file is kept in memory; edits overwrite bytes in place
// and never change the buffer length.
//
// The buffer package provides:
//
//   - Thread-safe read/write access via sync.RWMutex
//   - Overwrite-only writes that report the replaced bytes for undo
//   - Forward and backward substring search
//   - Save and save-as with read-only protection
//   - Revision tracking for change detection
//
// Basic usage:
//
//	buf, err := buffer.Load("data.bin")
//	if err != nil { ... }
//
//	ch, err := buf.SetByte(0x10, 0xFF)
//	if err != nil { ... }
//	// ch.Old holds the previous byte for undo
//
//	if err := buf.Save(); err != nil { ... }
//
// Thread Safety:
//
// All Buffer methods are thread-safe. Read operations acquire a read lock,
// write operations acquire an exclusive write lock.
package buffer
