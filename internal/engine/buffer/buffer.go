package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrReadOnly         = errors.New("buffer is read-only")
	ErrEmptyNeedle      = errors.New("empty search needle")
	ErrNotFound         = errors.New("not found")
	ErrNoPath           = errors.New("buffer has no file path")
)

// Buffer holds the bytes of the file being edited.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	data       []byte
	path       string
	readOnly   bool
	modified   bool
	revisionID RevisionID
}

// New creates a new empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromBytes creates a buffer with initial content.
// The data slice is copied; the caller keeps ownership of its slice.
func NewFromBytes(data []byte, opts ...Option) *Buffer {
	b := New(opts...)
	b.data = make([]byte, len(data))
	copy(b.data, data)
	return b
}

// Load reads the file at path into a new buffer.
func Load(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	b := New(opts...)
	b.data = data
	b.path = path
	return b, nil
}

// Read Operations

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.data))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.data) == 0
}

// Byte returns the byte at the given offset.
func (b *Buffer) Byte(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset >= ByteOffset(len(b.data)) {
		return 0, false
	}
	return b.data[offset], true
}

// Bytes returns a copy of up to n bytes starting at offset.
// The window is truncated at the end of the buffer; a window starting
// at or past the end is empty.
func (b *Buffer) Bytes(offset ByteOffset, n int) []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || n <= 0 || offset >= ByteOffset(len(b.data)) {
		return nil
	}
	end := offset + ByteOffset(n)
	if end > ByteOffset(len(b.data)) {
		end = ByteOffset(len(b.data))
	}
	out := make([]byte, end-offset)
	copy(out, b.data[offset:end])
	return out
}

// Write Operations

// SetByte overwrites the single byte at offset.
// Returns the applied change for undo recording.
func (b *Buffer) SetByte(offset ByteOffset, v byte) (Change, error) {
	return b.WriteAt(offset, []byte{v})
}

// WriteAt overwrites len(data) bytes starting at offset. The write must
// fit entirely inside the buffer; overwriting never extends the file.
// Returns the applied change for undo recording.
func (b *Buffer) WriteAt(offset ByteOffset, data []byte) (Change, error) {
	if len(data) == 0 {
		return Change{Offset: offset}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.readOnly {
		return Change{}, ErrReadOnly
	}
	if offset < 0 || offset+ByteOffset(len(data)) > ByteOffset(len(b.data)) {
		return Change{}, ErrOffsetOutOfRange
	}

	old := make([]byte, len(data))
	copy(old, b.data[offset:])
	copy(b.data[offset:], data)

	b.modified = true
	b.revisionID = NewRevisionID()

	newCopy := make([]byte, len(data))
	copy(newCopy, data)
	return Change{Offset: offset, Old: old, New: newCopy}, nil
}

// Apply re-applies a previously recorded change. Used by undo/redo.
func (b *Buffer) Apply(c Change) error {
	_, err := b.WriteAt(c.Offset, c.New)
	return err
}

// Search

// Find returns the offset of the first occurrence of needle at or after
// the given offset.
func (b *Buffer) Find(needle []byte, from ByteOffset) (ByteOffset, error) {
	if len(needle) == 0 {
		return 0, ErrEmptyNeedle
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if from < 0 {
		from = 0
	}
	if from >= ByteOffset(len(b.data)) {
		return 0, ErrNotFound
	}
	idx := bytes.Index(b.data[from:], needle)
	if idx < 0 {
		return 0, ErrNotFound
	}
	return from + ByteOffset(idx), nil
}

// FindBackward returns the offset of the last occurrence of needle that
// starts strictly before the given offset.
func (b *Buffer) FindBackward(needle []byte, before ByteOffset) (ByteOffset, error) {
	if len(needle) == 0 {
		return 0, ErrEmptyNeedle
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	// A match starting at i occupies [i, i+len). Restrict the searched
	// region so that the rightmost allowed start is before-1.
	limit := int(before) - 1 + len(needle)
	if limit > len(b.data) {
		limit = len(b.data)
	}
	if limit < len(needle) {
		return 0, ErrNotFound
	}
	idx := bytes.LastIndex(b.data[:limit], needle)
	if idx < 0 {
		return 0, ErrNotFound
	}
	return ByteOffset(idx), nil
}

// Persistence

// Path returns the file path the buffer was loaded from or will save to.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Save writes the full buffer back to its path and clears the modified
// flag. There are no safety rails: if the file is writable, it is
// overwritten in place.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saveLocked()
}

// SaveAs retargets the buffer to path, then saves.
func (b *Buffer) SaveAs(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if path == "" {
		return ErrNoPath
	}
	b.path = path
	return b.saveLocked()
}

func (b *Buffer) saveLocked() error {
	if b.readOnly {
		return ErrReadOnly
	}
	if b.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(b.path, b.data, 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", b.path, err)
	}
	b.modified = false
	return nil
}

// Buffer State

// Modified returns true if the buffer has unsaved changes.
func (b *Buffer) Modified() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.modified
}

// ReadOnly returns true if the buffer refuses writes.
func (b *Buffer) ReadOnly() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.readOnly
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// Snapshot returns a read-only copy of the current buffer state.
// Safe for concurrent access from other goroutines. The data is copied,
// so snapshots of large files are not free.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data := make([]byte, len(b.data))
	copy(data, b.data)

	return &Snapshot{
		data:       data,
		path:       b.path,
		modified:   b.modified,
		revisionID: b.revisionID,
	}
}
