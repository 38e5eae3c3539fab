package history

import (
	"errors"
	"testing"

	"github.com/dshills/hexed/internal/engine/buffer"
)

func writeByte(t *testing.T, buf *buffer.Buffer, h *History, off buffer.ByteOffset, v byte) {
	t.Helper()
	ch, err := buf.SetByte(off, v)
	if err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	h.Record(ch)
}

func TestUndoRevertsWrite(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{0x11, 0x22})
	h := New(0)

	writeByte(t, buf, h, 0, 0xAA)

	ch, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if v, _ := buf.Byte(0); v != 0x11 {
		t.Errorf("expected 0x11 restored, got %#02x", v)
	}

	if ch.Offset != 0 {
		t.Errorf("expected change at offset 0, got %d", ch.Offset)
	}
}

func TestRedoReappliesWrite(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{0x11})
	h := New(0)

	writeByte(t, buf, h, 0, 0xAA)

	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	if _, err := h.Redo(buf); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}

	if v, _ := buf.Byte(0); v != 0xAA {
		t.Errorf("expected 0xAA reapplied, got %#02x", v)
	}
}

func TestUndoEmpty(t *testing.T) {
	h := New(0)
	buf := buffer.NewFromBytes([]byte{1})

	if _, err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestRedoEmpty(t *testing.T) {
	h := New(0)
	buf := buffer.NewFromBytes([]byte{1})

	if _, err := h.Redo(buf); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("expected ErrNothingToRedo, got %v", err)
	}
}

func TestNewWriteClearsRedo(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{1, 2})
	h := New(0)

	writeByte(t, buf, h, 0, 0xAA)
	if _, err := h.Undo(buf); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}

	writeByte(t, buf, h, 1, 0xBB)

	if h.CanRedo() {
		t.Error("expected redo stack cleared after new write")
	}
}

func TestUndoOrderIsLIFO(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{0, 0, 0})
	h := New(0)

	writeByte(t, buf, h, 0, 1)
	writeByte(t, buf, h, 1, 2)
	writeByte(t, buf, h, 2, 3)

	ch, err := h.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if ch.Offset != 2 {
		t.Errorf("expected last write undone first, got offset %d", ch.Offset)
	}

	ch, err = h.Undo(buf)
	if err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if ch.Offset != 1 {
		t.Errorf("expected offset 1, got %d", ch.Offset)
	}
}

func TestNoOpChangesNotRecorded(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{0x11})
	h := New(0)

	ch, err := buf.SetByte(0, 0x11) // same value
	if err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	h.Record(ch)

	if h.CanUndo() {
		t.Error("no-op change should not be recorded")
	}
}

func TestMaxEntriesEvictsOldest(t *testing.T) {
	buf := buffer.NewFromBytes(make([]byte, 10))
	h := New(3)

	for i := 0; i < 5; i++ {
		writeByte(t, buf, h, buffer.ByteOffset(i), byte(i+1))
	}

	if h.UndoCount() != 3 {
		t.Fatalf("expected 3 entries, got %d", h.UndoCount())
	}

	// Undo everything that is left: offsets 4, 3, 2.
	for _, want := range []buffer.ByteOffset{4, 3, 2} {
		ch, err := h.Undo(buf)
		if err != nil {
			t.Fatalf("Undo failed: %v", err)
		}
		if ch.Offset != want {
			t.Errorf("expected offset %d, got %d", want, ch.Offset)
		}
	}

	if _, err := h.Undo(buf); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo after oldest entries evicted, got %v", err)
	}
}

func TestUndoFailureRestoresEntry(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{1}, buffer.WithPath("x"))
	h := New(0)

	// Record a change against a different, read-only buffer target.
	ch, err := buf.SetByte(0, 2)
	if err != nil {
		t.Fatalf("SetByte failed: %v", err)
	}
	h.Record(ch)

	ro := buffer.NewFromBytes([]byte{2}, buffer.WithReadOnly())
	if _, err := h.Undo(ro); !errors.Is(err, buffer.ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}

	if !h.CanUndo() {
		t.Error("entry should be restored after failed undo")
	}
}

func TestPeek(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{9})
	h := New(0)

	if _, ok := h.PeekUndo(); ok {
		t.Error("expected no undo entry to peek")
	}

	writeByte(t, buf, h, 0, 7)

	ch, ok := h.PeekUndo()
	if !ok || ch.Offset != 0 {
		t.Errorf("unexpected peek result: %v ok=%v", ch, ok)
	}

	if h.UndoCount() != 1 {
		t.Error("peek must not consume the entry")
	}
}

func TestClear(t *testing.T) {
	buf := buffer.NewFromBytes([]byte{1})
	h := New(0)

	writeByte(t, buf, h, 0, 2)
	h.Clear()

	if h.CanUndo() || h.CanRedo() {
		t.Error("expected empty history after Clear")
	}
}
