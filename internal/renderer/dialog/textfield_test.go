package dialog

import (
	"testing"

	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

func fieldKeys(t *testing.T, f *TextField, evs ...backend.Event) {
	t.Helper()
	for _, ev := range evs {
		f.HandleKey(ev)
	}
}

func TestTextFieldTyping(t *testing.T) {
	f := NewTextField(20)
	fieldKeys(t, f, runeEv('a'), runeEv('b'), runeEv('c'))
	if got := f.Value(); got != "abc" {
		t.Fatalf("Value() = %q, want %q", got, "abc")
	}

	fieldKeys(t, f, keyEv(backend.KeyLeft), keyEv(backend.KeyLeft), runeEv('X'))
	if got := f.Value(); got != "aXbc" {
		t.Errorf("after insert = %q, want %q", got, "aXbc")
	}
	fieldKeys(t, f, keyEv(backend.KeyBackspace))
	if got := f.Value(); got != "abc" {
		t.Errorf("after backspace = %q, want %q", got, "abc")
	}
	fieldKeys(t, f, keyEv(backend.KeyDelete))
	if got := f.Value(); got != "ac" {
		t.Errorf("after delete = %q, want %q", got, "ac")
	}
}

func TestTextFieldHomeEnd(t *testing.T) {
	f := NewTextField(20)
	f.SetValue("abc")
	fieldKeys(t, f, keyEv(backend.KeyHome), runeEv('0'))
	if got := f.Value(); got != "0abc" {
		t.Errorf("after home insert = %q, want %q", got, "0abc")
	}
	fieldKeys(t, f, keyEv(backend.KeyEnd), runeEv('9'))
	if got := f.Value(); got != "0abc9" {
		t.Errorf("after end insert = %q, want %q", got, "0abc9")
	}
}

func TestTextFieldCapacity(t *testing.T) {
	f := NewTextField(3)
	fieldKeys(t, f, runeEv('a'), runeEv('b'), runeEv('c'), runeEv('d'))
	if got := f.Value(); got != "abc" {
		t.Errorf("Value() = %q, want %q", got, "abc")
	}
}

func TestTextFieldSetValueTruncates(t *testing.T) {
	f := NewTextField(4)
	f.SetValue("abcdef")
	if got := f.Value(); got != "abcd" {
		t.Errorf("Value() = %q, want %q", got, "abcd")
	}
}

func TestTextFieldIgnoresControlRunes(t *testing.T) {
	f := NewTextField(10)
	if !f.HandleKey(runeEv(0x07)) {
		t.Error("control rune should be consumed")
	}
	if got := f.Value(); got != "" {
		t.Errorf("Value() = %q, want empty", got)
	}
	if f.HandleKey(keyEv(backend.KeyF1)) {
		t.Error("F1 is not an editing key")
	}
}

func TestTextFieldDraw(t *testing.T) {
	b := backend.NewNullBackend(20, 5)
	f := NewTextField(5)
	f.SetValue("ab")
	f.Draw(b, 0, 2, core.DefaultStyle())

	if got := b.RowString(0); got != "  ab" {
		t.Errorf("row = %q, want %q", got, "  ab")
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 4 || y != 0 {
		t.Errorf("cursor = (%d,%d,%v), want (4,0,true)", x, y, visible)
	}
}

func TestTextFieldDrawCursorAtCapacity(t *testing.T) {
	b := backend.NewNullBackend(20, 5)
	f := NewTextField(3)
	f.SetValue("abc")
	f.Draw(b, 0, 0, core.DefaultStyle())

	x, _, _ := b.CursorPosition()
	if x != 2 {
		t.Errorf("cursor x = %d, want 2 at capacity", x)
	}
}
