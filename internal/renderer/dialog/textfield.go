package dialog

import (
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// TextField is a single-line edit box with a capacity limit. It
// handles the usual editing keys and leaves submit and cancel to its
// owner.
type TextField struct {
	runes  []rune
	cursor int
	max    int
}

// NewTextField creates an empty field that holds at most max runes.
func NewTextField(max int) *TextField {
	if max < 1 {
		max = 1
	}
	return &TextField{max: max}
}

// SetValue replaces the field contents and moves the cursor to the
// end. Values longer than the capacity are truncated.
func (f *TextField) SetValue(s string) {
	rs := []rune(s)
	if len(rs) > f.max {
		rs = rs[:f.max]
	}
	f.runes = rs
	f.cursor = len(rs)
}

// Value returns the current contents.
func (f *TextField) Value() string { return string(f.runes) }

// HandleKey applies an editing key and reports whether it was
// consumed. Enter and Escape are not editing keys.
func (f *TextField) HandleKey(ev backend.Event) bool {
	switch ev.Key {
	case backend.KeyLeft:
		if f.cursor > 0 {
			f.cursor--
		}
	case backend.KeyRight:
		if f.cursor < len(f.runes) {
			f.cursor++
		}
	case backend.KeyHome:
		f.cursor = 0
	case backend.KeyEnd:
		f.cursor = len(f.runes)
	case backend.KeyBackspace:
		if f.cursor > 0 {
			f.runes = append(f.runes[:f.cursor-1], f.runes[f.cursor:]...)
			f.cursor--
		}
	case backend.KeyDelete:
		if f.cursor < len(f.runes) {
			f.runes = append(f.runes[:f.cursor], f.runes[f.cursor+1:]...)
		}
	case backend.KeyRune:
		if ev.Rune < 0x20 || ev.Rune == 0x7f || len(f.runes) >= f.max {
			return true
		}
		f.runes = append(f.runes, 0)
		copy(f.runes[f.cursor+1:], f.runes[f.cursor:])
		f.runes[f.cursor] = ev.Rune
		f.cursor++
	default:
		return false
	}
	return true
}

// Draw paints the field padded to its capacity and places the
// hardware cursor at the edit position.
func (f *TextField) Draw(b backend.Backend, row, col int, style core.Style) {
	for i := 0; i < f.max; i++ {
		r := ' '
		if i < len(f.runes) {
			r = f.runes[i]
		}
		b.SetCell(col+i, row, core.NewStyledCell(r, style))
	}
	cur := col + f.cursor
	if f.cursor >= f.max {
		cur = col + f.max - 1
	}
	b.ShowCursor(cur, row)
}
