// Package key names key combinations in a bindable form. A Chord is
// what a keymap binds: either a special key (including the Ctrl
// combinations the terminal reports as distinct keys) or a plain
// rune. Specs parse from strings like "C-g", "F10", "PgUp" or "x".
package key

import (
	"fmt"

	"github.com/dshills/hexed/internal/renderer/backend"
)

// Chord is a single bindable key combination.
type Chord struct {
	Key  backend.Key
	Rune rune // set when Key is backend.KeyRune
}

// ChordOf converts a key event into its chord. Non-key events return
// the zero chord.
func ChordOf(ev backend.Event) Chord {
	if ev.Type != backend.EventKey {
		return Chord{}
	}
	if ev.Key == backend.KeyRune {
		return Chord{Key: backend.KeyRune, Rune: ev.Rune}
	}
	return Chord{Key: ev.Key}
}

// IsZero reports whether the chord names no key.
func (c Chord) IsZero() bool {
	return c.Key == backend.KeyNone && c.Rune == 0
}

// String renders the chord in spec form, parseable by Parse.
func (c Chord) String() string {
	switch {
	case c.Key == backend.KeyRune:
		if c.Rune == ' ' {
			return "Space"
		}
		return string(c.Rune)
	case c.Key == backend.KeyCtrlSpace:
		return "C-Space"
	case c.Key >= backend.KeyCtrlA && c.Key <= backend.KeyCtrlZ:
		return "C-" + string(rune('a'+int(c.Key-backend.KeyCtrlA)))
	case c.Key >= backend.KeyF1 && c.Key <= backend.KeyF12:
		return fmt.Sprintf("F%d", int(c.Key-backend.KeyF1)+1)
	}
	switch c.Key {
	case backend.KeyEnter:
		return "Enter"
	case backend.KeyEscape:
		return "Esc"
	case backend.KeyTab:
		return "Tab"
	case backend.KeyBacktab:
		return "BackTab"
	case backend.KeyBackspace:
		return "BS"
	case backend.KeyDelete:
		return "Del"
	case backend.KeyInsert:
		return "Ins"
	case backend.KeyHome:
		return "Home"
	case backend.KeyEnd:
		return "End"
	case backend.KeyPageUp:
		return "PgUp"
	case backend.KeyPageDown:
		return "PgDn"
	case backend.KeyUp:
		return "Up"
	case backend.KeyDown:
		return "Down"
	case backend.KeyLeft:
		return "Left"
	case backend.KeyRight:
		return "Right"
	}
	return fmt.Sprintf("key(%d)", int(c.Key))
}
