package key

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/hexed/internal/renderer/backend"
)

// Parse errors
var (
	ErrEmptySpec = errors.New("empty key specification")
	ErrBadSpec   = errors.New("invalid key specification")
)

// Parse parses a key specification into a Chord.
//
// Supported forms:
//   - Single character: "a", "G", "/"
//   - Named keys: "Enter", "Esc", "Tab", "BackTab", "Home", "PgUp", "F10"
//   - Ctrl combinations: "C-g", "Ctrl-g", "Ctrl+G", "C-Space"
//
// Names are case-insensitive; single characters are taken as typed.
func Parse(spec string) (Chord, error) {
	s := strings.TrimSpace(spec)
	if s == "" {
		return Chord{}, ErrEmptySpec
	}

	lower := strings.ToLower(strings.ReplaceAll(s, "+", "-"))
	if rest, ok := strings.CutPrefix(lower, "ctrl-"); ok {
		return parseCtrl(spec, rest)
	}
	if rest, ok := strings.CutPrefix(lower, "c-"); ok {
		return parseCtrl(spec, rest)
	}

	if c, ok := named(lower); ok {
		return c, nil
	}

	runes := []rune(s)
	if len(runes) == 1 && runes[0] >= 0x20 && runes[0] != 0x7f {
		return Chord{Key: backend.KeyRune, Rune: runes[0]}, nil
	}
	return Chord{}, fmt.Errorf("%w: %q", ErrBadSpec, spec)
}

// MustParse parses a key specification and panics on error. For
// known-valid specs in initialization code.
func MustParse(spec string) Chord {
	c, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return c
}

func parseCtrl(spec, rest string) (Chord, error) {
	if rest == "space" {
		return Chord{Key: backend.KeyCtrlSpace}, nil
	}
	runes := []rune(rest)
	if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
		return Chord{Key: backend.KeyCtrlA + backend.Key(runes[0]-'a')}, nil
	}
	return Chord{}, fmt.Errorf("%w: %q", ErrBadSpec, spec)
}

func named(lower string) (Chord, bool) {
	switch lower {
	case "enter", "cr", "return":
		return Chord{Key: backend.KeyEnter}, true
	case "esc", "escape":
		return Chord{Key: backend.KeyEscape}, true
	case "tab":
		return Chord{Key: backend.KeyTab}, true
	case "backtab", "shift-tab", "s-tab":
		return Chord{Key: backend.KeyBacktab}, true
	case "bs", "backspace":
		return Chord{Key: backend.KeyBackspace}, true
	case "del", "delete":
		return Chord{Key: backend.KeyDelete}, true
	case "ins", "insert":
		return Chord{Key: backend.KeyInsert}, true
	case "home":
		return Chord{Key: backend.KeyHome}, true
	case "end":
		return Chord{Key: backend.KeyEnd}, true
	case "pgup", "pageup":
		return Chord{Key: backend.KeyPageUp}, true
	case "pgdn", "pagedown":
		return Chord{Key: backend.KeyPageDown}, true
	case "up":
		return Chord{Key: backend.KeyUp}, true
	case "down":
		return Chord{Key: backend.KeyDown}, true
	case "left":
		return Chord{Key: backend.KeyLeft}, true
	case "right":
		return Chord{Key: backend.KeyRight}, true
	case "space":
		return Chord{Key: backend.KeyRune, Rune: ' '}, true
	}
	if rest, ok := strings.CutPrefix(lower, "f"); ok {
		if n, ok := fkeyNumber(rest); ok {
			return Chord{Key: backend.KeyF1 + backend.Key(n-1)}, true
		}
	}
	return Chord{}, false
}

func fkeyNumber(s string) (int, bool) {
	if s == "" || len(s) > 2 {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 || n > 12 {
		return 0, false
	}
	return n, true
}
