package dialog

import (
	"strings"
	"testing"

	"github.com/dshills/hexed/internal/engine/search"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

func newTextSearch(onSearch func(search.Query) bool) *Search {
	q := search.Query{Term: "abc", Format: search.FormatText}
	return NewSearch(q, core.DefaultStyle(), onSearch)
}

func TestSearchDrawLayout(t *testing.T) {
	b := backend.NewNullBackend(80, 25)
	if err := b.Init(); err != nil {
		t.Fatalf("backend init: %v", err)
	}
	s := newTextSearch(nil)
	s.Draw(b)

	border := "+" + strings.Repeat("-", 53) + "+"
	if got := b.RowString(0); got != border {
		t.Errorf("top border = %q, want %q", got, border)
	}
	if got := b.RowString(11); got != border {
		t.Errorf("bottom border = %q, want %q", got, border)
	}
	if got := b.RowString(1); !strings.HasPrefix(got, "|^Text: abc") {
		t.Errorf("term row = %q, want prefix %q", got, "|^Text: abc")
	}
	dir := "|  ^Direction: [*] Forward  [ ] Backward" + strings.Repeat(" ", 14) + "|"
	if got := b.RowString(3); got != dir {
		t.Errorf("direction row = %q, want %q", got, dir)
	}
	if got := b.RowString(5); !strings.HasPrefix(got, "|  ^Format") {
		t.Errorf("format header = %q", got)
	}
	row6 := "|    [ ] S8   [ ] S16   [ ] S32   [ ] Data" + strings.Repeat(" ", 12) + "|"
	if got := b.RowString(6); got != row6 {
		t.Errorf("format row 6 = %q, want %q", got, row6)
	}
	row7 := "|    [ ] U8   [ ] U16   [ ] U32   [*] Text" + strings.Repeat(" ", 12) + "|"
	if got := b.RowString(7); got != row7 {
		t.Errorf("format row 7 = %q, want %q", got, row7)
	}
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden outside the term editor")
	}
}

func TestSearchToggleDirection(t *testing.T) {
	b := backend.NewNullBackend(80, 25)
	if err := b.Init(); err != nil {
		t.Fatalf("backend init: %v", err)
	}
	s := newTextSearch(nil)

	if res := s.Handle(keyEv(backend.KeyCtrlD)); res != Continue {
		t.Fatalf("Ctrl-D = %v, want Continue", res)
	}
	if got := s.Query().Direction; got != search.Backward {
		t.Errorf("Direction = %v, want Backward", got)
	}
	s.Draw(b)
	if got := b.RowString(3); !strings.Contains(got, "[ ] Forward  [*] Backward") {
		t.Errorf("direction row = %q", got)
	}
}

func TestSearchCycleFormat(t *testing.T) {
	s := newTextSearch(nil)
	s.Handle(keyEv(backend.KeyCtrlF))
	if got := s.Query().Format; got != search.FormatS8 {
		t.Errorf("Format = %v, want FormatS8 after Text", got)
	}
}

func TestSearchTermEditor(t *testing.T) {
	b := backend.NewNullBackend(80, 25)
	if err := b.Init(); err != nil {
		t.Fatalf("backend init: %v", err)
	}
	s := newTextSearch(nil)

	s.Handle(keyEv(backend.KeyCtrlT))
	s.Draw(b)
	if got := b.RowString(1); !strings.HasPrefix(got, "|^Text:|abc") {
		t.Errorf("editing row = %q, want boxed field with current term", got)
	}
	x, y, visible := b.CursorPosition()
	if !visible || x != 11 || y != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (11,1,true)", x, y, visible)
	}

	typeString(t, s, "x")
	if res := s.Handle(keyEv(backend.KeyEnter)); res != Continue {
		t.Fatalf("Enter in editor = %v, want Continue", res)
	}
	if got := s.Query().Term; got != "abcx" {
		t.Errorf("Term = %q, want %q", got, "abcx")
	}
}

func TestSearchTermEditorEscapeKeepsTerm(t *testing.T) {
	s := newTextSearch(nil)
	s.Handle(keyEv(backend.KeyCtrlT))
	typeString(t, s, "zzz")
	s.Handle(keyEv(backend.KeyEscape))
	if got := s.Query().Term; got != "abc" {
		t.Errorf("Term = %q, want unchanged %q", got, "abc")
	}
}

func TestSearchEnterRunsQuery(t *testing.T) {
	var got search.Query
	hit := false
	s := newTextSearch(func(q search.Query) bool { got = q; return hit })

	if res := s.Handle(keyEv(backend.KeyEnter)); res != Continue {
		t.Errorf("miss = %v, want Continue", res)
	}
	if got.Term != "abc" || got.Format != search.FormatText {
		t.Errorf("query = %+v", got)
	}

	hit = true
	if res := s.Handle(keyEv(backend.KeyEnter)); res != Done {
		t.Errorf("hit = %v, want Done", res)
	}
}

func TestSearchEscapeCloses(t *testing.T) {
	called := false
	s := newTextSearch(func(search.Query) bool { called = true; return true })
	if res := s.Handle(keyEv(backend.KeyEscape)); res != Done {
		t.Errorf("Escape = %v, want Done", res)
	}
	if called {
		t.Error("escape should not run the query")
	}
}

func TestSearchClickZones(t *testing.T) {
	tests := []struct {
		name      string
		row, col  int
		direction search.Direction
		format    search.Format
	}{
		{"forward", 3, 15, search.Forward, search.FormatText},
		{"forward right edge", 3, 25, search.Forward, search.FormatText},
		{"backward", 3, 28, search.Backward, search.FormatText},
		{"backward right edge", 3, 39, search.Backward, search.FormatText},
		{"s8", 6, 5, search.Forward, search.FormatS8},
		{"s8 right edge", 6, 10, search.Forward, search.FormatS8},
		{"s16", 6, 14, search.Forward, search.FormatS16},
		{"s32", 6, 30, search.Forward, search.FormatS32},
		{"data", 6, 41, search.Forward, search.FormatData},
		{"u8", 7, 5, search.Forward, search.FormatU8},
		{"u16", 7, 20, search.Forward, search.FormatU16},
		{"u32", 7, 24, search.Forward, search.FormatU32},
		{"text", 7, 34, search.Forward, search.FormatText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTextSearch(nil)
			// Seed the opposite value so the click has to set it.
			if tt.row == 3 && tt.direction == search.Forward {
				s.Handle(keyEv(backend.KeyCtrlD))
			}
			if tt.row != 3 && tt.format == search.FormatText {
				s.Handle(keyEv(backend.KeyCtrlF))
			}
			if res := s.Handle(clickEv(tt.row, tt.col)); res != Continue {
				t.Fatalf("click = %v, want Continue", res)
			}
			if got := s.Query().Direction; got != tt.direction {
				t.Errorf("Direction = %v, want %v", got, tt.direction)
			}
			if got := s.Query().Format; got != tt.format {
				t.Errorf("Format = %v, want %v", got, tt.format)
			}
		})
	}
}

func TestSearchClickOutsideZones(t *testing.T) {
	s := newTextSearch(nil)
	for _, c := range []struct{ row, col int }{{3, 26}, {6, 11}, {6, 42}, {9, 5}} {
		s.Handle(clickEv(c.row, c.col))
	}
	q := s.Query()
	if q.Direction != search.Forward || q.Format != search.FormatText {
		t.Errorf("query changed by dead clicks: %+v", q)
	}
}

func TestSearchClickTermOpensEditor(t *testing.T) {
	s := newTextSearch(nil)
	s.Handle(clickEv(1, 1))
	typeString(t, s, "!")
	s.Handle(keyEv(backend.KeyEnter))
	if got := s.Query().Term; got != "abc!" {
		t.Errorf("Term = %q, want %q", got, "abc!")
	}
}

func TestSearchClickPastTermIgnored(t *testing.T) {
	s := newTextSearch(nil)
	s.Handle(clickEv(1, 11))
	typeString(t, s, "q")
	if got := s.Query().Term; got != "abc" {
		t.Errorf("Term = %q, want unchanged", got)
	}
}
