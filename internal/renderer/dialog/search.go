package dialog

import (
	"fmt"
	"strings"

	"github.com/dshills/hexed/internal/engine/search"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// Search dialog geometry. The window sits at the top left so the data
// area below stays readable while stepping through matches.
const (
	searchRows = 12
	searchCols = 55
)

// Search edits a query and runs it without closing, so repeated Enter
// presses step through matches. Ctrl-T edits the term, Ctrl-D toggles
// direction, Ctrl-F cycles the term format, Escape closes.
type Search struct {
	query    search.Query
	field    *TextField
	editing  bool
	style    core.Style
	onSearch func(search.Query) bool
}

// NewSearch creates the dialog seeded with the last query. onSearch
// runs the query and reports whether the dialog should close.
func NewSearch(q search.Query, style core.Style, onSearch func(search.Query) bool) *Search {
	return &Search{
		query:    q,
		field:    NewTextField(search.MaxTermLen),
		style:    style,
		onSearch: onSearch,
	}
}

// Query returns the query as currently edited. The owner persists it
// when the dialog closes, whether or not a search ran.
func (s *Search) Query() search.Query { return s.query }

// Handle processes dialog keys, the term editor, and click zones.
func (s *Search) Handle(ev backend.Event) Result {
	switch ev.Type {
	case backend.EventKey:
		return s.handleKey(ev)
	case backend.EventMouse:
		return s.handleClick(ev.MouseY, ev.MouseX)
	}
	return Continue
}

func (s *Search) handleKey(ev backend.Event) Result {
	if s.editing {
		switch ev.Key {
		case backend.KeyEnter:
			s.query.Term = strings.TrimSpace(s.field.Value())
			s.editing = false
		case backend.KeyEscape:
			s.editing = false
		default:
			s.field.HandleKey(ev)
		}
		return Continue
	}
	switch ev.Key {
	case backend.KeyCtrlT:
		s.openTermEditor()
	case backend.KeyCtrlD:
		s.query.Direction = s.query.Direction.Toggle()
	case backend.KeyCtrlF:
		s.query.Format = s.query.Format.Next()
	case backend.KeyEnter:
		if s.onSearch != nil && s.onSearch(s.query) {
			return Done
		}
	case backend.KeyEscape:
		return Done
	}
	return Continue
}

func (s *Search) openTermEditor() {
	s.editing = true
	s.field.SetValue(s.query.Term)
}

// handleClick maps clicks onto the term line and the direction and
// format selectors.
func (s *Search) handleClick(row, col int) Result {
	if s.editing {
		return Continue
	}
	switch row {
	case 1:
		if col >= 1 && col <= len(s.termLine()) {
			s.openTermEditor()
		}
	case 3:
		fwdLeft := 1 + len(dirHeader) + 1
		bwdLeft := fwdLeft + len(s.dirChoice(search.Forward)) + 2
		switch {
		case col >= fwdLeft && col < fwdLeft+len(s.dirChoice(search.Forward)):
			s.query.Direction = search.Forward
		case col >= bwdLeft && col < bwdLeft+len(s.dirChoice(search.Backward)):
			s.query.Direction = search.Backward
		}
	case 6:
		if f, ok := formatZone(col, search.FormatS8, search.FormatS16, search.FormatS32, search.FormatData); ok {
			s.query.Format = f
		}
	case 7:
		if f, ok := formatZone(col, search.FormatU8, search.FormatU16, search.FormatU32, search.FormatText); ok {
			s.query.Format = f
		}
	}
	return Continue
}

// formatZone maps a column on a selector row to one of its four
// formats. The zones follow the rendered bracket positions.
func formatZone(col int, a, b, c, d search.Format) (search.Format, bool) {
	switch {
	case col >= 5 && col <= 10:
		return a, true
	case col >= 14 && col <= 20:
		return b, true
	case col >= 24 && col <= 30:
		return c, true
	case col >= 34 && col <= 41:
		return d, true
	}
	return a, false
}

const dirHeader = "  ^Direction:"

func (s *Search) termLine() string {
	return "^Text: " + s.query.Term
}

func (s *Search) dirChoice(d search.Direction) string {
	mark := " "
	if s.query.Direction == d {
		mark = "*"
	}
	label := "Forward"
	if d == search.Backward {
		label = "Backward"
	}
	return fmt.Sprintf("[%s] %s", mark, label)
}

func (s *Search) mark(f search.Format) string {
	if s.query.Format == f {
		return "*"
	}
	return " "
}

// Draw paints the dialog and, while the term editor is open, its
// boxed field over the top rows.
func (s *Search) Draw(b backend.Backend) {
	drawFrame(b, 0, 0, searchRows, searchCols, s.style)
	drawText(b, 1, 1, clipText(s.termLine(), searchCols-2), s.style)
	dir := dirHeader + " " + s.dirChoice(search.Forward) + "  " + s.dirChoice(search.Backward)
	drawText(b, 3, 1, dir, s.style)
	drawText(b, 5, 1, "  ^Format", s.style)
	row6 := fmt.Sprintf("    [%s] S8   [%s] S16   [%s] S32   [%s] Data",
		s.mark(search.FormatS8), s.mark(search.FormatS16), s.mark(search.FormatS32), s.mark(search.FormatData))
	row7 := fmt.Sprintf("    [%s] U8   [%s] U16   [%s] U32   [%s] Text",
		s.mark(search.FormatU8), s.mark(search.FormatU16), s.mark(search.FormatU32), s.mark(search.FormatText))
	drawText(b, 6, 1, row6, s.style)
	drawText(b, 7, 1, row7, s.style)
	if s.editing {
		drawBox(b, 0, 7, 2, 53, s.style)
		s.field.Draw(b, 1, 8, s.style)
	} else {
		b.HideCursor()
	}
}
