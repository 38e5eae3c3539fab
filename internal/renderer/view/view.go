package view

import (
	"fmt"
	"strings"

	"github.com/dshills/hexed/internal/engine"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/format"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// FieldRect is a drawn inspector field and the cells it covers, kept
// for resolving mouse clicks to fields.
type FieldRect struct {
	Field inspector.Field
	Rect  core.ScreenRect
}

// View renders the editor screen onto a backend. The caller owns the
// frame: it clears the backend, draws the view and the status bar,
// then shows.
type View struct {
	theme  core.Theme
	geo    Geometry
	fields []FieldRect
}

// New creates a view with the given theme.
func New(theme core.Theme) *View {
	return &View{theme: theme}
}

// Layout recomputes the geometry for a terminal size and data layout
// and returns it. Call on startup, on resize, and when the data
// format, record size or inspector row count changes.
func (v *View) Layout(rows, cols int, l format.Layout, inspectorRows int) Geometry {
	v.geo = Compute(rows, cols, l, inspectorRows)
	return v.geo
}

// Geometry returns the layout from the last Layout call.
func (v *View) Geometry() Geometry {
	return v.geo
}

// FieldAt returns the inspector field drawn at a screen position.
func (v *View) FieldAt(row, col int) (inspector.Field, bool) {
	for _, fr := range v.fields {
		if fr.Rect.Contains(core.NewScreenPos(row, col)) {
			return fr.Field, true
		}
	}
	return nil, false
}

// Draw renders the offset column, both panels, the separators and the
// inspector rows, and positions the hardware cursor on the focused
// panel. fieldRows is the inspector table, custom decoder rows
// included.
func (v *View) Draw(b backend.Backend, ed *engine.Editor, fieldRows [][]inspector.Field) {
	g := v.geo
	v.fields = v.fields[:0]

	if g.TooNarrow {
		drawString(b, 0, 0, fmt.Sprintf("Screen too small for %s display", ed.DataFormat()), v.theme.Alert)
		b.HideCursor()
		return
	}

	th := v.theme
	l := g.Layout
	rowBytes := int64(l.RowBytes())
	first := ed.FirstLine()
	cursor := int64(ed.Cursor())
	n := int64(ed.Len())
	dataFmt := ed.DataFormat()
	textFmt := ed.TextFormat()
	offFmt := ed.OffsetFormat()
	blank := strings.Repeat(" ", l.DigitsPerByte)

	cursorCol, cursorRow := -1, -1

	for r := 0; r < g.DataRows; r++ {
		rowPtr := (first + int64(r)) * rowBytes
		drawString(b, r, 0, offFmt.Format(rowPtr), th.Offset)

		data := ed.Bytes(engine.ByteOffset(rowPtr), g.VisibleBytes)
		idx := 0
		for s := 0; s < g.VisibleSections; s++ {
			stripe := 0
			for j := 0; j < l.SectionLen(s); j++ {
				off := rowPtr + int64(idx)
				dcol := g.dataCols[idx]
				tcol := g.textCols[idx]

				if off < n {
					ds := th.Data
					if stripe == 1 {
						ds = th.DataAlt
					}
					ts := th.Text
					if off == cursor {
						ds = core.Overlay(ds, th.Cursor)
						ts = core.Overlay(ts, th.Cursor)
					}
					drawString(b, r, dcol, dataFmt.FormatByte(data[idx]), ds)
					b.SetCell(tcol, r, core.NewStyledCell(textFmt.Printable(data[idx]), ts))
				} else {
					drawString(b, r, dcol, blank, th.Data)
					b.SetCell(tcol, r, core.NewStyledCell(' ', th.Text))
				}

				if off == cursor {
					cursorRow = r
					cursorCol = dcol
					if ed.Focus() == engine.AreaText {
						cursorCol = tcol
					}
				}
				stripe = 1 - stripe
				idx++
			}
		}
	}

	sep := th.Separator
	for r := 0; r <= g.DataLastRow; r++ {
		b.SetCell(g.DataLeft-1, r, core.NewStyledCell('|', sep))
		b.SetCell(g.TextLeft-1, r, core.NewStyledCell('|', sep))
	}
	for c := 0; c <= g.TextRight; c++ {
		b.SetCell(c, g.SeparatorRow, core.NewStyledCell('-', sep))
	}
	b.SetCell(g.DataLeft-1, g.SeparatorRow, core.NewStyledCell('+', sep))
	b.SetCell(g.TextLeft-1, g.SeparatorRow, core.NewStyledCell('+', sep))

	for i, row := range fieldRows {
		r := g.InspectorTop + i
		col := 0
		for _, f := range row {
			end := drawString(b, r, col, f.Header()+": "+ed.InspectorValue(f), th.Inspector)
			v.fields = append(v.fields, FieldRect{
				Field: f,
				Rect:  core.NewScreenRect(r, col, r+1, end),
			})
			col = end + 2
		}
	}

	if cursorRow >= 0 {
		b.ShowCursor(cursorCol, cursorRow)
	} else {
		b.HideCursor()
	}
}

// drawString paints a string cell by cell and returns the column after
// the last rune.
func drawString(b backend.Backend, row, col int, s string, style core.Style) int {
	for _, r := range s {
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	return col
}
