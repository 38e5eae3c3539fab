// Package view draws the editor screen: the offset column, the data
// and text panels with their separators, and the inspector rows above
// the status bar. It also resolves screen positions back to buffer
// positions for mouse support.
package view

import (
	"github.com/dshills/hexed/internal/engine"
	"github.com/dshills/hexed/internal/format"
)

// Geometry is the computed screen layout for one terminal size and
// data layout. Rows wider than the screen clip to the leading whole
// sections that fit; there is no horizontal scrolling.
type Geometry struct {
	Rows, Cols int
	Layout     format.Layout

	// VisibleSections counts the leading sections that fit on screen;
	// VisibleBytes is the bytes of each row they cover.
	VisibleSections int
	VisibleBytes    int

	DataLeft  int
	DataRight int
	TextLeft  int
	TextRight int

	DataRows     int
	DataLastRow  int
	SeparatorRow int
	InspectorTop int
	StatusRow    int

	// TooNarrow means not even one section plus the inspector and
	// status rows fit. Nothing but a notice renders.
	TooNarrow bool

	dataCols []int
	textCols []int
}

// Hit is a screen position resolved to a byte cell.
type Hit struct {
	Area engine.Area
	// Row is the data panel row, Byte the byte index within the row.
	Row  int
	Byte int
}

// Compute lays out the screen. inspectorRows is how many field rows
// render above the status bar.
func Compute(rows, cols int, l format.Layout, inspectorRows int) Geometry {
	g := Geometry{
		Rows:      rows,
		Cols:      cols,
		Layout:    l,
		StatusRow: rows - 1,
		DataLeft:  format.OffsetWidth + 1,
	}
	g.DataLastRow = g.StatusRow - inspectorRows - 2
	g.DataRows = g.DataLastRow + 1
	g.SeparatorRow = g.DataLastRow + 1
	g.InspectorTop = g.StatusRow - inspectorRows

	if g.DataRows < 1 {
		g.TooNarrow = true
		return g
	}

	// Admit sections left to right while the text panel's right edge
	// stays on screen.
	dataW, textW := 0, 0
	for i := 0; i < l.SectionCount(); i++ {
		n := l.SectionLen(i)
		dw, tw := dataW, textW
		if i > 0 {
			dw++
			tw++
		}
		dw += n * l.DigitsPerByte
		tw += n
		if g.DataLeft+dw+tw > cols-1 {
			break
		}
		dataW, textW = dw, tw
		g.VisibleSections++
		g.VisibleBytes += n
	}
	if g.VisibleSections == 0 {
		g.TooNarrow = true
		return g
	}

	g.DataRight = g.DataLeft + dataW - 1
	g.TextLeft = g.DataRight + 2
	g.TextRight = g.TextLeft + textW - 1

	g.dataCols = make([]int, 0, g.VisibleBytes)
	g.textCols = make([]int, 0, g.VisibleBytes)
	dcol, tcol := g.DataLeft, g.TextLeft
	for i := 0; i < g.VisibleSections; i++ {
		if i > 0 {
			dcol++
			tcol++
		}
		for j := 0; j < l.SectionLen(i); j++ {
			g.dataCols = append(g.dataCols, dcol)
			g.textCols = append(g.textCols, tcol)
			dcol += l.DigitsPerByte
			tcol++
		}
	}
	return g
}

// DataCol returns the screen column of the first digit of visible
// byte i, or -1 when the byte is clipped.
func (g Geometry) DataCol(i int) int {
	if i < 0 || i >= len(g.dataCols) {
		return -1
	}
	return g.dataCols[i]
}

// TextCol returns the screen column of visible byte i in the text
// panel, or -1 when the byte is clipped.
func (g Geometry) TextCol(i int) int {
	if i < 0 || i >= len(g.textCols) {
		return -1
	}
	return g.textCols[i]
}

// HitTest resolves a screen position to a byte cell. ok is false
// outside the data and text panels. Positions on the gap between
// sections resolve to the following byte.
func (g Geometry) HitTest(row, col int) (Hit, bool) {
	if g.TooNarrow || row < 0 || row > g.DataLastRow {
		return Hit{}, false
	}
	switch {
	case col >= g.DataLeft && col <= g.DataRight:
		for i, c := range g.dataCols {
			if col < c+g.Layout.DigitsPerByte {
				return Hit{Area: engine.AreaData, Row: row, Byte: i}, true
			}
		}
	case col >= g.TextLeft && col <= g.TextRight:
		for i, c := range g.textCols {
			if col <= c {
				return Hit{Area: engine.AreaText, Row: row, Byte: i}, true
			}
		}
	}
	return Hit{}, false
}
