// Package dialog implements the modal overlays: message windows, text
// prompts, the search dialog and the menu system. A modal owns input
// while open; the application routes events to the top of its modal
// stack and draws modals over the frame.
package dialog

import (
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// Result reports what a modal did with an event.
type Result int

// Handle results.
const (
	// Continue keeps the modal open.
	Continue Result = iota
	// Done closes the modal.
	Done
)

// Modal is an overlay that owns input while open. Mouse events arrive
// as completed clicks; the application folds press/release pairs
// before routing.
type Modal interface {
	Handle(ev backend.Event) Result
	Draw(b backend.Backend)
}

// drawFrame blanks a window and draws its border, matching the
// classic '+-|' frame.
func drawFrame(b backend.Backend, top, left, rows, cols int, style core.Style) {
	fillRect(b, top, left, rows, cols, style)
	drawBox(b, top, left, top+rows-1, left+cols-1, style)
}

// drawBox outlines a rectangle given by its corners, inclusive.
func drawBox(b backend.Backend, uly, ulx, lry, lrx int, style core.Style) {
	for x := ulx + 1; x < lrx; x++ {
		b.SetCell(x, uly, core.NewStyledCell('-', style))
		b.SetCell(x, lry, core.NewStyledCell('-', style))
	}
	for y := uly + 1; y < lry; y++ {
		b.SetCell(ulx, y, core.NewStyledCell('|', style))
		b.SetCell(lrx, y, core.NewStyledCell('|', style))
	}
	b.SetCell(ulx, uly, core.NewStyledCell('+', style))
	b.SetCell(lrx, uly, core.NewStyledCell('+', style))
	b.SetCell(ulx, lry, core.NewStyledCell('+', style))
	b.SetCell(lrx, lry, core.NewStyledCell('+', style))
}

// fillRect blanks a region.
func fillRect(b backend.Backend, top, left, rows, cols int, style core.Style) {
	for y := top; y < top+rows; y++ {
		for x := left; x < left+cols; x++ {
			b.SetCell(x, y, core.NewStyledCell(' ', style))
		}
	}
}

// drawText paints a string and returns the column after its last rune.
func drawText(b backend.Backend, row, col int, s string, style core.Style) int {
	for _, r := range s {
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	return col
}

// clipText truncates a string to at most max runes.
func clipText(s string, max int) string {
	if max < 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	return string(rs[:max])
}
