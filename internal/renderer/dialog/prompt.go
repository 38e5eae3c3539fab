package dialog

import (
	"strings"

	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// Prompt is a bordered window with instruction lines and one boxed
// text field. Enter submits the trimmed value, Escape cancels. The
// owner decides what an empty submission means.
type Prompt struct {
	top      int
	left     int
	rows     int
	cols     int
	lines    []string
	fieldRow int // window relative
	fieldCol int
	boxRight int // window relative right edge of the field box
	field    *TextField
	style    core.Style
	onSubmit func(string)
}

// NewNavigate creates the goto-offset prompt. The submitted value is
// an absolute offset in the current offset display base, or a signed
// decimal count prefixed with + or - for relative movement.
func NewNavigate(style core.Style, onSubmit func(string)) *Prompt {
	return &Prompt{
		top:  2,
		left: 5,
		rows: 9,
		cols: 33,
		lines: []string{
			"Enter offset to navigate",
			"  + or - for relative movement",
			"  Enter to submit",
			"  Submit empty box to Cancel",
		},
		fieldRow: 6,
		fieldCol: 5,
		boxRight: 15,
		field:    NewTextField(10),
		style:    style,
		onSubmit: onSubmit,
	}
}

// NewFieldEdit creates the inspector value editor. The field is
// prefilled with the current rendered value and sized to the widest
// input the inspector field accepts.
func NewFieldEdit(lines []string, width int, initial string, style core.Style, onSubmit func(string)) *Prompt {
	p := &Prompt{
		top:      0,
		left:     0,
		rows:     12,
		cols:     55,
		lines:    lines,
		fieldRow: 6,
		fieldCol: 6,
		boxRight: width + 7,
		field:    NewTextField(width),
		style:    style,
		onSubmit: onSubmit,
	}
	p.field.SetValue(initial)
	return p
}

// NewSaveAs creates the write-as prompt, prefilled with the current
// file path.
func NewSaveAs(initial string, style core.Style, onSubmit func(string)) *Prompt {
	p := &Prompt{
		top:  0,
		left: 0,
		rows: 12,
		cols: 55,
		lines: []string{
			"Write buffer to file",
			"  Enter to submit",
			"  Submit an empty box to cancel",
		},
		fieldRow: 6,
		fieldCol: 6,
		boxRight: 52,
		field:    NewTextField(45),
		style:    style,
		onSubmit: onSubmit,
	}
	p.field.SetValue(initial)
	return p
}

// Handle feeds keys to the field until Enter submits or Escape
// cancels. Clicks are swallowed.
func (p *Prompt) Handle(ev backend.Event) Result {
	if ev.Type != backend.EventKey {
		return Continue
	}
	switch ev.Key {
	case backend.KeyEnter:
		if p.onSubmit != nil {
			p.onSubmit(strings.TrimSpace(p.field.Value()))
		}
		return Done
	case backend.KeyEscape:
		return Done
	}
	p.field.HandleKey(ev)
	return Continue
}

// Draw paints the window, instructions, field box and field.
func (p *Prompt) Draw(b backend.Backend) {
	drawFrame(b, p.top, p.left, p.rows, p.cols, p.style)
	for i, line := range p.lines {
		row := p.top + 1 + i
		if row >= p.top+p.fieldRow-1 {
			break
		}
		drawText(b, row, p.left+1, clipText(line, p.cols-2), p.style)
	}
	drawBox(b, p.top+p.fieldRow-1, p.left+p.fieldCol-1, p.top+p.fieldRow+1, p.left+p.boxRight, p.style)
	p.field.Draw(b, p.top+p.fieldRow, p.left+p.fieldCol, p.style)
}
