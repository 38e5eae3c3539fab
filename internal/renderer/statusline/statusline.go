// Package statusline renders the bottom status bar: cursor position,
// display mode, pending byte entry, modified flag, input area and file
// size, plus transient messages.
package statusline

import (
	"fmt"

	"github.com/dshills/hexed/internal/engine"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// MessageType indicates the kind of transient message.
type MessageType int

// Message kinds.
const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// StatusLine renders the status bar. Everything but the transient
// message derives from the editor at render time.
type StatusLine struct {
	theme core.Theme

	message     string
	messageType MessageType
}

// New creates a status line with the given theme.
func New(theme core.Theme) *StatusLine {
	return &StatusLine{theme: theme}
}

// SetMessage displays a transient message after the standard segments.
// It stays until replaced or cleared.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage removes the transient message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current transient message.
func (s *StatusLine) Message() string {
	return s.message
}

// Render draws the status bar at the given row. Segments are separated
// by two spaces; the pending-entry and modified markers pull in one
// column and render in the alert style.
func (s *StatusLine) Render(b backend.Backend, ed *engine.Editor, row int) {
	status := s.theme.Status
	alert := s.theme.Alert

	col := 0
	col = segment(b, row, col, "Cursor: "+ed.OffsetFormat().Format(int64(ed.Cursor())), status)
	col = segment(b, row, col, "Mode:"+ed.DataFormat().ModeLabel(), status)

	if pending := ed.Pending(); pending != "" {
		col--
		col = segment(b, row, col, fmt.Sprintf("[%*s]", ed.Layout().DigitsPerByte, pending), alert)
	}
	if ed.Modified() {
		col--
		col = segment(b, row, col, "MOD", alert)
	}

	col = segment(b, row, col, "in:"+ed.Focus().String(), status)
	col = segment(b, row, col, fmt.Sprintf("Size: %d", ed.Len()), status)

	if cur, total, ok := ed.RecordInfo(); ok {
		col = segment(b, row, col, fmt.Sprintf("Rec: %d/%d", cur, total), status)
	}

	if s.message != "" {
		style := status
		if s.messageType == MessageError {
			style = alert
		}
		segment(b, row, col, s.message, style)
	}
}

// segment paints one status segment and returns the start column of
// the next, two columns past the end.
func segment(b backend.Backend, row, col int, text string, style core.Style) int {
	for _, r := range text {
		b.SetCell(col, row, core.NewStyledCell(r, style))
		col++
	}
	return col + 2
}
