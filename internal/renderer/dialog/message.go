package dialog

import (
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// Default message window geometry.
const (
	messageTop  = 2
	messageLeft = 5
	messageRows = 20
	messageCols = 50
)

// Message is a bordered window of text lines. Any key or click
// dismisses it. Help and about screens are messages.
type Message struct {
	lines []string
	top   int
	left  int
	rows  int
	cols  int
	style core.Style
}

// NewMessage creates a message window at the standard position.
func NewMessage(lines []string, style core.Style) *Message {
	return NewMessageAt(lines, messageTop, messageLeft, messageRows, messageCols, style)
}

// NewMessageAt creates a message window with explicit geometry.
func NewMessageAt(lines []string, top, left, rows, cols int, style core.Style) *Message {
	return &Message{lines: lines, top: top, left: left, rows: rows, cols: cols, style: style}
}

// Handle dismisses the message on any key or click.
func (m *Message) Handle(ev backend.Event) Result {
	switch ev.Type {
	case backend.EventKey, backend.EventMouse:
		return Done
	}
	return Continue
}

// Draw paints the window and its lines.
func (m *Message) Draw(b backend.Backend) {
	drawFrame(b, m.top, m.left, m.rows, m.cols, m.style)
	for i, line := range m.lines {
		row := m.top + 1 + i
		if row >= m.top+m.rows-1 {
			break
		}
		drawText(b, row, m.left+1, clipText(line, m.cols-2), m.style)
	}
	b.HideCursor()
}
