package dialog

import (
	"strings"

	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
)

// MenuItem is one entry in a drop-down menu. Selected entries are
// starred and inert. An entry either runs an Action or cascades into
// a Submenu.
type MenuItem struct {
	Text     string
	Keys     string
	Selected bool
	Action   func()
	Submenu  func() []MenuItem
}

// BarItem is a top-level menu on the bar. Build runs when the menu
// opens so entries reflect current editor state.
type BarItem struct {
	Text  string
	Keys  string
	Build func() []MenuItem
}

type barEntry struct {
	BarItem
	col int
}

type openMenu struct {
	top   int
	left  int
	width int
	items []MenuItem
}

// MenuBar is the menu system as a single modal: the bar across the
// top row plus the cascade of menus opened under it. A matching
// letter opens or activates an entry; any other key closes the whole
// cascade.
type MenuBar struct {
	entries  []barEntry
	open     []openMenu
	barWidth int
	style    core.Style
}

// NewMenuBar lays the items across the bar, two columns apart.
func NewMenuBar(items []BarItem, style core.Style) *MenuBar {
	m := &MenuBar{style: style}
	col := 0
	for _, it := range items {
		m.entries = append(m.entries, barEntry{BarItem: it, col: col})
		col += len(it.Text) + 2
	}
	m.barWidth = col + 5
	return m
}

// Handle routes keys and clicks to the deepest open menu, or to the
// bar when nothing is open yet.
func (m *MenuBar) Handle(ev backend.Event) Result {
	switch ev.Type {
	case backend.EventKey:
		return m.handleKey(ev)
	case backend.EventMouse:
		return m.handleClick(ev.MouseY, ev.MouseX)
	}
	return Continue
}

func (m *MenuBar) handleKey(ev backend.Event) Result {
	if ev.Key != backend.KeyRune {
		return Done
	}
	if len(m.open) == 0 {
		for _, e := range m.entries {
			if strings.ContainsRune(e.Keys, ev.Rune) {
				m.push(1, e.col+1, e.Build())
				return Continue
			}
		}
		return Done
	}
	level := m.open[len(m.open)-1]
	for row, it := range level.items {
		if strings.ContainsRune(it.Keys, ev.Rune) {
			return m.activate(level, row)
		}
	}
	return Done
}

// handleClick opens bar menus and activates entries under the
// pointer. A click outside every open menu closes the cascade.
func (m *MenuBar) handleClick(row, col int) Result {
	if row == 0 {
		for _, e := range m.entries {
			if col >= e.col && col < e.col+len(e.Text) {
				m.open = m.open[:0]
				m.push(1, e.col+1, e.Build())
				return Continue
			}
		}
		return Done
	}
	for i := len(m.open) - 1; i >= 0; i-- {
		lvl := m.open[i]
		if row < lvl.top || row >= lvl.top+len(lvl.items) {
			continue
		}
		if col < lvl.left || col >= lvl.left+lvl.width+5 {
			continue
		}
		m.open = m.open[:i+1]
		return m.activate(lvl, row-lvl.top)
	}
	return Done
}

// activate runs or cascades the entry at row. Cascades open at the
// entry's row, just past the parent's widest text.
func (m *MenuBar) activate(level openMenu, row int) Result {
	it := level.items[row]
	if it.Selected {
		return Done
	}
	if it.Submenu != nil {
		m.push(level.top+row, level.left+level.width, it.Submenu())
		return Continue
	}
	if it.Action != nil {
		it.Action()
	}
	return Done
}

func (m *MenuBar) push(top, left int, items []MenuItem) {
	w := 0
	for _, it := range items {
		if len(it.Text) > w {
			w = len(it.Text)
		}
	}
	m.open = append(m.open, openMenu{top: top, left: left, width: w, items: items})
}

// Draw paints the bar and every open menu. Menus are borderless
// blanked windows with entries one column in.
func (m *MenuBar) Draw(b backend.Backend) {
	fillRect(b, 0, 0, 1, m.barWidth, m.style)
	for _, e := range m.entries {
		drawText(b, 0, e.col, e.Text, m.style)
	}
	for _, lvl := range m.open {
		fillRect(b, lvl.top, lvl.left, len(lvl.items)+1, lvl.width+5, m.style)
		for i, it := range lvl.items {
			text := it.Text
			if it.Selected {
				text += "*"
			}
			drawText(b, lvl.top+i, lvl.left+1, text, m.style)
		}
	}
	b.HideCursor()
}
