package app

import (
	"strings"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/format"
	"github.com/dshills/hexed/internal/renderer/dialog"
)

func (app *Application) openMenu() {
	app.pushModal(app.menuBar())
}

// menuBar builds the menu tree. Build functions run when a menu
// opens, so entries reflect the state at that moment.
func (app *Application) menuBar() *dialog.MenuBar {
	items := []dialog.BarItem{
		{Text: "File", Keys: "Ff", Build: app.fileMenu},
		{Text: "Options", Keys: "Oo", Build: app.optionsMenu},
		{Text: "Search", Keys: "Ss", Build: app.searchMenu},
		{Text: "Help", Keys: "Hh", Build: app.helpMenu},
	}
	return dialog.NewMenuBar(items, app.theme.Menu)
}

func (app *Application) fileMenu() []dialog.MenuItem {
	return []dialog.MenuItem{
		{Text: "Save", Keys: "Ss", Action: app.saveBuffer},
		{Text: "save As", Keys: "Aa", Action: app.openSaveAs},
		{Text: "eXit", Keys: "Xx", Action: app.requestQuit},
	}
}

// optionsMenu carries the format submenus and the endian toggle. The
// toggle is labeled with the order it switches to.
func (app *Application) optionsMenu() []dialog.MenuItem {
	endianLabel := "set Big endian numbers"
	endianKeys := "Bb"
	if app.editor.Endian() == format.BigEndian {
		endianLabel = "set Little endian numbers"
		endianKeys = "Ll"
	}
	return []dialog.MenuItem{
		{Text: "Data display format", Keys: "Dd", Submenu: app.dataFormatMenu},
		{Text: "Text display format", Keys: "Tt", Submenu: app.textFormatMenu},
		{Text: "Offset display format", Keys: "Oo", Submenu: app.offsetFormatMenu},
		{Text: endianLabel, Keys: endianKeys, Action: func() { app.editor.ToggleEndian() }},
	}
}

func (app *Application) dataFormatMenu() []dialog.MenuItem {
	current := app.editor.DataFormat()
	formats := []format.Data{format.DataHex, format.DataDecimal, format.DataOctal, format.DataBinary}
	items := make([]dialog.MenuItem, 0, len(formats))
	for _, f := range formats {
		items = append(items, dialog.MenuItem{
			Text:     menuTitle(f.String()),
			Keys:     hotkeys(f.String()),
			Selected: f == current,
			Action:   func() { app.editor.SetDataFormat(f) },
		})
	}
	return items
}

func (app *Application) textFormatMenu() []dialog.MenuItem {
	current := app.editor.TextFormat()
	charsets := []charset.Charset{charset.ASCII, charset.EBCDIC}
	items := make([]dialog.MenuItem, 0, len(charsets))
	for _, c := range charsets {
		items = append(items, dialog.MenuItem{
			Text:     menuTitle(c.String()),
			Keys:     hotkeys(c.String()),
			Selected: c == current,
			Action:   func() { app.editor.SetTextFormat(c) },
		})
	}
	return items
}

func (app *Application) offsetFormatMenu() []dialog.MenuItem {
	current := app.editor.OffsetFormat()
	formats := []format.Offset{format.OffsetHex, format.OffsetDecimal}
	items := make([]dialog.MenuItem, 0, len(formats))
	for _, f := range formats {
		items = append(items, dialog.MenuItem{
			Text:     menuTitle(f.String()),
			Keys:     hotkeys(f.String()),
			Selected: f == current,
			Action:   func() { app.editor.SetOffsetFormat(f) },
		})
	}
	return items
}

func (app *Application) searchMenu() []dialog.MenuItem {
	return []dialog.MenuItem{
		{Text: "Search", Keys: "Ss", Action: app.openSearch},
		{Text: "Goto offset", Keys: "Gg", Action: app.openGoto},
		{Text: "goto Beginning", Keys: "Bb", Action: app.editor.Home},
		{Text: "goto End", Keys: "Ee", Action: app.editor.End},
	}
}

func (app *Application) helpMenu() []dialog.MenuItem {
	return []dialog.MenuItem{
		{Text: "Keys", Keys: "Kk", Action: app.openHelp},
		{Text: "About", Keys: "Aa", Action: app.openAbout},
	}
}

// menuTitle capitalizes a format name for its menu entry.
func menuTitle(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// hotkeys returns both cases of an entry's leading letter.
func hotkeys(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[:1])
}
