package app

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/engine/search"
	"github.com/dshills/hexed/internal/input/keymap"
	"github.com/dshills/hexed/internal/logging"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/dialog"
	"github.com/dshills/hexed/internal/renderer/statusline"
	"github.com/dshills/hexed/internal/session"
	"github.com/dshills/hexed/internal/version"
)

func (app *Application) dispatch(action keymap.Action) {
	switch action {
	case keymap.ActionCursorLeft:
		app.editor.MoveCursor(-1)
	case keymap.ActionCursorRight:
		app.editor.MoveCursor(1)
	case keymap.ActionCursorUp:
		app.editor.MoveCursor(-app.rowBytes())
	case keymap.ActionCursorDown:
		app.editor.MoveCursor(app.rowBytes())
	case keymap.ActionCursorHome:
		app.editor.Home()
	case keymap.ActionCursorEnd:
		app.editor.End()
	case keymap.ActionPageUp:
		app.editor.PageUp()
	case keymap.ActionPageDown:
		app.editor.PageDown()
	case keymap.ActionToggleFocus:
		app.editor.ToggleFocus()
	case keymap.ActionGoto:
		app.openGoto()
	case keymap.ActionSearch:
		app.openSearch()
	case keymap.ActionSave:
		app.saveBuffer()
	case keymap.ActionUndo:
		app.undo()
	case keymap.ActionRedo:
		app.redo()
	case keymap.ActionHelp:
		app.openHelp()
	case keymap.ActionMenu:
		app.openMenu()
	case keymap.ActionDiagnostics:
		if app.opts.Debug {
			app.openDiagnostics()
		}
	case keymap.ActionQuit:
		app.requestQuit()
	}
}

func (app *Application) reportEditError(err error) {
	if errors.Is(err, buffer.ErrReadOnly) {
		app.status.SetMessage("Read-only buffer", statusline.MessageError)
		return
	}
	app.status.SetMessage(err.Error(), statusline.MessageError)
	logging.Error("edit failed", zap.Error(err))
}

// saveBuffer writes the file back when there is something to write.
// Buffers without a path fall through to the save-as prompt.
func (app *Application) saveBuffer() {
	if !app.editor.Modified() {
		return
	}
	err := app.editor.Save()
	switch {
	case err == nil:
		app.status.SetMessage("Wrote "+app.editor.Path(), statusline.MessageInfo)
		logging.Info("buffer written",
			zap.String("path", app.editor.Path()),
			zap.Int64("size", int64(app.editor.Len())),
		)
	case errors.Is(err, buffer.ErrNoPath):
		app.openSaveAs()
	case errors.Is(err, buffer.ErrReadOnly):
		app.status.SetMessage("Read-only buffer", statusline.MessageError)
	default:
		opErr := &OperationError{Op: "write", Target: app.editor.Path(), Err: err}
		app.status.SetMessage(opErr.Error(), statusline.MessageError)
		logging.Error("write failed", zap.Error(opErr))
	}
}

func (app *Application) openSaveAs() {
	app.pushModal(dialog.NewSaveAs(app.editor.Path(), app.theme.Dialog, func(path string) {
		if path == "" {
			return
		}
		if err := app.editor.SaveAs(path); err != nil {
			opErr := &OperationError{Op: "write", Target: path, Err: err}
			app.status.SetMessage(opErr.Error(), statusline.MessageError)
			logging.Error("write failed", zap.Error(opErr))
			return
		}
		app.status.SetMessage("Wrote "+path, statusline.MessageInfo)
	}))
}

func (app *Application) openGoto() {
	app.pushModal(dialog.NewNavigate(app.theme.Dialog, func(expr string) {
		if err := app.editor.Goto(expr); err != nil {
			app.status.SetMessage("Bad offset: "+expr, statusline.MessageError)
		}
	}))
}

func (app *Application) openSearch() {
	app.pushModal(dialog.NewSearch(app.editor.Query(), app.theme.Dialog, app.runSearch))
}

// runSearch reports whether the search hit, which closes the dialog.
// Misses and terms the selected format cannot parse keep it open.
func (app *Application) runSearch(q search.Query) bool {
	app.editor.SetQuery(q)
	if strings.TrimSpace(q.Term) == "" {
		return false
	}
	_, err := app.editor.Search()
	switch {
	case err == nil:
		return true
	case errors.Is(err, buffer.ErrNotFound):
		app.status.SetMessage("Not found: "+q.Term, statusline.MessageError)
		return false
	default:
		logging.Debug("search term rejected", zap.String("term", q.Term), zap.Error(err))
		return false
	}
}

// openFieldEdit prompts for a new value for an inspector field and
// writes it through at the cursor. Script fields are read-only and
// have no editor.
func (app *Application) openFieldEdit(f inspector.Field) {
	if f.InputWidth() <= 0 {
		return
	}
	lines := []string{
		"Set " + f.Header() + " at the cursor",
		"  Enter to submit",
		"  Submit an empty box to cancel",
	}
	initial := app.editor.InspectorValue(f)
	app.pushModal(dialog.NewFieldEdit(lines, f.InputWidth(), initial, app.theme.Dialog, func(input string) {
		if input == "" {
			return
		}
		if err := app.editor.ApplyField(f, input); err != nil {
			app.status.SetMessage("Bad "+f.Header()+" value: "+input, statusline.MessageError)
		}
	}))
}

func (app *Application) undo() {
	ch, err := app.editor.Undo()
	if err != nil {
		app.status.SetMessage("Nothing to undo", statusline.MessageInfo)
		return
	}
	app.status.SetMessage("Undid edit at "+app.editor.OffsetFormat().Format(ch.Offset), statusline.MessageInfo)
}

func (app *Application) redo() {
	ch, err := app.editor.Redo()
	if err != nil {
		app.status.SetMessage("Nothing to redo", statusline.MessageInfo)
		return
	}
	app.status.SetMessage("Redid edit at "+app.editor.OffsetFormat().Format(ch.Offset), statusline.MessageInfo)
}

// requestQuit exits immediately when the buffer is clean and warns
// when edits would be lost.
func (app *Application) requestQuit() {
	if !app.editor.Modified() {
		app.quitting = true
		return
	}
	app.pushModal(newQuitWarning(app))
}

// quitWarning is the unsaved-changes dialog. y discards the edits and
// exits, w writes them first, anything else returns to the editor.
type quitWarning struct {
	app *Application
	msg *dialog.Message
}

func newQuitWarning(app *Application) *quitWarning {
	lines := []string{
		"There are unsaved changes.",
		"",
		"  y - discard changes and exit",
		"  w - write changes and exit",
		"",
		"Any other key returns to the editor.",
	}
	return &quitWarning{
		app: app,
		msg: dialog.NewMessageAt(lines, 4, 10, 9, 42, app.theme.Alert),
	}
}

func (q *quitWarning) Handle(ev backend.Event) dialog.Result {
	if ev.Type != backend.EventKey {
		return dialog.Continue
	}
	if ev.Key == backend.KeyRune {
		switch ev.Rune {
		case 'y', 'Y':
			q.app.quitting = true
		case 'w', 'W':
			if err := q.app.editor.Save(); err != nil {
				q.app.status.SetMessage("Write failed: "+err.Error(), statusline.MessageError)
			} else {
				q.app.quitting = true
			}
		}
	}
	return dialog.Done
}

func (q *quitWarning) Draw(b backend.Backend) {
	q.msg.Draw(b)
}

// openHelp lists the bindings from the registry plus the current
// display state.
func (app *Application) openHelp() {
	lines := []string{"Key bindings", ""}
	for _, info := range app.keys.Actions() {
		if info.Action == keymap.ActionDiagnostics && !app.opts.Debug {
			continue
		}
		chords := app.keys.Chords(info.Action)
		if len(chords) == 0 {
			continue
		}
		specs := make([]string, len(chords))
		for i, c := range chords {
			specs[i] = c.String()
		}
		lines = append(lines, fmt.Sprintf("  %-14s %s", strings.Join(specs, " "), info.Description))
	}
	lines = append(lines, "", fmt.Sprintf("Mode:%s  Endian:%s  Offsets:%s",
		app.editor.DataFormat().ModeLabel(),
		app.editor.Endian(),
		app.editor.OffsetFormat(),
	))
	app.pushModal(dialog.NewMessageAt(lines, 0, 5, len(lines)+2, 52, app.theme.Dialog))
}

func (app *Application) openAbout() {
	lines := []string{
		"hexed " + version.Version,
		"",
		"A terminal hex editor.",
		"",
		"commit " + version.GitCommit,
		"built  " + version.BuildDate,
	}
	app.pushModal(dialog.NewMessageAt(lines, 6, 12, len(lines)+2, 44, app.theme.Dialog))
}

// openDiagnostics shows terminal and buffer details for debugging.
func (app *Application) openDiagnostics() {
	width, height := app.backend.Size()
	g := app.view.Geometry()
	lines := []string{
		"Diagnostics",
		"",
		fmt.Sprintf("terminal       %dx%d", width, height),
		fmt.Sprintf("true color     %t", app.backend.HasTrueColor()),
		fmt.Sprintf("mouse          %t", app.config.Mouse.Enabled),
		fmt.Sprintf("data rows      %d", g.DataRows),
		fmt.Sprintf("row bytes      %d", g.Layout.RowBytes()),
		fmt.Sprintf("visible bytes  %d", g.VisibleBytes),
		fmt.Sprintf("buffer         %d bytes, revision %d", app.editor.Len(), app.buf.RevisionID()),
		fmt.Sprintf("decoders       %d", len(app.scripts.Decoders())),
		fmt.Sprintf("log file       %s", app.config.LogPath()),
	}
	app.pushModal(dialog.NewMessageAt(lines, 2, 5, len(lines)+2, 60, app.theme.Dialog))
}

// persistSession records the file state for the next run.
func (app *Application) persistSession() {
	if app.store == nil {
		return
	}
	if path := app.editor.Path(); path != "" {
		err := app.store.Put(absPath(path), session.FileState{
			Cursor:       int64(app.editor.Cursor()),
			DataFormat:   app.editor.DataFormat().String(),
			TextFormat:   app.editor.TextFormat().String(),
			OffsetFormat: app.editor.OffsetFormat().String(),
			Endian:       app.editor.Endian().String(),
			Focus:        app.editor.Focus().String(),
		})
		if err != nil {
			logging.Warn("session entry not recorded", zap.Error(err))
			return
		}
	}
	if err := app.store.Save(); err != nil {
		opErr := &OperationError{Op: "write session", Target: app.store.Path(), Err: err}
		logging.Warn("session not saved", zap.Error(opErr))
	}
}
