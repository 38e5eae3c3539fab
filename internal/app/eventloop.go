package app

import (
	"errors"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/dshills/hexed/internal/engine"
	"github.com/dshills/hexed/internal/logging"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/dialog"
	"github.com/dshills/hexed/internal/renderer/view"
)

// eventQueueSize buffers the polling goroutine. The loop is the only
// consumer, so the buffer just smooths bursts of mouse traffic.
const eventQueueSize = 100

// Run initializes the backend and drives the event loop until a quit
// request. The terminal is restored on every path out, including a
// panicking loop; the panic is re-raised after restore so the crash
// never leaves the terminal raw.
func (app *Application) Run() error {
	if app.backend == nil {
		return ErrNoBackend
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	if app.config.Mouse.Enabled {
		app.backend.EnableMouse()
	}

	defer func() {
		if app.config.Mouse.Enabled {
			app.backend.DisableMouse()
		}
		app.backend.Shutdown()
		app.scripts.Close()
		if r := recover(); r != nil {
			logging.Error("event loop panic",
				zap.Any("value", r),
				zap.String("stack", string(debug.Stack())),
			)
			logging.Sync()
			panic(r)
		}
		logging.Sync()
	}()

	err := app.eventLoop()
	if errors.Is(err, ErrQuit) {
		app.persistSession()
		logging.Info("clean exit")
		return nil
	}
	return err
}

func (app *Application) eventLoop() error {
	events := app.startPolling()
	app.draw()
	for {
		select {
		case <-app.done:
			return ErrQuit
		case ev, ok := <-events:
			if !ok {
				return ErrQuit
			}
			if err := app.handleEvent(ev); err != nil {
				return err
			}
			app.draw()
		}
	}
}

// startPolling reads backend events into a channel so the loop can
// also watch the done channel. PollEvent blocks, so the goroutine may
// sit in one final poll after Run returns; shutting the backend down
// unblocks it.
func (app *Application) startPolling() <-chan backend.Event {
	events := make(chan backend.Event, eventQueueSize)
	go func() {
		defer close(events)
		for app.running.Load() {
			ev := app.backend.PollEvent()
			if !app.running.Load() {
				return
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()
	return events
}

// handleEvent routes one backend event. Only a quit request surfaces
// as an error; operational failures report through the status line.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventResize:
		app.layout(ev.Width, ev.Height)
		return nil
	case backend.EventMouse:
		switch ev.MouseButton {
		case backend.MouseWheelUp:
			if len(app.modals) == 0 {
				app.editor.MoveCursor(-app.rowBytes())
			}
			return nil
		case backend.MouseWheelDown:
			if len(app.modals) == 0 {
				app.editor.MoveCursor(app.rowBytes())
			}
			return nil
		}
		click, ok := app.foldClick(ev)
		if !ok {
			return nil
		}
		ev = click
	case backend.EventKey:
	default:
		return nil
	}

	app.status.ClearMessage()

	switch {
	case len(app.modals) > 0:
		app.routeToModal(ev)
	case ev.Type == backend.EventMouse:
		app.handleClick(ev)
	default:
		app.handleKey(ev)
	}

	if app.quitting {
		return ErrQuit
	}
	return nil
}

// foldClick reduces a button press and release pair to one click
// event at the release position. Motion reports without a prior press
// are dropped.
func (app *Application) foldClick(ev backend.Event) (backend.Event, bool) {
	switch ev.MouseButton {
	case backend.MouseLeft:
		app.mouseDown = true
		return ev, false
	case backend.MouseNone:
		if !app.mouseDown {
			return ev, false
		}
		app.mouseDown = false
		ev.MouseButton = backend.MouseLeft
		return ev, true
	default:
		app.mouseDown = false
		return ev, false
	}
}

// routeToModal feeds the event to the top modal and removes it when
// it reports done. A modal's action may push another modal, so the
// removal is by identity rather than position.
func (app *Application) routeToModal(ev backend.Event) {
	top := app.modals[len(app.modals)-1]
	if top.Handle(ev) != dialog.Done {
		return
	}
	if s, ok := top.(*dialog.Search); ok {
		// Search settings persist across dialog openings.
		app.editor.SetQuery(s.Query())
	}
	app.closeModal(top)
}

func (app *Application) pushModal(m dialog.Modal) {
	app.modals = append(app.modals, m)
}

func (app *Application) closeModal(m dialog.Modal) {
	for i := len(app.modals) - 1; i >= 0; i-- {
		if app.modals[i] == m {
			app.modals = append(app.modals[:i], app.modals[i+1:]...)
			return
		}
	}
}

// handleKey feeds printable keys to byte entry first; everything else
// cancels a pending edit and dispatches through the keymap.
func (app *Application) handleKey(ev backend.Event) {
	if ev.Key == backend.KeyRune {
		handled, err := app.typeRune(ev.Rune)
		if err != nil {
			app.reportEditError(err)
			return
		}
		if handled {
			return
		}
	}

	app.editor.ClearPending()
	if action, ok := app.keys.Resolve(ev); ok {
		app.dispatch(action)
	}
}

func (app *Application) typeRune(r rune) (bool, error) {
	if app.editor.Focus() == engine.AreaData {
		return app.editor.TypeDigit(r)
	}
	return app.editor.TypeText(r)
}

// handleClick moves the cursor to a clicked byte cell or opens the
// editor for a clicked inspector field.
func (app *Application) handleClick(ev backend.Event) {
	if hit, ok := app.view.Geometry().HitTest(ev.MouseY, ev.MouseX); ok {
		app.clickByte(hit)
		return
	}
	if field, ok := app.view.FieldAt(ev.MouseY, ev.MouseX); ok {
		app.openFieldEdit(field)
	}
}

// clickByte focuses the clicked panel and moves the cursor there.
// Clicks past the end of the buffer land on the last byte.
func (app *Application) clickByte(hit view.Hit) {
	offset := (app.editor.FirstLine()+int64(hit.Row))*app.rowBytes() + int64(hit.Byte)
	if max := int64(app.editor.Len()) - 1; offset > max {
		offset = max
	}
	app.editor.SetFocus(hit.Area)
	app.editor.MoveTo(offset, false)
}

func (app *Application) rowBytes() int64 {
	return int64(app.editor.Layout().RowBytes())
}

// layout recomputes the screen geometry and the page size.
func (app *Application) layout(width, height int) {
	g := app.view.Layout(height, width, app.editor.Layout(), len(app.fieldRows))
	if g.DataRows > 0 {
		app.editor.SetPageRows(g.DataRows)
	}
}

// draw repaints the whole frame. The backend diffs cells, so a full
// redraw per event keeps the screen correct without dirty tracking.
func (app *Application) draw() {
	width, height := app.backend.Size()
	app.layout(width, height)

	app.backend.Clear()
	app.view.Draw(app.backend, app.editor, app.fieldRows)
	app.status.Render(app.backend, app.editor, app.view.Geometry().StatusRow)
	for _, m := range app.modals {
		m.Draw(app.backend)
	}
	app.backend.Show()
}
