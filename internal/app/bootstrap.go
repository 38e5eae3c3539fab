package app

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/config"
	"github.com/dshills/hexed/internal/engine"
	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/engine/search"
	"github.com/dshills/hexed/internal/format"
	"github.com/dshills/hexed/internal/input/keymap"
	"github.com/dshills/hexed/internal/logging"
	"github.com/dshills/hexed/internal/renderer/statusline"
	"github.com/dshills/hexed/internal/renderer/view"
	"github.com/dshills/hexed/internal/script"
	"github.com/dshills/hexed/internal/session"
	"github.com/dshills/hexed/internal/version"
)

// inspectorRowFields is how many fields fit on one inspector row.
// Script decoders chunk into extra rows of this width.
const inspectorRowFields = 4

// bootstrap initializes components in dependency order. Configuration
// problems are fatal; optional subsystems degrade to warnings.
func (app *Application) bootstrap() error {
	var warnings []string
	warn := func(msg string) { warnings = append(warnings, msg) }

	// 1. Configuration: defaults, file, environment, then flags.
	if err := app.initConfig(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 2. Logging. A broken log sink silences logging, nothing else.
	app.initLogging()

	// 3. Theme and key bindings.
	if err := app.initTheme(); err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if err := app.initBindings(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	// 4. Buffer.
	if err := app.initBuffer(); err != nil {
		return &InitError{Component: "buffer", Err: err}
	}

	// 5. Session store, then the editor with any remembered state.
	app.initSession(warn)
	app.initEditor()

	// 6. Scripts.
	app.initScripts(warn)

	// 7. View.
	app.view = view.New(app.theme)
	app.status = statusline.New(app.theme)
	app.fieldRows = app.buildFieldRows()

	if len(warnings) > 0 {
		app.status.SetMessage(warnings[0], statusline.MessageError)
	}
	return nil
}

func (app *Application) initConfig() error {
	path := app.opts.ConfigPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, unknown, err := config.Load(path)
	if err != nil {
		return err
	}
	app.config = cfg
	app.unknownKeys = unknown
	return app.parseOverrides()
}

// parseOverrides validates the display settings given on the command
// line. They are applied over the session state when the editor is
// built, so a flag always wins.
func (app *Application) parseOverrides() error {
	o := &app.overrides
	if s := app.opts.DataFormat; s != "" {
		f, err := format.ParseData(s)
		if err != nil {
			return fmt.Errorf("data format: %w", err)
		}
		o.data = &f
	}
	if s := app.opts.TextFormat; s != "" {
		c, err := charset.Parse(s)
		if err != nil {
			return fmt.Errorf("text format: %w", err)
		}
		o.text = &c
	}
	if s := app.opts.OffsetFormat; s != "" {
		f, err := format.ParseOffset(s)
		if err != nil {
			return fmt.Errorf("offset format: %w", err)
		}
		o.offset = &f
	}
	if s := app.opts.Endian; s != "" {
		e, err := format.ParseEndian(s)
		if err != nil {
			return fmt.Errorf("endian: %w", err)
		}
		o.endian = &e
	}
	if app.opts.RecordSize < 0 {
		return fmt.Errorf("record size %d: must be positive", app.opts.RecordSize)
	}
	return nil
}

func (app *Application) initLogging() {
	level := app.config.Log.Level
	if app.opts.Debug {
		level = "debug"
	}
	if err := logging.Initialize(level, app.config.LogPath()); err != nil {
		// The editor works without a log; drop it and move on.
		return
	}
	logging.Info("starting",
		zap.String("version", version.Version),
		zap.String("file", app.opts.File),
	)
	for _, k := range app.unknownKeys {
		logging.Warn("unknown config key", zap.String("key", k))
	}
}

func (app *Application) initTheme() error {
	th, err := config.BuildTheme(app.config.Theme)
	if err != nil {
		return err
	}
	app.theme = th
	return nil
}

func (app *Application) initBindings() error {
	app.keys = keymap.LoadDefaults()
	names := make([]string, 0, len(app.config.Keys))
	for name := range app.config.Keys {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := app.keys.Rebind(keymap.Action(name), app.config.Keys[name]); err != nil {
			return fmt.Errorf("keys.%s: %w", name, err)
		}
	}
	return nil
}

func (app *Application) initBuffer() error {
	var bopts []buffer.Option
	if app.opts.ReadOnly {
		bopts = append(bopts, buffer.WithReadOnly())
	}
	if app.opts.File == "" {
		app.buf = buffer.New(bopts...)
		return nil
	}
	buf, err := buffer.Load(app.opts.File, bopts...)
	if err != nil {
		return err
	}
	app.buf = buf
	return nil
}

func (app *Application) initSession(warn func(string)) {
	if !app.config.Session.Enabled {
		return
	}
	store, err := session.Open(app.config.SessionPath())
	app.store = store
	if err != nil {
		logging.Warn("session state unavailable", zap.Error(err))
		warn("Session state unreadable, starting fresh")
	}
}

// displayState is the merged view configuration the editor starts
// with: configuration, then session memory, then flags.
type displayState struct {
	data    format.Data
	text    charset.Charset
	offset  format.Offset
	endian  format.Endian
	mailbag bool
	focus   engine.Area
	cursor  int64
}

func (app *Application) initEditor() {
	d := app.configuredDisplay()
	app.applySessionState(&d)
	app.applyOverrides(&d)

	eopts := []engine.Option{
		engine.WithDataFormat(d.data),
		engine.WithTextFormat(d.text),
		engine.WithOffsetFormat(d.offset),
		engine.WithEndian(d.endian),
	}
	if d.mailbag {
		eopts = append(eopts, engine.WithMailbag())
	}
	if app.opts.RecordSize > 0 {
		eopts = append(eopts, engine.WithRecordSize(app.opts.RecordSize))
	}
	app.editor = engine.New(app.buf, eopts...)

	if d.focus == engine.AreaText {
		app.editor.SetFocus(engine.AreaText)
	}
	if d.cursor > 0 {
		app.editor.MoveTo(d.cursor, true)
	}
	app.editor.SetQuery(search.Query{Format: search.FormatText})
}

// configuredDisplay parses the display section. Load validated the
// strings, so parse failures cannot happen here.
func (app *Application) configuredDisplay() displayState {
	var d displayState
	d.data, _ = format.ParseData(app.config.Display.DataFormat)
	d.text, _ = charset.Parse(app.config.Display.TextFormat)
	d.offset, _ = format.ParseOffset(app.config.Display.OffsetFormat)
	d.endian, _ = format.ParseEndian(app.config.Display.Endian)
	d.mailbag = app.config.Display.Mailbag
	return d
}

// applySessionState overlays the remembered per-file state. Values
// written by other versions may not parse; those are skipped.
func (app *Application) applySessionState(d *displayState) {
	if app.store == nil {
		return
	}
	path := app.buf.Path()
	if path == "" {
		return
	}
	state, ok := app.store.Lookup(absPath(path))
	if !ok {
		return
	}
	if f, err := format.ParseData(state.DataFormat); err == nil {
		d.data = f
	}
	if c, err := charset.Parse(state.TextFormat); err == nil {
		d.text = c
	}
	if o, err := format.ParseOffset(state.OffsetFormat); err == nil {
		d.offset = o
	}
	if e, err := format.ParseEndian(state.Endian); err == nil {
		d.endian = e
	}
	if state.Focus == engine.AreaText.String() {
		d.focus = engine.AreaText
	}
	if state.Cursor > 0 {
		d.cursor = state.Cursor
	}
	logging.Debug("session state restored",
		zap.String("file", path),
		zap.Int64("cursor", state.Cursor),
	)
}

func (app *Application) applyOverrides(d *displayState) {
	o := app.overrides
	if o.data != nil {
		d.data = *o.data
	}
	if o.text != nil {
		d.text = *o.text
	}
	if o.offset != nil {
		d.offset = *o.offset
	}
	if o.endian != nil {
		d.endian = *o.endian
	}
	if app.opts.Mailbag {
		d.mailbag = true
	}
}

func (app *Application) initScripts(warn func(string)) {
	app.scripts = script.New(script.WithPrint(func(text string) {
		logging.Debug("script print", zap.String("text", text))
	}))
	dirs := append([]string{filepath.Join(config.Dir(), "scripts")}, app.config.Scripts.Dirs...)
	for _, path := range script.FindScripts(dirs, app.config.Scripts.Files) {
		if err := app.scripts.LoadFile(path); err != nil {
			logging.Warn("script rejected", zap.String("path", path), zap.Error(err))
			warn(err.Error())
			continue
		}
		logging.Info("script loaded", zap.String("path", path))
	}
}

func (app *Application) buildFieldRows() [][]inspector.Field {
	rows := inspector.Rows(app.editor.Mailbag())
	customs := app.scripts.Decoders()
	for len(customs) > 0 {
		n := len(customs)
		if n > inspectorRowFields {
			n = inspectorRowFields
		}
		rows = append(rows, customs[:n])
		customs = customs[n:]
	}
	return rows
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
