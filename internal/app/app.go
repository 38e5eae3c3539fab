// Package app wires the editor together and owns its lifecycle: it
// builds every component in dependency order, drives the terminal
// event loop, and tears the stack back down on exit.
package app

import (
	"sync"
	"sync/atomic"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/config"
	"github.com/dshills/hexed/internal/engine"
	"github.com/dshills/hexed/internal/engine/buffer"
	"github.com/dshills/hexed/internal/engine/inspector"
	"github.com/dshills/hexed/internal/format"
	"github.com/dshills/hexed/internal/input/keymap"
	"github.com/dshills/hexed/internal/renderer/backend"
	"github.com/dshills/hexed/internal/renderer/core"
	"github.com/dshills/hexed/internal/renderer/dialog"
	"github.com/dshills/hexed/internal/renderer/statusline"
	"github.com/dshills/hexed/internal/renderer/view"
	"github.com/dshills/hexed/internal/script"
	"github.com/dshills/hexed/internal/session"
)

// Options configures a new Application. Display fields override the
// configuration and any remembered session state; their zero values
// leave the configured setting alone.
type Options struct {
	// File is the file to edit. Empty opens an unnamed empty buffer.
	File string

	// ConfigPath points at an explicit config file. Empty uses the
	// per-user default location.
	ConfigPath string

	// ReadOnly opens the buffer without write-back.
	ReadOnly bool

	// Debug forces debug logging and enables the diagnostics window.
	Debug bool

	DataFormat   string
	TextFormat   string
	OffsetFormat string
	Endian       string
	RecordSize   int
	Mailbag      bool
}

// displayOverrides holds the parsed command line display settings.
// Nil fields were not given.
type displayOverrides struct {
	data   *format.Data
	text   *charset.Charset
	offset *format.Offset
	endian *format.Endian
}

// Application owns every component of the running editor.
type Application struct {
	opts      Options
	overrides displayOverrides

	config      config.Config
	unknownKeys []string
	theme       core.Theme
	keys        *keymap.Registry

	buf     *buffer.Buffer
	editor  *engine.Editor
	store   *session.Store
	scripts *script.Engine

	backend backend.Backend
	view    *view.View
	status  *statusline.StatusLine
	modals  []dialog.Modal

	// fieldRows is the inspector grid: the built-in rows plus any
	// script-registered decoders.
	fieldRows [][]inspector.Field

	mouseDown bool
	quitting  bool

	running  atomic.Bool
	done     chan struct{}
	stopOnce sync.Once
}

// New builds an application with every component initialized except
// the terminal backend, which is attached with SetBackend.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend attaches the terminal backend. It must be called before
// Run and cannot be swapped while the loop is running.
func (app *Application) SetBackend(b backend.Backend) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Shutdown asks a running event loop to exit. It is safe to call more
// than once and from other goroutines.
func (app *Application) Shutdown() {
	app.stopOnce.Do(func() { close(app.done) })
}

// Editor exposes the editor state, mainly for inspection in tests.
func (app *Application) Editor() *engine.Editor {
	return app.editor
}

// Config returns the effective configuration.
func (app *Application) Config() config.Config {
	return app.config
}
