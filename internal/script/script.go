// Package script runs user Lua scripts that extend the inspector with
// custom decoders. Scripts call hexed.register_decoder(name, width, fn)
// where fn receives the raw bytes and the byte-order name and returns
// the display string.
//
// The Lua state is opened without the io, os, debug, and package
// libraries, and dofile/loadfile/load are removed, so scripts can only
// compute over the bytes they are given. gopher-lua states are not
// goroutine safe; every entry into the state takes the engine mutex, so
// decoder calls from a redraw serialize with script loading.
package script

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/hexed/internal/engine/inspector"
)

// Execution budgets. Decoder calls run on every redraw, so their budget
// is tight; loading runs once at startup and gets more room.
const (
	DefaultCallTimeout = 100 * time.Millisecond
	DefaultLoadTimeout = 5 * time.Second

	// MaxDecoderWidth bounds the bytes a decoder may claim from the
	// cursor. Wider requests would never fit the inspector window.
	MaxDecoderWidth = 32
)

// ErrEngineClosed is returned when the engine has been shut down.
var ErrEngineClosed = errors.New("script engine is closed")

// Engine owns a sandboxed Lua state and the decoders scripts have
// registered in it.
type Engine struct {
	mu          sync.Mutex
	L           *lua.LState
	callTimeout time.Duration
	loadTimeout time.Duration
	printFn     func(string)
	decoders    []inspector.Custom
	closed      bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithCallTimeout sets the budget for a single decoder call.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Engine) { e.callTimeout = d }
}

// WithLoadTimeout sets the budget for loading one script.
func WithLoadTimeout(d time.Duration) Option {
	return func(e *Engine) { e.loadTimeout = d }
}

// WithPrint routes the Lua print function to fn. Without it print
// output is discarded; stdout belongs to the terminal UI.
func WithPrint(fn func(string)) Option {
	return func(e *Engine) { e.printFn = fn }
}

// New creates an engine with a fresh sandboxed state.
func New(opts ...Option) *Engine {
	e := &Engine{
		callTimeout: DefaultCallTimeout,
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Base brings loaders along; none of them belong in a sandbox.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(e.luaPrint))

	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"register_decoder": e.luaRegisterDecoder,
	})
	L.SetGlobal("hexed", mod)

	e.L = L
	return e
}

// LoadFile runs one script file. Registration errors and runtime errors
// in the script body are returned; decoders registered before the error
// are kept.
func (e *Engine) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	top := e.L.GetTop()
	defer e.L.SetTop(top)
	if err := e.run(e.loadTimeout, func() error { return e.L.DoFile(path) }); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// LoadString runs inline script source.
func (e *Engine) LoadString(code string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	top := e.L.GetTop()
	defer e.L.SetTop(top)
	return e.run(e.loadTimeout, func() error { return e.L.DoString(code) })
}

// Decoders returns the registered decoders in registration order.
func (e *Engine) Decoders() []inspector.Field {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]inspector.Field, len(e.decoders))
	for i, d := range e.decoders {
		out[i] = d
	}
	return out
}

// Close releases the Lua state. Decoder calls after Close report
// ErrEngineClosed, which the inspector renders as a marked value.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	e.L.Close()
}

// luaRegisterDecoder implements hexed.register_decoder. The mutex is
// already held: registration only happens inside LoadFile/LoadString.
func (e *Engine) luaRegisterDecoder(L *lua.LState) int {
	name := L.CheckString(1)
	width := L.CheckInt(2)
	fn := L.CheckFunction(3)

	if strings.TrimSpace(name) == "" {
		L.ArgError(1, "decoder name is empty")
		return 0
	}
	if width < 1 || width > MaxDecoderWidth {
		L.ArgError(2, fmt.Sprintf("width must be between 1 and %d", MaxDecoderWidth))
		return 0
	}

	e.decoders = append(e.decoders, inspector.Custom{
		Name:  name,
		Width: width,
		Fn: func(data []byte, endian string) (string, error) {
			return e.call(fn, data, endian)
		},
	})
	return 0
}

func (e *Engine) luaPrint(L *lua.LState) int {
	if e.printFn == nil {
		return 0
	}
	parts := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		parts = append(parts, L.Get(i).String())
	}
	e.printFn(strings.Join(parts, "\t"))
	return 0
}

// call invokes a registered decoder function with the field bytes and
// the byte-order name. A nil first return plus a string is the Lua
// error convention and comes back as that error.
func (e *Engine) call(fn *lua.LFunction, data []byte, endian string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return "", ErrEngineClosed
	}

	top := e.L.GetTop()
	var nret int
	err := e.run(e.callTimeout, func() error {
		e.L.Push(fn)
		e.L.Push(lua.LString(string(data)))
		e.L.Push(lua.LString(endian))
		if err := e.L.PCall(2, lua.MultRet, nil); err != nil {
			return err
		}
		nret = e.L.GetTop() - top
		return nil
	})
	defer e.L.SetTop(top)
	if err != nil {
		return "", err
	}

	if nret == 0 {
		return "", errors.New("decoder returned nothing")
	}
	ret := e.L.Get(top + 1)
	if ret == lua.LNil {
		if nret >= 2 {
			return "", errors.New(e.L.Get(top + 2).String())
		}
		return "", errors.New("decoder returned nil")
	}
	return ret.String(), nil
}

// run executes fn against the state under a deadline, recovering Lua
// panics into errors. The context must be removed afterwards or the
// expired deadline would fail every later call.
func (e *Engine) run(timeout time.Duration, fn func() error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if err := fn(); err != nil {
		return errors.New(luaMessage(err))
	}
	return nil
}

// luaMessage strips gopher-lua's stack trace so the message fits a
// status line or an inspector value.
func luaMessage(err error) string {
	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		return apiErr.Object.String()
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}
