// Package keymap binds key chords to named editor actions. The
// registry carries a fixed action table with descriptions for the
// help screen; bindings start from the defaults and may be overridden
// per action from configuration.
package keymap

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/hexed/internal/input/key"
	"github.com/dshills/hexed/internal/renderer/backend"
)

// Action identifies an editor operation a key can invoke.
type Action string

// Editor actions.
const (
	ActionCursorLeft  Action = "cursor.left"
	ActionCursorRight Action = "cursor.right"
	ActionCursorUp    Action = "cursor.up"
	ActionCursorDown  Action = "cursor.down"
	ActionCursorHome  Action = "cursor.home"
	ActionCursorEnd   Action = "cursor.end"
	ActionPageUp      Action = "view.page-up"
	ActionPageDown    Action = "view.page-down"
	ActionToggleFocus Action = "view.toggle-focus"
	ActionGoto        Action = "nav.goto"
	ActionSearch      Action = "search.open"
	ActionSave        Action = "file.save"
	ActionUndo        Action = "edit.undo"
	ActionRedo        Action = "edit.redo"
	ActionHelp        Action = "view.help"
	ActionMenu        Action = "view.menu"
	ActionDiagnostics Action = "view.diagnostics"
	ActionQuit        Action = "app.quit"
)

// Registry errors
var (
	ErrUnknownAction = errors.New("unknown action")
	ErrNoChord       = errors.New("no key chord")
)

// Info describes a registered action.
type Info struct {
	Action      Action
	Category    string
	Description string
}

// Binding ties one chord to an action.
type Binding struct {
	Chord  key.Chord
	Action Action
}

// Registry holds the action table and the current bindings.
type Registry struct {
	infos map[Action]Info
	order []Action
	binds map[key.Chord]Action
}

// New creates a registry with the full action table and no bindings.
func New() *Registry {
	r := &Registry{
		infos: make(map[Action]Info),
		binds: make(map[key.Chord]Action),
	}
	r.register(ActionCursorLeft, "Movement", "Move the cursor one byte left")
	r.register(ActionCursorRight, "Movement", "Move the cursor one byte right")
	r.register(ActionCursorUp, "Movement", "Move the cursor one row up")
	r.register(ActionCursorDown, "Movement", "Move the cursor one row down")
	r.register(ActionPageUp, "Movement", "Scroll one page up")
	r.register(ActionPageDown, "Movement", "Scroll one page down")
	r.register(ActionCursorHome, "Movement", "Jump to the first byte")
	r.register(ActionCursorEnd, "Movement", "Jump to the last byte")
	r.register(ActionGoto, "Movement", "Navigate to an offset")
	r.register(ActionToggleFocus, "Editing", "Switch between the data and text areas")
	r.register(ActionUndo, "Editing", "Undo the last edit")
	r.register(ActionRedo, "Editing", "Redo an undone edit")
	r.register(ActionSearch, "Search", "Open the search dialog")
	r.register(ActionSave, "File", "Write the modified file")
	r.register(ActionMenu, "View", "Open the menu")
	r.register(ActionHelp, "View", "Show this help")
	r.register(ActionDiagnostics, "View", "Show terminal diagnostics")
	r.register(ActionQuit, "Application", "Exit")
	return r
}

func (r *Registry) register(a Action, category, desc string) {
	r.infos[a] = Info{Action: a, Category: category, Description: desc}
	r.order = append(r.order, a)
}

// Describe returns the info for an action.
func (r *Registry) Describe(a Action) (Info, bool) {
	info, ok := r.infos[a]
	return info, ok
}

// Actions returns the action table in registration order.
func (r *Registry) Actions() []Info {
	infos := make([]Info, 0, len(r.order))
	for _, a := range r.order {
		infos = append(infos, r.infos[a])
	}
	return infos
}

// Bind maps a chord to an action, replacing any previous binding of
// that chord.
func (r *Registry) Bind(c key.Chord, a Action) error {
	if _, ok := r.infos[a]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	if c.IsZero() {
		return ErrNoChord
	}
	r.binds[c] = a
	return nil
}

// BindSpec parses a key specification and binds it.
func (r *Registry) BindSpec(spec string, a Action) error {
	c, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("action %s: %w", a, err)
	}
	return r.Bind(c, a)
}

// Rebind removes every chord bound to the action, then binds the new
// spec. Config overrides use this so an override replaces rather than
// accumulates.
func (r *Registry) Rebind(a Action, spec string) error {
	if _, ok := r.infos[a]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	c, err := key.Parse(spec)
	if err != nil {
		return fmt.Errorf("action %s: %w", a, err)
	}
	for bound, action := range r.binds {
		if action == a {
			delete(r.binds, bound)
		}
	}
	return r.Bind(c, a)
}

// Lookup returns the action bound to a chord.
func (r *Registry) Lookup(c key.Chord) (Action, bool) {
	a, ok := r.binds[c]
	return a, ok
}

// Resolve returns the action bound to a key event's chord.
func (r *Registry) Resolve(ev backend.Event) (Action, bool) {
	c := key.ChordOf(ev)
	if c.IsZero() {
		return "", false
	}
	return r.Lookup(c)
}

// Chords returns the chords bound to an action, sorted by their spec
// strings for stable help output.
func (r *Registry) Chords(a Action) []key.Chord {
	var chords []key.Chord
	for c, action := range r.binds {
		if action == a {
			chords = append(chords, c)
		}
	}
	sort.Slice(chords, func(i, j int) bool {
		return chords[i].String() < chords[j].String()
	})
	return chords
}

// Bindings returns every binding, grouped by action registration
// order.
func (r *Registry) Bindings() []Binding {
	var out []Binding
	for _, a := range r.order {
		for _, c := range r.Chords(a) {
			out = append(out, Binding{Chord: c, Action: a})
		}
	}
	return out
}
