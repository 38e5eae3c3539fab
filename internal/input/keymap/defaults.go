package keymap

import "github.com/dshills/hexed/internal/input/key"

// LoadDefaults returns a registry carrying the default bindings.
func LoadDefaults() *Registry {
	r := New()
	defaults := []struct {
		spec   string
		action Action
	}{
		{"Left", ActionCursorLeft},
		{"Right", ActionCursorRight},
		{"Up", ActionCursorUp},
		{"Down", ActionCursorDown},
		{"PgUp", ActionPageUp},
		{"PgDn", ActionPageDown},
		{"Home", ActionCursorHome},
		{"End", ActionCursorEnd},
		{"Tab", ActionToggleFocus},
		{"BackTab", ActionToggleFocus},
		{"C-g", ActionGoto},
		{"C-f", ActionSearch},
		{"C-w", ActionSave},
		{"C-z", ActionUndo},
		{"C-y", ActionRedo},
		{"F1", ActionHelp},
		{"F10", ActionMenu},
		{"F11", ActionDiagnostics},
		{"C-c", ActionQuit},
		{"C-q", ActionQuit},
	}
	for _, d := range defaults {
		if err := r.Bind(key.MustParse(d.spec), d.action); err != nil {
			panic(err)
		}
	}
	return r
}
