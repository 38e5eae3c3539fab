// Package config loads the hexed configuration: a TOML file under the
// user config directory, layered under HEXED_* environment variables.
// Sections cover startup display state, mouse reporting, the theme,
// key binding overrides, Lua decoder scripts, session persistence and
// logging. Unknown keys are reported rather than rejected so configs
// written by newer versions still load.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/format"
)

// Config file locations under the hexed config directory.
const (
	appDirName  = "hexed"
	FileName    = "config.toml"
	SessionFile = "session.json"
	LogFile     = "hexed.log"
)

// Dir returns the hexed configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDirName)
}

// DefaultPath returns the default config file path.
func DefaultPath() string { return filepath.Join(Dir(), FileName) }

// DefaultSessionPath returns the default session file path.
func DefaultSessionPath() string { return filepath.Join(Dir(), SessionFile) }

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string { return filepath.Join(Dir(), LogFile) }

// Display selects the startup display state.
type Display struct {
	DataFormat   string `toml:"data_format"`
	TextFormat   string `toml:"text_format"`
	OffsetFormat string `toml:"offset_format"`
	Endian       string `toml:"endian"`
	Mailbag      bool   `toml:"mailbag"`
}

// Mouse controls mouse reporting.
type Mouse struct {
	Enabled bool `toml:"enabled"`
}

// StyleDef is one theme entry. Colors are hex strings ("#rrggbb" or
// "#rgb"). A configured entry replaces the built-in style entirely;
// empty colors mean the terminal default.
type StyleDef struct {
	FG        string `toml:"fg"`
	BG        string `toml:"bg"`
	Bold      bool   `toml:"bold"`
	Reverse   bool   `toml:"reverse"`
	Underline bool   `toml:"underline"`
}

// Scripts points at Lua decoder sources.
type Scripts struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

// Session controls per-file state persistence.
type Session struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Log configures the file logger.
type Log struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Config is the full configuration tree.
type Config struct {
	Display Display             `toml:"display"`
	Mouse   Mouse               `toml:"mouse"`
	Theme   map[string]StyleDef `toml:"theme"`
	Keys    map[string]string   `toml:"keys"`
	Scripts Scripts             `toml:"scripts"`
	Session Session             `toml:"session"`
	Log     Log                 `toml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: Display{
			DataFormat:   "hex",
			TextFormat:   "ascii",
			OffsetFormat: "decimal",
			Endian:       "little",
		},
		Mouse:   Mouse{Enabled: true},
		Theme:   map[string]StyleDef{},
		Keys:    map[string]string{},
		Session: Session{Enabled: true},
		Log:     Log{Level: "info"},
	}
}

// Validate checks enum-valued fields, naming the offending key.
func (c *Config) Validate() error {
	if _, err := format.ParseData(c.Display.DataFormat); err != nil {
		return fmt.Errorf("display.data_format: %w", err)
	}
	if _, err := charset.Parse(c.Display.TextFormat); err != nil {
		return fmt.Errorf("display.text_format: %w", err)
	}
	if _, err := format.ParseOffset(c.Display.OffsetFormat); err != nil {
		return fmt.Errorf("display.offset_format: %w", err)
	}
	if _, err := format.ParseEndian(c.Display.Endian); err != nil {
		return fmt.Errorf("display.endian: %w", err)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}

// SessionPath returns the configured session file path, or the
// default when unset.
func (c *Config) SessionPath() string {
	if c.Session.Path != "" {
		return c.Session.Path
	}
	return DefaultSessionPath()
}

// LogPath returns the configured log file path, or the default when
// unset.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return DefaultLogPath()
}
