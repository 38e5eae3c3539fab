package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads the configuration file and layers environment overrides
// on top. A missing file yields the defaults. The returned slice
// names unknown keys found in the file, for the caller to log.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	var unknown []string

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only.
	case err != nil:
		return cfg, nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return cfg, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		unknown = unknownKeys(raw)
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return cfg, unknown, err
	}
	return cfg, unknown, nil
}

// applyEnv overrides config values from HEXED_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("HEXED_DATA_FORMAT"); ok {
		c.Display.DataFormat = v
	}
	if v, ok := lookup("HEXED_TEXT_FORMAT"); ok {
		c.Display.TextFormat = v
	}
	if v, ok := lookup("HEXED_OFFSET_FORMAT"); ok {
		c.Display.OffsetFormat = v
	}
	if v, ok := lookup("HEXED_ENDIAN"); ok {
		c.Display.Endian = v
	}
	if v, ok := lookup("HEXED_MAILBAG"); ok {
		c.Display.Mailbag = parseBool(v, c.Display.Mailbag)
	}
	if v, ok := lookup("HEXED_MOUSE"); ok {
		c.Mouse.Enabled = parseBool(v, c.Mouse.Enabled)
	}
	if v, ok := lookup("HEXED_SESSION"); ok {
		c.Session.Enabled = parseBool(v, c.Session.Enabled)
	}
	if v, ok := lookup("HEXED_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := lookup("HEXED_LOG_FILE"); ok {
		c.Log.File = v
	}
}

// parseBool accepts the loose boolean forms config environments use.
// Unrecognized values keep the current setting.
func parseBool(s string, current bool) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true
	case "false", "no", "off", "0":
		return false
	}
	return current
}

var sectionKeys = map[string][]string{
	"display": {"data_format", "text_format", "offset_format", "endian", "mailbag"},
	"mouse":   {"enabled"},
	"scripts": {"dirs", "files"},
	"session": {"enabled", "path"},
	"log":     {"file", "level"},
}

var styleKeys = []string{"fg", "bg", "bold", "reverse", "underline"}

// unknownKeys walks the raw tree against the known schema and returns
// sorted dotted paths for entries the config does not define. Entries
// under [keys] are action names checked by the keymap, not here.
func unknownKeys(raw map[string]any) []string {
	var unknown []string
	for top, val := range raw {
		switch top {
		case "keys":
		case "theme":
			styles, ok := val.(map[string]any)
			if !ok {
				continue
			}
			for name, sv := range styles {
				if !knownStyle(name) {
					unknown = append(unknown, "theme."+name)
					continue
				}
				fields, ok := sv.(map[string]any)
				if !ok {
					continue
				}
				for f := range fields {
					if !containsKey(styleKeys, f) {
						unknown = append(unknown, "theme."+name+"."+f)
					}
				}
			}
		default:
			fields, ok := sectionKeys[top]
			if !ok {
				unknown = append(unknown, top)
				continue
			}
			section, ok := val.(map[string]any)
			if !ok {
				continue
			}
			for f := range section {
				if !containsKey(fields, f) {
					unknown = append(unknown, top+"."+f)
				}
			}
		}
	}
	sort.Strings(unknown)
	return unknown
}

func containsKey(keys []string, k string) bool {
	for _, key := range keys {
		if key == k {
			return true
		}
	}
	return false
}
