package config

import (
	"fmt"

	"github.com/dshills/hexed/internal/renderer/core"
	"github.com/lucasb-eyer/go-colorful"
)

// BuildTheme applies configured style entries over the built-in
// theme. Unknown entry names were reported at load time and are
// skipped here; bad color values are errors naming the entry.
func BuildTheme(defs map[string]StyleDef) (core.Theme, error) {
	th := core.DefaultTheme()
	for name, def := range defs {
		target := styleTarget(&th, name)
		if target == nil {
			continue
		}
		s, err := buildStyle(def)
		if err != nil {
			return th, fmt.Errorf("theme.%s: %w", name, err)
		}
		*target = s
	}
	return th, nil
}

func knownStyle(name string) bool {
	var th core.Theme
	return styleTarget(&th, name) != nil
}

func styleTarget(th *core.Theme, name string) *core.Style {
	switch name {
	case "offset":
		return &th.Offset
	case "data":
		return &th.Data
	case "data_alt":
		return &th.DataAlt
	case "text":
		return &th.Text
	case "cursor":
		return &th.Cursor
	case "separator":
		return &th.Separator
	case "inspector":
		return &th.Inspector
	case "status":
		return &th.Status
	case "alert":
		return &th.Alert
	case "dialog":
		return &th.Dialog
	case "menu":
		return &th.Menu
	}
	return nil
}

// buildStyle converts one entry. The entry replaces the built-in
// style entirely so attribute flags read literally.
func buildStyle(def StyleDef) (core.Style, error) {
	s := core.DefaultStyle()
	if def.FG != "" {
		c, err := parseColor(def.FG)
		if err != nil {
			return s, fmt.Errorf("fg: %w", err)
		}
		s.Foreground = c
	}
	if def.BG != "" {
		c, err := parseColor(def.BG)
		if err != nil {
			return s, fmt.Errorf("bg: %w", err)
		}
		s.Background = c
	}
	if def.Bold {
		s = s.Bold()
	}
	if def.Reverse {
		s = s.Reverse()
	}
	if def.Underline {
		s = s.Underline()
	}
	return s, nil
}

func parseColor(spec string) (core.Color, error) {
	c, err := colorful.Hex(spec)
	if err != nil {
		return core.Color{}, fmt.Errorf("bad color %q: %w", spec, err)
	}
	r, g, b := c.RGB255()
	return core.ColorFromRGB(r, g, b), nil
}
