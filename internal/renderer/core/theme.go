package core

// Theme holds the named styles the drawing packages render with.
// The zero value is unusable; start from DefaultTheme and override
// entries from configuration.
type Theme struct {
	// Offset styles the offset column.
	Offset Style

	// Data and DataAlt alternate byte by byte within a data section.
	Data    Style
	DataAlt Style

	// Text styles the text panel.
	Text Style

	// Cursor is merged onto the cell under the cursor in both panels.
	Cursor Style

	// Separator styles the panel divider lines.
	Separator Style

	// Inspector styles the decoded value rows.
	Inspector Style

	// Status styles the status bar segments.
	Status Style

	// Alert styles pending edit digits and the modified marker.
	Alert Style

	// Dialog styles modal interiors and borders.
	Dialog Style

	// Menu styles the menu bar and submenu items.
	Menu Style
}

// DefaultTheme returns the built-in theme: blue accents for the
// alternating data stripe and status bar, red for alerts, reverse
// video plus bold for the cursor.
func DefaultTheme() Theme {
	accent := DefaultStyle().WithForeground(ColorBlue).Bold()
	return Theme{
		Offset:    DefaultStyle(),
		Data:      DefaultStyle(),
		DataAlt:   accent,
		Text:      DefaultStyle(),
		Cursor:    DefaultStyle().Reverse().Bold(),
		Separator: DefaultStyle(),
		Inspector: DefaultStyle(),
		Status:    accent,
		Alert:     DefaultStyle().WithForeground(ColorRed).Bold(),
		Dialog:    DefaultStyle(),
		Menu:      DefaultStyle(),
	}
}

// Overlay merges an accent style onto a base style: non-default
// colors replace the base colors and attributes are added. Used to
// put the cursor style on top of whatever the cell already carries.
func Overlay(base, accent Style) Style {
	out := base
	if !accent.Foreground.IsDefault() {
		out.Foreground = accent.Foreground
	}
	if !accent.Background.IsDefault() {
		out.Background = accent.Background
	}
	out.Attributes |= accent.Attributes
	return out
}
