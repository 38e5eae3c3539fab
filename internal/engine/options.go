package engine

import (
	"github.com/dshills/hexed/internal/charset"
	"github.com/dshills/hexed/internal/format"
)

// Default configuration values.
const (
	// DefaultPageRows holds until the view reports real geometry.
	DefaultPageRows = 16
	// DefaultMaxUndoEntries bounds the undo history.
	DefaultMaxUndoEntries = 1000
)

// Option configures an Editor during creation.
type Option func(*Editor)

// WithDataFormat sets the initial data panel display format.
func WithDataFormat(f format.Data) Option {
	return func(e *Editor) {
		e.dataFormat = f
	}
}

// WithTextFormat sets the initial text panel charset.
func WithTextFormat(c charset.Charset) Option {
	return func(e *Editor) {
		e.textFormat = c
	}
}

// WithOffsetFormat sets the initial offset column display format.
func WithOffsetFormat(o format.Offset) Option {
	return func(e *Editor) {
		e.offsetFormat = o
	}
}

// WithEndian sets the initial byte order for the inspector and search.
func WithEndian(en format.Endian) Option {
	return func(e *Editor) {
		e.endian = en
	}
}

// WithMailbag enables the mailbag timestamp inspector field.
func WithMailbag() Option {
	return func(e *Editor) {
		e.mailbag = true
	}
}

// WithRecordSize enables fixed-length record layout.
func WithRecordSize(n int) Option {
	return func(e *Editor) {
		if n > 0 {
			e.recSize = n
		}
	}
}

// WithMaxUndoEntries bounds the undo history.
func WithMaxUndoEntries(max int) Option {
	return func(e *Editor) {
		if max > 0 {
			e.maxUndo = max
		}
	}
}
