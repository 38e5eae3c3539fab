// Package session persists editor state between runs: a bounded
// most-recent-first file list and per-file cursor, display formats,
// byte order, and panel focus. Callers key entries by absolute path.
//
// The store edits the JSON document in place by path instead of
// round-tripping it through a struct, so keys written by newer
// versions survive being opened by this one.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// MaxRecent bounds the recent list. Entries that fall off it lose
// their per-file state too.
const MaxRecent = 10

// ErrCorrupt reports an unreadable session file. Open still returns a
// usable empty store alongside it; the old file is overwritten on the
// next Save.
var ErrCorrupt = errors.New("session file is corrupt")

// FileState is the remembered state for one file.
type FileState struct {
	Cursor       int64
	DataFormat   string
	TextFormat   string
	OffsetFormat string
	Endian       string
	Focus        string
}

// Store holds the session document for one session file path.
type Store struct {
	path string
	raw  []byte
}

// Open reads the session file. A missing file yields an empty store; a
// corrupt or unreadable one yields an empty store plus the error so
// the caller can log it and keep going.
func Open(path string) (*Store, error) {
	s := &Store{path: path, raw: newDoc()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("session %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return s, fmt.Errorf("session %s: %w", path, ErrCorrupt)
	}
	s.raw = data
	return s, nil
}

func newDoc() []byte { return []byte(`{"version":1}`) }

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Lookup returns the remembered state for a file.
func (s *Store) Lookup(file string) (FileState, bool) {
	entry := gjson.GetBytes(s.raw, "files."+escapeKey(file))
	if !entry.Exists() {
		return FileState{}, false
	}
	return FileState{
		Cursor:       entry.Get("cursor").Int(),
		DataFormat:   entry.Get("data_format").String(),
		TextFormat:   entry.Get("text_format").String(),
		OffsetFormat: entry.Get("offset_format").String(),
		Endian:       entry.Get("endian").String(),
		Focus:        entry.Get("focus").String(),
	}, true
}

// Put records the state for a file and moves it to the front of the
// recent list.
func (s *Store) Put(file string, st FileState) error {
	key := "files." + escapeKey(file)
	raw := s.raw
	var err error
	fields := []struct {
		path  string
		value any
	}{
		{key + ".cursor", st.Cursor},
		{key + ".data_format", st.DataFormat},
		{key + ".text_format", st.TextFormat},
		{key + ".offset_format", st.OffsetFormat},
		{key + ".endian", st.Endian},
		{key + ".focus", st.Focus},
	}
	for _, f := range fields {
		raw, err = sjson.SetBytes(raw, f.path, f.value)
		if err != nil {
			return fmt.Errorf("session put %s: %w", file, err)
		}
	}
	s.raw = raw
	return s.touchRecent(file)
}

// Recent returns the recent files, most recent first.
func (s *Store) Recent() []string {
	items := gjson.GetBytes(s.raw, "recent").Array()
	out := make([]string, 0, len(items))
	for _, r := range items {
		out = append(out, r.String())
	}
	return out
}

// Save writes the document, creating the directory if needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	if err := os.WriteFile(s.path, s.raw, 0o600); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

func (s *Store) touchRecent(file string) error {
	old := gjson.GetBytes(s.raw, "recent").Array()
	recent := make([]string, 0, MaxRecent)
	recent = append(recent, file)
	var evicted []string
	for _, r := range old {
		p := r.String()
		if p == file {
			continue
		}
		if len(recent) < MaxRecent {
			recent = append(recent, p)
		} else {
			evicted = append(evicted, p)
		}
	}

	raw, err := sjson.SetBytes(s.raw, "recent", recent)
	if err != nil {
		return fmt.Errorf("session recent: %w", err)
	}
	for _, p := range evicted {
		if pruned, err := sjson.DeleteBytes(raw, "files."+escapeKey(p)); err == nil {
			raw = pruned
		}
	}
	s.raw = raw
	return nil
}

// escapeKey protects path-syntax characters so a file path acts as a
// single literal object key. Dots in file names are the common case.
func escapeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		switch r {
		case '.', '|', '#', '@', '*', '?', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
