package script

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFindScripts(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.lua", "a.lua", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.lua"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	extra := filepath.Join(dir, "explicit.lua")
	got := FindScripts([]string{dir, filepath.Join(dir, "missing")}, []string{extra})
	want := []string{
		filepath.Join(dir, "a.lua"),
		filepath.Join(dir, "b.lua"),
		extra,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindScripts() = %v\nwant %v", got, want)
	}
}

func TestFindScriptsEmpty(t *testing.T) {
	if got := FindScripts(nil, nil); len(got) != 0 {
		t.Errorf("FindScripts() = %v, want none", got)
	}
}
