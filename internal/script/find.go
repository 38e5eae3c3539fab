package script

import (
	"os"
	"path/filepath"
	"strings"
)

// FindScripts lists the script files named by the configuration: every
// .lua file in each directory, then the explicit files. Directory
// entries come back in name order, so load order is stable across runs.
// Missing or unreadable directories are skipped; a configured directory
// that does not exist yet is not an error.
func FindScripts(dirs, files []string) []string {
	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, ent := range entries {
			if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".lua") {
				continue
			}
			paths = append(paths, filepath.Join(dir, ent.Name()))
		}
	}
	return append(paths, files...)
}
