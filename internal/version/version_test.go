package version

import (
	"strings"
	"testing"
)

func TestDefaultsPopulated(t *testing.T) {
	if Version == "" || GitCommit == "" || BuildDate == "" {
		t.Errorf("Version = %q, GitCommit = %q, BuildDate = %q", Version, GitCommit, BuildDate)
	}
}

func TestFull(t *testing.T) {
	full := Full()
	for _, part := range []string{Version, GitCommit, BuildDate} {
		if !strings.Contains(full, part) {
			t.Errorf("Full() = %q, missing %q", full, part)
		}
	}
}

func TestShortRevision(t *testing.T) {
	tests := []struct {
		revision string
		modified string
		want     string
	}{
		{"0123456789abcdef", "false", "0123456"},
		{"0123456789abcdef", "true", "0123456-dirty"},
		{"abc", "false", "abc"},
		{"abc", "true", "abc-dirty"},
	}
	for _, tt := range tests {
		if got := shortRevision(tt.revision, tt.modified); got != tt.want {
			t.Errorf("shortRevision(%q, %s) = %q, want %q", tt.revision, tt.modified, got, tt.want)
		}
	}
}
