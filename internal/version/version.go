// Package version exposes build identification for the -version flag
// and the About dialog.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

// These variables can be set at build time via ldflags:
//
//	go build -ldflags="-X github.com/dshills/hexed/internal/version.Version=0.52.1 \
//	                   -X github.com/dshills/hexed/internal/version.GitCommit=abc123 \
//	                   -X github.com/dshills/hexed/internal/version.BuildDate=2026-08-23"
//
// When unset they are populated from the module build info where
// available, with plain fallbacks otherwise.
var (
	// Version is the release version.
	Version = ""
	// GitCommit is the short commit hash of the build.
	GitCommit = ""
	// BuildDate is the date the binary was built.
	BuildDate = ""
)

func init() {
	if GitCommit == "" || BuildDate == "" {
		populateFromBuildInfo()
	}

	if Version == "" {
		Version = "0.52-dev"
	}
	if GitCommit == "" {
		GitCommit = "unknown"
	}
	if BuildDate == "" {
		BuildDate = "unknown"
	}
}

// populateFromBuildInfo fills commit and date from the VCS stamps Go
// embeds when building inside a git checkout.
func populateFromBuildInfo() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	var revision, modified, vcsTime string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		case "vcs.time":
			vcsTime = setting.Value
		}
	}

	if GitCommit == "" && revision != "" {
		GitCommit = shortRevision(revision, modified)
	}
	if BuildDate == "" && vcsTime != "" {
		if t, err := time.Parse(time.RFC3339, vcsTime); err == nil {
			BuildDate = t.Format("2006-01-02")
		}
	}
}

func shortRevision(revision, modified string) string {
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if modified == "true" {
		revision += "-dirty"
	}
	return revision
}

// Full returns the complete version string.
func Full() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate)
}
