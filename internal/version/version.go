// Package version exposes the build metadata stamped into the imbue
// binary. Release builds inject the stamped values through
// -ldflags "-X github.com/jmylchreest/imbue/internal/version.Version=x.y.z"
// and the matching Commit and Date flags.
package version

import (
	"fmt"
	"runtime"
)

// Stamped at build time; the defaults identify a from-source build.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is the machine-readable form of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the stamped values and runtime facts.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the long form shown by 'imbue version' and --version.
func String() string {
	info := GetInfo()
	if info.Commit == "unknown" || info.Date == "unknown" {
		return fmt.Sprintf("imbue version %s (%s, %s)", info.Version, info.GoVersion, info.Platform)
	}
	commit := info.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("imbue version %s (commit: %s, built: %s, %s, %s)",
		info.Version, commit, info.Date, info.GoVersion, info.Platform)
}

// Short is the bare version for cobra's --version plumbing.
func Short() string {
	return Version
}
