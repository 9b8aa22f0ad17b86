package version

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build-time via -ldflags
var (
	// Version is the semantic version (e.g., "v1.0.0")
	Version = "dev"

	// GitCommit is the git commit hash
	GitCommit = "unknown"

	// BuildTime is the build timestamp
	BuildTime = "unknown"

	// GitDirty indicates if there were uncommitted changes
	GitDirty = ""
)

// Info is the build information in a form suitable for JSON or YAML.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	// WireGuardTools is the `wg --version` line, when known.
	WireGuardTools string `json:"wireguard_tools,omitempty" yaml:"wireguard_tools,omitempty"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		Dirty:     GitDirty == "true",
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// GetVersion returns a one-line version string:
// wgtools 0.1.0 (abc1234 2025-11-14T21:51:00Z)
func GetVersion(name string) string {
	dirty := ""
	if GitDirty == "true" {
		dirty = "-dirty"
	}

	return fmt.Sprintf("%s %s (%s%s %s)", name, Version, GitCommit, dirty, BuildTime)
}

// String renders i as the multi-line block printed by `version --verbose`.
func (i Info) String() string {
	dirty := "clean"
	if i.Dirty {
		dirty = "dirty"
	}

	s := fmt.Sprintf(`Version:    %s
Git commit: %s (%s)
Built:      %s
Go version: %s`,
		i.Version,
		i.GitCommit,
		dirty,
		i.BuildTime,
		i.GoVersion,
	)
	if i.WireGuardTools != "" {
		s += "\nwg:         " + i.WireGuardTools
	}
	return s
}
