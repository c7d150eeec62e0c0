// Package build provides build-time information for the CLI application.
// Version is read from the embedded VERSION file or set via ldflags during build.
package build

import (
	_ "embed"
	"runtime"
	"strings"
)

//go:embed VERSION
var embeddedVersion string

// version can be overridden via ldflags:
// -X github.com/tacogips/clismith/internal/build.version=x.y.z
var version string

// Overridden via ldflags alongside version.
var (
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Version returns the application version.
// Priority: ldflags > embedded VERSION file
func Version() string {
	if version != "" {
		return version
	}
	return strings.TrimSpace(embeddedVersion)
}

// GeneratorTag is the provenance tag recorded in every IR built by this binary.
func GeneratorTag() string {
	return "clismith/" + Version()
}

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{
		Version:   Version(),
		GoVersion: runtime.Version(),
		Commit:    gitCommit,
		BuildDate: buildDate,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
