// Package version reports the docbabel build version.
package version

import "fmt"

// Version is set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/docbabel/internal/version.Version=v1.0.0".
var Version = "dev"

// Build metadata, set the same way as Version.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	return fmt.Sprintf("docbabel %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
