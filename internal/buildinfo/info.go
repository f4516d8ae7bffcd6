// Package buildinfo carries version details stamped in by the release
// build, e.g. -ldflags "-X github.com/greenacre-dev/farmdesk/internal/buildinfo.Version=v0.3.0".
package buildinfo

var (
	// Version will be set via ldflags during build.
	Version = "dev"
	// Commit will be set via ldflags during build.
	Commit = "none"
	// Date will be set via ldflags during build.
	Date = "unknown"
)
