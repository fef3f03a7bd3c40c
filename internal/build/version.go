// Package build provides version and build information for semrel.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// ShortCommit returns the commit hash truncated to 8 characters.
func ShortCommit() string {
	if len(Commit) > 8 {
		return Commit[:8]
	}
	return Commit
}
