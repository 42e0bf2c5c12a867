package version

import "fmt"

// Build-time variables injected via -ldflags.
// The defaults apply to local go run / go test builds; the release
// pipeline stamps the computed version when packaging the binary.
var (
	Version = "v0.0.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash.
func GetCommit() string {
	return Commit
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
