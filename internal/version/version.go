// internal/version/version.go
package version

// Version is the tool version string. Release builds override it via
// -ldflags "-X rnannot/internal/version.Version=...".
var Version = "0.1.0-dev"
