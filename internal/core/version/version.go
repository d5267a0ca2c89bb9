// Package version reports the build stamped into the binaries
package version

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Version, Commit and Date are set at build time:
//
//	-ldflags "-X 'slopmeter/internal/core/version.Version=v0.3.0' -X 'slopmeter/internal/core/version.Commit=abcd' -X 'slopmeter/internal/core/version.Date=2026-10-01'"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns the build information for service
func Info(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: Version,
		Commit:  Commit,
		Date:    Date,
	}
}
