package specdiff

import (
	"fmt"
	"runtime"
)

// Build metadata is set via ldflags during release builds, for example:
//
//	go build -ldflags "-X github.com/erraggy/specdiff.version=v1.0.0 -X github.com/erraggy/specdiff.commit=abc1234"
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or 'unknown'
func Commit() string {
	return commit
}

// BuildTime returns the RFC3339 build timestamp, or 'unknown'
func BuildTime() string {
	return buildTime
}

// GoVersion returns the Go runtime version the binary was built with
func GoVersion() string {
	return runtime.Version()
}

// UserAgent returns the User-Agent header value used when fetching remote documents
func UserAgent() string {
	return fmt.Sprintf("specdiff/%s", version)
}

// BuildInfo returns all build metadata as a multi-line string
func BuildInfo() string {
	return fmt.Sprintf("Version: %s\nCommit: %s\nBuild Time: %s\nGo Version: %s",
		Version(), Commit(), BuildTime(), GoVersion())
}
