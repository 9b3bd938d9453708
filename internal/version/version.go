// Package version provides build version information for pixcodec binaries.
//
// Version information is injected at build time via -ldflags, for example:
//
//	go build -ldflags "-X github.com/ironsheep/pixcodec/internal/version.GitCommit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
)

// These variables are set via -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// Info returns a one-line version string.
func Info() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitCommit, BuildTime)
}

// Full returns detailed version information including the Go toolchain.
func Full(binary string) string {
	return fmt.Sprintf("%s %s\n  Build time: %s\n  Git commit: %s\n  Go: %s %s/%s",
		binary, Version, BuildTime, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
