// Package config provides build and version information for practicelog.
package config

import (
	"fmt"
	"runtime"
)

// Build information. Populated at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// VersionString returns the one-line version banner the CLIs print.
func VersionString() string {
	return fmt.Sprintf("practicelog %s (%s) built at %s with %s",
		Version, Commit, BuildTime, runtime.Version())
}
