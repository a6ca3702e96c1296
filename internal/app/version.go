package service

import (
	"runtime/debug"
	"sync"
)

// version is set at build time:
//
//	go build -ldflags "-X github.com/okian/vrcstatus/internal/app.version=1.2.3"
var version string

var (
	versionOnce     sync.Once
	resolvedVersion string
)

const unknownVersion = "unknown"

// Version returns the build version, resolved once per process.
func Version() string {
	versionOnce.Do(func() {
		resolvedVersion = resolveVersion(version, debug.ReadBuildInfo)
	})
	return resolvedVersion
}

func resolveVersion(ldflags string, read func() (*debug.BuildInfo, bool)) string {
	if ldflags != "" {
		return ldflags
	}
	if info, ok := read(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return unknownVersion
}
