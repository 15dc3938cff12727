// Package version reports the build information of the running binary.
package version

import (
	"errors"
	"runtime/debug"
)

// Devel is reported for builds without module version information.
const Devel = "(devel)"

var (
	errBuildInfo      = errors.New("fetching build info failed")
	errBuildInfoEmpty = errors.New("build information is empty")
)

// BuildInfo returns the build information
func BuildInfo() (*debug.BuildInfo, error) {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, errBuildInfo
	}

	if bi == nil {
		return nil, errBuildInfoEmpty
	}

	return bi, nil
}

// Module returns the version of the module at path as recorded in the build
// information, or Devel when it is unknown.
func Module(path string) string {
	bi, err := BuildInfo()
	if err != nil {
		return Devel
	}

	if bi.Main.Path == path && bi.Main.Version != "" {
		return bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path != path {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			return dep.Replace.Version
		}
		if dep.Version != "" {
			return dep.Version
		}
	}

	return Devel
}
