// Package tsast converts TypeScript and JavaScript sources into lossless JSON
// syntax trees.
package tsast

import (
	"github.com/maloquacious/semver"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 1,
		Patch: 0,
		Build: semver.Commit(),
	}
)

func Version() semver.Version {
	return version
}
