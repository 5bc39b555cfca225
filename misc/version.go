// Package misc keeps program identity in a single place.
package misc

import "runtime/debug"

const appName = "kvc"

// Set at link time: -ldflags "-X kvc/misc.version=... -X kvc/misc.githash=..."
var (
	version = "dev"
	githash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns the commit the binary was built from. When it was not
// provided at link time VCS information recorded by the go tool is used.
func GetGitHash() string {
	if githash != "" {
		return githash
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var rev, dirty string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "-dirty"
			}
		}
	}
	if rev == "" {
		return "unknown"
	}
	return rev + dirty
}
