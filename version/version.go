package version

import "runtime/debug"

// Set the version at build time with e.g.
// go build -ldflags "-X github.com/vsariola/miditrack/version.Version=$(git describe --dirty)"

var Version string

// Hash is the short VCS revision the binary was built from, suffixed with
// -dirty for modified work trees, or "" when the build has no VCS info.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	revision, modified := "", false
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if revision != "" && modified {
		return revision + "-dirty"
	}
	return revision
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	return Hash
}()
