package version

import "runtime/debug"

// Version can be set at build time, e.g.:
// go build -ldflags "-X github.com/vsariola/rack/version.Version=$(git describe --dirty)"
var Version string

// Hash is the short VCS revision the binary was built from, suffixed with
// "-dirty" when the working tree had modifications.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	modified := false
	revision := ""
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.modified":
			modified = setting.Value == "true"
		case "vcs.revision":
			revision = setting.Value
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

// Application is the string stored in saved patches to tell which program
// wrote them.
func Application() string {
	if VersionOrHash == "" {
		return "rack"
	}
	return "rack " + VersionOrHash
}
