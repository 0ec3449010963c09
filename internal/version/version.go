// Package version reports the build version of cawebenv.
package version

import "runtime/debug"

// version is set at build time:
//
//	go build -ldflags "-X github.com/CA-CODE-Works/cawebenv/internal/version.version=v1.2.3"
var version = ""

// Get returns the release version ("v1.2.3"), "compiled-<commit>" for
// source builds that carry VCS info, "compiled" without it, or "local"
// when run through go run.
func Get() string {
	if version != "" {
		return version
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || (info.Main.Version == "(devel)" && len(info.Settings) == 0) {
		return "local"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return "compiled-" + s.Value[:7]
		}
	}
	return "compiled"
}
