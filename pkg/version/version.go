// Package version exposes build metadata for the treehugger binary.
package version

import "runtime/debug"

// Populated at build time via -ldflags. When building without ldflags
// (go install, tests), InitBinaryVersion fills them from the embedded
// module build info instead.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// InitBinaryVersion resolves version metadata from the binary's build info
// when it was not injected at link time.
func InitBinaryVersion() {
	if Version != "dev" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Commit = setting.Value
		case "vcs.time":
			Date = setting.Value
		}
	}
}
