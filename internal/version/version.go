package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via ldflags by GoReleaser
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	// If version wasn't set via ldflags, try to get it from Go module info.
	// This works when installed via "go install github.com/pthm/sqlcraft/cmd/sqlcraft@version".
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
			Commit = shortRevision(setting.Value)
		case "vcs.time":
			Date = setting.Value
		}
	}
}

func shortRevision(rev string) string {
	if len(rev) >= 7 {
		return rev[:7]
	}
	return rev
}

// Info returns formatted version information
func Info() string {
	return fmt.Sprintf("sqlcraft %s (commit: %s, built: %s) %s",
		Version, Commit, Date, runtime.Version())
}

// Short returns just the version string
func Short() string {
	return Version
}
