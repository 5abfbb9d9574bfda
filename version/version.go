package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time:
//
//	-ldflags "-X github.com/kbukum/modkit/version.Version=v1.2.0 \
//	          -X github.com/kbukum/modkit/version.GitCommit=$(git rev-parse HEAD)"
var (
	Version   = "dev"
	GitCommit = ""
)

// Short returns "version-commit", with "-dirty" appended when the build came
// from a modified tree, or just the version when no commit is known.
func Short() string {
	commit, dirty := commitInfo()
	return short(Version, commit, dirty)
}

func short(version, commit string, dirty bool) string {
	if commit == "" {
		return version
	}
	if dirty {
		return fmt.Sprintf("%s-%s-dirty", version, commit)
	}
	return fmt.Sprintf("%s-%s", version, commit)
}

// commitInfo prefers the stamped GitCommit and falls back to the vcs
// settings recorded by the Go toolchain. Commits are truncated to the
// seven-character short form.
func commitInfo() (commit string, dirty bool) {
	commit = GitCommit
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.modified":
				dirty = s.Value == "true"
			}
		}
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return commit, dirty
}
