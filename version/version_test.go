package version

import (
	"strings"
	"testing"
)

func TestShortFormats(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		dirty   bool
		want    string
	}{
		{"no commit", "dev", "", false, "dev"},
		{"tagged", "v1.2.0", "abc1234", false, "v1.2.0-abc1234"},
		{"dirty", "v1.2.0", "abc1234", true, "v1.2.0-abc1234-dirty"},
		{"dev with commit", "dev", "abc1234", false, "dev-abc1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := short(tt.version, tt.commit, tt.dirty); got != tt.want {
				t.Errorf("short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommitInfoPrefersStampedCommit(t *testing.T) {
	orig := GitCommit
	GitCommit = "0123456789abcdef"
	defer func() { GitCommit = orig }()

	commit, _ := commitInfo()
	if commit != "0123456" {
		t.Errorf("commit = %q, want stamped value truncated to %q", commit, "0123456")
	}
}

func TestShortStartsWithVersion(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	Version, GitCommit = "v9.9.9", ""
	defer func() { Version, GitCommit = origVersion, origCommit }()

	// the commit, if any, comes from the test binary's build info
	if got := Short(); !strings.HasPrefix(got, "v9.9.9") {
		t.Errorf("Short() = %q, want %q prefix", got, "v9.9.9")
	}
}
