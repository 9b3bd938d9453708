package version

import (
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	out := Full("pixcodec")
	for _, want := range []string{"pixcodec " + Version, "Git commit: " + GitCommit, "Go: "} {
		if !strings.Contains(out, want) {
			t.Errorf("Full() missing %q:\n%s", want, out)
		}
	}
}

func TestInfo(t *testing.T) {
	if !strings.HasPrefix(Info(), Version) {
		t.Errorf("Info() = %q, want prefix %q", Info(), Version)
	}
}
