package version

import (
	"strings"
	"testing"
)

func TestSummaryBareVersion(t *testing.T) {
	origCommit, origMessage, origDate := GitCommit, GitMessage, BuildDate
	defer func() {
		GitCommit, GitMessage, BuildDate = origCommit, origMessage, origDate
	}()
	GitCommit, GitMessage, BuildDate = "", "", ""

	got := Summary()
	if !strings.HasPrefix(got, "nu-lint ") {
		t.Fatalf("summary missing tool name: %q", got)
	}
	if strings.Contains(got, "\n") {
		t.Fatalf("expected single line without metadata, got %q", got)
	}
}

func TestSummaryIncludesBuildMetadata(t *testing.T) {
	origCommit, origMessage, origDate := GitCommit, GitMessage, BuildDate
	defer func() {
		GitCommit, GitMessage, BuildDate = origCommit, origMessage, origDate
	}()
	GitCommit = "abc123def456"
	GitMessage = "tag fix engine release"
	BuildDate = "2026-08-01T10:30:00Z"

	got := Summary()
	for _, want := range []string{
		"commit: abc123def456",
		"(tag fix engine release)",
		"built:  2026-08-01T10:30:00Z",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestVersionCanBeOverridden(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	// Simulates a release build stamping the version via -ldflags.
	Version = "1.2.3"
	if got := Summary(); !strings.Contains(got, "nu-lint 1.2.3") {
		t.Fatalf("override not reflected: %q", got)
	}
}
