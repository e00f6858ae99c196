package version

import (
	"strings"
	"testing"
)

func TestVersionStringNonEmpty(t *testing.T) {
	if s := String(); s == "" {
		t.Fatalf("version string is empty")
	}
}

func TestVersionStringIncludesBuildMetadata(t *testing.T) {
	oldCommit, oldDate := Commit, Date
	defer func() { Commit, Date = oldCommit, oldDate }()

	Commit = "abc1234"
	Date = "2025-11-02"
	s := String()
	if !strings.Contains(s, "abc1234") || !strings.Contains(s, "2025-11-02") {
		t.Fatalf("version string missing build metadata: %q", s)
	}
}
