package version

import "testing"

func TestCurrent(t *testing.T) {
	Version, Commit, Dirty = "1.2.0", "abc123", "true"
	defer func() { Version, Commit, Dirty = "dev", "none", "false" }()

	b := Current()
	if !b.Dirty || b.Version != "1.2.0" {
		t.Fatalf("unexpected build %+v", b)
	}
	if got := b.String(); got != "telecards 1.2.0 (abc123) dirty" {
		t.Fatalf("unexpected string %q", got)
	}
}
