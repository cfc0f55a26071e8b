// Package version carries build metadata injected with -ldflags, e.g.
// -X github.com/SASASDAa/tgsg-sub000/internal/version.Commit=$(git rev-parse HEAD).
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// Build is the metadata served at /api/version.
type Build struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Dirty   bool   `json:"dirty"`
}

func Current() Build {
	return Build{Version: Version, Commit: Commit, Date: Date, Dirty: Dirty == "true"}
}

func (b Build) String() string {
	s := fmt.Sprintf("telecards %s (%s)", b.Version, b.Commit)
	if b.Dirty {
		s += " dirty"
	}
	return s
}
