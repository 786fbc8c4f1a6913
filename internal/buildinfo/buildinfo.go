package buildinfo

import "fmt"

// Set with -ldflags "-X github.com/liamsorsby/website-e2e/internal/buildinfo.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("navcheck %s (commit=%s, date=%s)", Version, Commit, Date)
}
