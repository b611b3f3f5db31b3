package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/ZocoLini/mk-template/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/ZocoLini/mk-template/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/ZocoLini/mk-template/internal/version.Date={{.Date}}
)

// String returns the one line version banner
func String() string {
	return Version + " (commit " + Commit + ", built " + Date + ")"
}
