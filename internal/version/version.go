package version

// Build information, overridden at link time:
//
//	-ldflags "-X github.com/arthur-debert/flatcompose/internal/version.Version=v1.2.0"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
