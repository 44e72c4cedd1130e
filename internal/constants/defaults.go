package constants

// Fallback build metadata for the paperbot binary. The real values are
// injected into cmd/paperbot via -ldflags at build time.

// DefaultVersion is the paperbot version reported by development builds.
const DefaultVersion = "0.1.0-dev"

// DefaultBuildTime is reported when no build time was injected.
const DefaultBuildTime = "unknown"

// DefaultGitCommit is reported when no git commit was injected.
const DefaultGitCommit = "unknown"

// DefaultGoVersion is reported when no Go version was injected.
const DefaultGoVersion = "unknown"
