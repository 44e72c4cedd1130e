package version

import (
	"fmt"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

// SetInfo overrides the build metadata with values injected at link time.
// Empty values leave the defaults in place.
func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Short returns a one-line version string for log output.
func Short() string {
	return fmt.Sprintf("paperbot %s (%s)", Version, GitCommit)
}
