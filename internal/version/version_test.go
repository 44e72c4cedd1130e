package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetInfo(t *testing.T) {
	originalVersion := Version
	originalBuildTime := BuildTime
	originalGitCommit := GitCommit
	originalGoVersion := GoVersion

	defer func() {
		Version = originalVersion
		BuildTime = originalBuildTime
		GitCommit = originalGitCommit
		GoVersion = originalGoVersion
	}()

	SetInfo("1.0.0", "2026-01-01T00:00:00Z", "abc123", "go1.26")

	assert.Equal(t, "1.0.0", Version)
	assert.Equal(t, "2026-01-01T00:00:00Z", BuildTime)
	assert.Equal(t, "abc123", GitCommit)
	assert.Equal(t, "go1.26", GoVersion)
}

func TestSetInfoEmptyValuesKeepDefaults(t *testing.T) {
	originalVersion := Version
	defer func() { Version = originalVersion }()

	Version = "test-version"
	SetInfo("", "", "", "")

	assert.Equal(t, "test-version", Version)
}

func TestShort(t *testing.T) {
	originalVersion := Version
	originalGitCommit := GitCommit
	defer func() {
		Version = originalVersion
		GitCommit = originalGitCommit
	}()

	Version = "1.2.3"
	GitCommit = "deadbeef"

	msg := Short()

	assert.Contains(t, msg, "paperbot")
	assert.Contains(t, msg, "1.2.3")
	assert.Contains(t, msg, "deadbeef")
}
