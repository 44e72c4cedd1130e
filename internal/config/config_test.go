package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[workspace]
path = "/opt/paperbot"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/paperbot", cfg.Workspace.Path)
	assert.Equal(t, "0 10 * * *", cfg.Job.Schedule)
	assert.Equal(t, 5, cfg.Job.PapersPerDay)
	assert.Equal(t, 1, cfg.Job.DownloadDelaySeconds)
	assert.Equal(t, "Mozilla/5.0", cfg.Fetch.UserAgent)
	assert.Equal(t, "https://huggingface.co/papers/date/", cfg.Fetch.PapersURL)
	assert.Equal(t, "https://arxiv.org", cfg.Fetch.ArxivURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[workspace]
path = "/opt/paperbot"

[job]
schedule = "30 6 * * *"
papers_per_day = 3

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "30 6 * * *", cfg.Job.Schedule)
	assert.Equal(t, 3, cfg.Job.PapersPerDay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_ExpandsEnvAndHome(t *testing.T) {
	t.Setenv("PAPERBOT_TEST_WS", "/data/paperbot")
	path := writeConfig(t, `
[workspace]
path = "${PAPERBOT_TEST_WS}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/paperbot", cfg.Workspace.Path)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".paperbot"), Default().Workspace.Path)
}

func TestLoad_EnvDefaultValue(t *testing.T) {
	path := writeConfig(t, `
[workspace]
path = "${PAPERBOT_UNSET_VAR:/fallback/dir}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/fallback/dir", cfg.Workspace.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFileFallsBack(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "0 10 * * *", cfg.Job.Schedule)
}

func TestLoadOrDefault_ParseErrorStillFails(t *testing.T) {
	path := writeConfig(t, `not valid toml ===`)

	_, err := LoadOrDefault(path)
	assert.Error(t, err)
}

func TestPaths_RelativeAndAbsolute(t *testing.T) {
	cfg := Default()
	cfg.Workspace.Path = "/opt/paperbot"
	cfg.Job.PapersDir = "papers"
	cfg.Job.SummariesDir = "/srv/summaries"

	assert.Equal(t, "/opt/paperbot/papers", cfg.PapersPath())
	assert.Equal(t, "/srv/summaries", cfg.SummariesPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty workspace path",
			mutate:  func(c *Config) { c.Workspace.Path = "" },
			wantErr: "workspace.path is required",
		},
		{
			name:    "path traversal",
			mutate:  func(c *Config) { c.Workspace.Path = "/opt/../etc" },
			wantErr: "path traversal",
		},
		{
			name:    "invalid schedule",
			mutate:  func(c *Config) { c.Job.Schedule = "every day at ten" },
			wantErr: "job.schedule",
		},
		{
			name:    "papers per day zero",
			mutate:  func(c *Config) { c.Job.PapersPerDay = -1 },
			wantErr: "papers_per_day",
		},
		{
			name:    "bad papers url",
			mutate:  func(c *Config) { c.Fetch.PapersURL = "ftp://example.com" },
			wantErr: "fetch.papers_url",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "invalid log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Workspace.Path = "/opt/paperbot"
			tt.mutate(cfg)

			errs := cfg.Validate()
			if tt.wantErr == "" {
				assert.Empty(t, errs)
				return
			}
			require.NotEmpty(t, errs)
			found := false
			for _, err := range errs {
				if strings.Contains(err.Error(), tt.wantErr) {
					found = true
				}
			}
			assert.True(t, found, "expected an error containing %q, got %v", tt.wantErr, errs)
		})
	}
}
