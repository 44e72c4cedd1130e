// Package config provides configuration loading and validation for paperbot.
// It supports TOML configuration files with environment variable expansion,
// default values, and validation.
package config

import "path/filepath"

// Config is the root configuration structure.
type Config struct {
	Workspace WorkspaceConfig `toml:"workspace"`
	Job       JobConfig       `toml:"job"`
	Fetch     FetchConfig     `toml:"fetch"`
	Logging   LoggingConfig   `toml:"logging"`
}

// WorkspaceConfig configures the directory holding papers, summaries and the
// run log.
type WorkspaceConfig struct {
	Path string `toml:"path"`
}

// JobConfig configures the daily paper job and its crontab entry.
type JobConfig struct {
	Schedule             string `toml:"schedule"`               // Cron expression for the installed entry
	PapersDir            string `toml:"papers_dir"`             // PDF output dir, relative to workspace unless absolute
	SummariesDir         string `toml:"summaries_dir"`          // Markdown output dir, relative to workspace unless absolute
	PapersPerDay         int    `toml:"papers_per_day"`         // How many papers to take from each daily page
	DownloadDelaySeconds int    `toml:"download_delay_seconds"` // Politeness delay between PDF downloads
}

// FetchConfig configures outbound HTTP requests.
type FetchConfig struct {
	UserAgent       string `toml:"user_agent"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	MaxResponseSize int64  `toml:"max_response_size"`
	PapersURL       string `toml:"papers_url"` // Daily papers index, date appended as YYYY-MM-DD
	ArxivURL        string `toml:"arxiv_url"`  // arXiv base URL for /pdf and /abs pages
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // json, text
	Output string `toml:"output"` // stdout, stderr, or file path
}

// PapersPath returns the absolute papers directory.
func (c *Config) PapersPath() string {
	return c.resolveDir(c.Job.PapersDir)
}

// SummariesPath returns the absolute summaries directory.
func (c *Config) SummariesPath() string {
	return c.resolveDir(c.Job.SummariesDir)
}

func (c *Config) resolveDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Workspace.Path, dir)
}
