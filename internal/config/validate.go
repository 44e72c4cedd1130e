package config

import (
	"fmt"
	"strings"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/crontab"
)

// Validate checks the configuration and returns all problems found.
func (c *Config) Validate() []error {
	var errors []error

	if c.Workspace.Path == "" {
		errors = append(errors, fmt.Errorf("workspace.path is required"))
	} else if strings.Contains(c.Workspace.Path, "..") {
		errors = append(errors, fmt.Errorf("workspace.path contains potentially dangerous path traversal sequence"))
	}

	if err := crontab.ValidateSchedule(c.Job.Schedule); err != nil {
		errors = append(errors, fmt.Errorf("job.schedule: %w", err))
	}
	if c.Job.PapersPerDay < 1 {
		errors = append(errors, fmt.Errorf("job.papers_per_day must be at least 1, got %d", c.Job.PapersPerDay))
	}
	if c.Job.DownloadDelaySeconds < 0 {
		errors = append(errors, fmt.Errorf("job.download_delay_seconds cannot be negative, got %d", c.Job.DownloadDelaySeconds))
	}

	if c.Fetch.TimeoutSeconds < 1 {
		errors = append(errors, fmt.Errorf("fetch.timeout_seconds must be at least 1, got %d", c.Fetch.TimeoutSeconds))
	}
	for name, url := range map[string]string{
		"fetch.papers_url": c.Fetch.PapersURL,
		"fetch.arxiv_url":  c.Fetch.ArxivURL,
	} {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			errors = append(errors, fmt.Errorf("%s must start with http:// or https://", name))
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errors = append(errors, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errors = append(errors, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}
	if c.Logging.Output == "" {
		errors = append(errors, fmt.Errorf("logging.output is required"))
	}

	return errors
}
