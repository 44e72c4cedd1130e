package config

import "github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"

// applyDefaults fills in default values for unset fields.
func applyDefaults(c *Config) {
	if c.Workspace.Path == "" {
		c.Workspace.Path = constants.DefaultWorkspace
	}

	if c.Job.Schedule == "" {
		c.Job.Schedule = constants.DefaultSchedule
	}
	if c.Job.PapersDir == "" {
		c.Job.PapersDir = "papers"
	}
	if c.Job.SummariesDir == "" {
		c.Job.SummariesDir = "summaries"
	}
	if c.Job.PapersPerDay == 0 {
		c.Job.PapersPerDay = 5
	}
	if c.Job.DownloadDelaySeconds == 0 {
		c.Job.DownloadDelaySeconds = 1
	}

	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "Mozilla/5.0"
	}
	if c.Fetch.TimeoutSeconds == 0 {
		c.Fetch.TimeoutSeconds = 30
	}
	if c.Fetch.MaxResponseSize == 0 {
		c.Fetch.MaxResponseSize = 32 * 1024 * 1024
	}
	if c.Fetch.PapersURL == "" {
		c.Fetch.PapersURL = "https://huggingface.co/papers/date/"
	}
	if c.Fetch.ArxivURL == "" {
		c.Fetch.ArxivURL = "https://arxiv.org"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
}
