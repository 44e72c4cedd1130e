package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/config"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/papers"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/summary"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paperbot",
	Short: "Paperbot - daily AI paper fetcher",
	Long: `Paperbot downloads the daily AI papers featured on Hugging Face,
stores their PDFs and markdown summaries, and installs itself into the
user crontab so the job runs every day.`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(pullCmd)
	rootCmd.AddCommand(jobCmd)
}

// loadRuntime loads and validates the configuration, applies the debug flag
// and builds the logger. Commands exit through the returned error.
func loadRuntime(configPath string, debug bool) (*config.Config, *logger.Logger, error) {
	if configPath == "" {
		configPath = constants.DefaultConfigPath
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		fmt.Printf(constants.MsgConfigLoadError, err)
		return nil, nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		fmt.Print(constants.MsgConfigValidationError)
		for _, e := range errs {
			fmt.Printf(constants.MsgConfigValidatePrefix, e)
		}
		return nil, nil, fmt.Errorf("configuration validation failed")
	}

	if debug {
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		return nil, nil, err
	}
	logger.SetDefault(log)

	return cfg, log, nil
}

func newPuller(cfg *config.Config, log *logger.Logger) *papers.Puller {
	return papers.New(papers.Config{
		UserAgent:       cfg.Fetch.UserAgent,
		Timeout:         time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		MaxResponseSize: cfg.Fetch.MaxResponseSize,
		PapersURL:       cfg.Fetch.PapersURL,
		ArxivURL:        cfg.Fetch.ArxivURL,
		PapersPerDay:    cfg.Job.PapersPerDay,
		DownloadDelay:   time.Duration(cfg.Job.DownloadDelaySeconds) * time.Second,
	}, log)
}

func newGenerator(cfg *config.Config, log *logger.Logger) *summary.Generator {
	return summary.New(summary.Config{
		UserAgent:       cfg.Fetch.UserAgent,
		Timeout:         time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second,
		MaxResponseSize: cfg.Fetch.MaxResponseSize,
		ArxivURL:        cfg.Fetch.ArxivURL,
		PapersURL:       cfg.Fetch.PapersURL,
	}, log)
}
