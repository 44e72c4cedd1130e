package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/job"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/joblog"
)

var (
	jobConfigPath string
	jobDebug      bool
)

// jobCmd represents the job command. This is what the installed crontab
// entry runs every day.
var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Run the daily paper job once",
	Long: `Run one daily job: pull papers for yesterday and today, generate
markdown summaries and append a record to the run log.`,
	Run: jobHandler,
}

func jobHandler(cmd *cobra.Command, args []string) {
	cfg, log, err := loadRuntime(jobConfigPath, jobDebug)
	if err != nil {
		os.Exit(1)
	}

	runner := job.NewRunner(
		newPuller(cfg, log),
		newGenerator(cfg, log),
		joblog.NewStorage(cfg.Workspace.Path, log),
		cfg.PapersPath(),
		cfg.SummariesPath(),
		log,
	)

	record, err := runner.Run(cmd.Context())
	if err != nil {
		fmt.Printf(constants.MsgJobFailed, err)
		os.Exit(1)
	}

	fmt.Printf(constants.MsgJobDone, record.Downloaded, record.Summaries)
}

func init() {
	jobCmd.Flags().StringVarP(&jobConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	jobCmd.Flags().BoolVarP(&jobDebug, "debug", "d", false, "Enable debug logging")
}
