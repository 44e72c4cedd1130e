package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"
)

var (
	pullConfigPath string
	pullStart      string
	pullEnd        string
	pullOut        string
	pullDebug      bool
)

// pullCmd represents the pull command
var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download papers for a date range",
	Long: `Download the daily papers for every date between --start and --end
inclusive. Without flags the range covers yesterday and today. PDFs already
on disk are skipped.`,
	Run: pullHandler,
}

func pullHandler(cmd *cobra.Command, args []string) {
	cfg, log, err := loadRuntime(pullConfigPath, pullDebug)
	if err != nil {
		os.Exit(1)
	}

	end := midnight(time.Now())
	start := end.AddDate(0, 0, -1)
	if pullStart != "" {
		if start, err = time.Parse("2006-01-02", pullStart); err != nil {
			fmt.Printf("❌ Invalid --start date %q: %v\n", pullStart, err)
			os.Exit(1)
		}
	}
	if pullEnd != "" {
		if end, err = time.Parse("2006-01-02", pullEnd); err != nil {
			fmt.Printf("❌ Invalid --end date %q: %v\n", pullEnd, err)
			os.Exit(1)
		}
	}
	if end.Before(start) {
		fmt.Printf("❌ --end %s is before --start %s\n", end.Format("2006-01-02"), start.Format("2006-01-02"))
		os.Exit(1)
	}

	outDir := cfg.PapersPath()
	if pullOut != "" {
		outDir = pullOut
	}

	puller := newPuller(cfg, log)
	report, err := puller.PullRange(cmd.Context(), start, end, outDir)
	if err != nil {
		fmt.Printf("❌ Pull failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf(constants.MsgPullDone, report.Found, report.Downloaded, report.Skipped)
}

// midnight truncates t to the start of its UTC day, matching the zone the
// --start and --end flags are parsed in.
func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func init() {
	pullCmd.Flags().StringVarP(&pullConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	pullCmd.Flags().StringVar(&pullStart, "start", "", "First date to pull, YYYY-MM-DD (default: yesterday)")
	pullCmd.Flags().StringVar(&pullEnd, "end", "", "Last date to pull, YYYY-MM-DD (default: today)")
	pullCmd.Flags().StringVarP(&pullOut, "out", "o", "", "Output directory for PDFs (overrides config)")
	pullCmd.Flags().BoolVarP(&pullDebug, "debug", "d", false, "Enable debug logging")
}
