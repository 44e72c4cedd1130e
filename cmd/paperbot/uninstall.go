package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/crontab"
)

var (
	uninstallConfigPath  string
	uninstallScript      string
	uninstallInterpreter string
	uninstallDebug       bool
)

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the daily job from the user crontab",
	Long: `Remove crontab entries referencing the daily paper job. Use the same
--script value that was passed to install when an external script was
scheduled.`,
	Run: uninstallHandler,
}

func uninstallHandler(cmd *cobra.Command, args []string) {
	_, log, err := loadRuntime(uninstallConfigPath, uninstallDebug)
	if err != nil {
		os.Exit(1)
	}

	resolver := crontab.NewResolver()
	var paths crontab.JobPaths
	if uninstallScript != "" {
		paths, err = resolver.ResolveScript(uninstallScript, uninstallInterpreter)
	} else {
		paths, err = resolver.ResolveSelf()
	}
	if err != nil {
		fmt.Printf(constants.MsgInstallResolveError, err)
		os.Exit(1)
	}

	svc := crontab.NewService(log)
	removed, err := svc.Remove(cmd.Context(), paths.Script)
	if err != nil {
		fmt.Printf(constants.MsgInstallCrontabError, err)
		os.Exit(1)
	}

	if removed > 0 {
		fmt.Printf(constants.MsgUninstallDone, removed)
	} else {
		fmt.Print(constants.MsgUninstallNone)
	}
}

func init() {
	uninstallCmd.Flags().StringVarP(&uninstallConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	uninstallCmd.Flags().StringVar(&uninstallScript, "script", "", "External script whose entries should be removed")
	uninstallCmd.Flags().StringVar(&uninstallInterpreter, "interpreter", constants.DefaultInterpreter, "Interpreter used when the script was installed")
	uninstallCmd.Flags().BoolVarP(&uninstallDebug, "debug", "d", false, "Enable debug logging")
}
