package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/constants"
	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/crontab"
)

var (
	installConfigPath  string
	installSchedule    string
	installScript      string
	installInterpreter string
	installDebug       bool
)

// installCmd represents the install command
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the daily job into the user crontab",
	Long: `Install a crontab entry running the daily paper job.

By default the entry runs this binary's own job subcommand. With --script an
external script is scheduled instead; the script is made executable and run
through the configured interpreter. Installation is idempotent: an entry for
the same job path is never added twice.`,
	Run: installHandler,
}

func installHandler(cmd *cobra.Command, args []string) {
	cfg, log, err := loadRuntime(installConfigPath, installDebug)
	if err != nil {
		os.Exit(1)
	}

	schedule := cfg.Job.Schedule
	if installSchedule != "" {
		schedule = installSchedule
	}
	if err := crontab.ValidateSchedule(schedule); err != nil {
		fmt.Printf("❌ Invalid schedule %q: %v\n", schedule, err)
		os.Exit(1)
	}

	resolver := crontab.NewResolver()
	var paths crontab.JobPaths
	if installScript != "" {
		paths, err = resolver.ResolveScript(installScript, installInterpreter)
		if err == nil {
			err = crontab.MarkExecutable(paths.Script)
		}
	} else {
		paths, err = resolver.ResolveSelf()
	}
	if err != nil {
		fmt.Printf(constants.MsgInstallResolveError, err)
		os.Exit(1)
	}

	command := paths.Command()
	if installScript == "" {
		command, err = jobCommand(paths, installConfigPath)
		if err != nil {
			fmt.Printf(constants.MsgInstallResolveError, err)
			os.Exit(1)
		}
	}

	entry := crontab.Entry{
		Schedule: schedule,
		WorkDir:  paths.Dir,
		Command:  command,
		LogPath:  filepath.Join(paths.Dir, constants.CronLogFilename),
	}

	svc := crontab.NewService(log)
	installed, err := svc.Ensure(cmd.Context(), entry, paths.Script)
	if err != nil {
		fmt.Printf(constants.MsgInstallCrontabError, err)
		os.Exit(1)
	}

	if installed {
		fmt.Printf(constants.MsgInstallDone, schedule)
		fmt.Printf(constants.MsgInstallLine, entry.Line())
	} else {
		fmt.Print(constants.MsgInstallExists)
	}
}

// jobCommand builds the job invocation for the crontab line. The config path
// is made absolute before it is embedded: the cron entry cd's into the
// binary's directory, so a relative path would resolve against a different
// directory at cron time than the one it was validated against here.
func jobCommand(paths crontab.JobPaths, configPath string) (string, error) {
	command := paths.Command() + " job"
	if configPath != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return "", fmt.Errorf("cannot resolve config path %s: %w", configPath, err)
		}
		command += " --config " + quotePath(abs)
	}
	return command, nil
}

// quotePath wraps a path in double quotes when it contains whitespace.
func quotePath(path string) string {
	if strings.ContainsAny(path, " \t") {
		return `"` + path + `"`
	}
	return path
}

func init() {
	installCmd.Flags().StringVarP(&installConfigPath, "config", "c", "", "Path to configuration file (default: ./config.toml)")
	installCmd.Flags().StringVarP(&installSchedule, "schedule", "s", "", "Cron schedule (overrides config)")
	installCmd.Flags().StringVar(&installScript, "script", "", "Schedule an external script (e.g. "+constants.JobScriptName+") instead of this binary")
	installCmd.Flags().StringVar(&installInterpreter, "interpreter", constants.DefaultInterpreter, "Interpreter for --script, looked up on PATH")
	installCmd.Flags().BoolVarP(&installDebug, "debug", "d", false, "Enable debug logging")
}
