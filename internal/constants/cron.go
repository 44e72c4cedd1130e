package constants

// Cron constants for the crontab entry managed by the installer.

// DefaultSchedule is the cron expression used when the config does not set one.
// The daily paper job runs at 10:00 every day.
const DefaultSchedule = "0 10 * * *"

// CronLogFilename is the file the crontab entry redirects job output into.
// The file lives next to the job and is written by the redirection, not by
// the installer.
const CronLogFilename = "cron_output.log"

// JobScriptName is the conventional name of the external job script when the
// installer is asked to schedule a script instead of its own job subcommand.
const JobScriptName = "daily_paper_job.py"

// DefaultInterpreter is the interpreter looked up on PATH for external job
// scripts.
const DefaultInterpreter = "python3"
