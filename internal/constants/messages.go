package constants

// Text message constants used by the paperbot CLI.

// Install messages
const (
	// MsgInstallDone is the success message after the crontab entry is installed.
	MsgInstallDone = "✅ Cron job installed (schedule: %s)\n"

	// MsgInstallExists is printed when the job is already in the crontab.
	MsgInstallExists = "Cron job already exists, no changes made\n"

	// MsgInstallLine is the label showing the installed crontab line.
	MsgInstallLine = "   Entry: %s\n"

	// MsgInstallResolveError is the error message when path resolution fails.
	MsgInstallResolveError = "❌ Failed to resolve job paths: %v\n"

	// MsgInstallCrontabError is the error message when the crontab cannot be
	// read or written.
	MsgInstallCrontabError = "❌ Crontab operation failed: %v\n"
)

// Uninstall messages
const (
	// MsgUninstallDone is the success message after entries are removed.
	MsgUninstallDone = "✅ Removed %d cron entry(ies)\n"

	// MsgUninstallNone is printed when no matching entry was found.
	MsgUninstallNone = "No matching cron entry found, nothing removed\n"
)

// Config messages
const (
	// MsgConfigLoadError is the error message when configuration loading fails.
	MsgConfigLoadError = "❌ Failed to load configuration: %v\n"

	// MsgConfigValidationError is the message when configuration validation fails.
	MsgConfigValidationError = "❌ Configuration validation failed:\n"

	// MsgConfigValid is the message when configuration is successfully loaded and validated.
	MsgConfigValid = "✅ Configuration loaded"

	// MsgConfigValidatePrefix is the prefix for configuration validation errors.
	MsgConfigValidatePrefix = "  - %v\n"
)

// Job messages
const (
	// MsgJobDone is the success message after a daily job run.
	MsgJobDone = "✅ Daily paper job finished (downloaded: %d, summaries: %d)\n"

	// MsgJobFailed is the error message when the daily job fails.
	MsgJobFailed = "❌ Daily paper job failed: %v\n"

	// MsgPullDone is the success message after a pull run.
	MsgPullDone = "✅ Pull finished (found: %d, downloaded: %d, skipped: %d)\n"
)
