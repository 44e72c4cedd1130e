package crontab

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// ValidateSchedule checks a standard five-field cron expression before it is
// written into the crontab.
func ValidateSchedule(expression string) error {
	if _, err := cron.ParseStandard(expression); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}
	return nil
}
