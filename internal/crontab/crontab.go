// Package crontab manages the single crontab entry that runs the daily
// paper job. It reads the current user's crontab, appends the entry when
// missing and replaces the crontab through the system crontab command.
package crontab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/MiningMyBusiness/keep-up-with-ai-papers/internal/logger"
)

// Error kinds surfaced by the installer. All are fatal for a single run;
// nothing is retried.
var (
	// ErrPathResolution reports that the job script directory or the
	// interpreter could not be resolved.
	ErrPathResolution = errors.New("path resolution failed")

	// ErrCrontabRead reports that the current crontab could not be read.
	ErrCrontabRead = errors.New("failed to read crontab")

	// ErrCrontabWrite reports that the new crontab could not be installed.
	ErrCrontabWrite = errors.New("failed to write crontab")
)

// Entry describes one crontab line managed by the installer.
type Entry struct {
	Schedule string // five-field cron expression
	WorkDir  string // directory the job runs from
	Command  string // full job invocation
	LogPath  string // file job output is appended to
}

// Line renders the crontab line for the entry.
func (e Entry) Line() string {
	return fmt.Sprintf("%s cd %s && %s >> %s 2>&1", e.Schedule, e.WorkDir, e.Command, e.LogPath)
}

// Runner executes an external command, optionally feeding it stdin.
// It exists so tests can substitute a fake for the real crontab binary.
type Runner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stdout, stderr string, err error)
}

// execRunner runs commands through os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Service reads and replaces the current user's crontab.
type Service struct {
	runner Runner
	logger *logger.Logger
}

// NewService creates a Service backed by the system crontab command.
func NewService(log *logger.Logger) *Service {
	return NewServiceWithRunner(execRunner{}, log)
}

// NewServiceWithRunner creates a Service with an injected command runner.
func NewServiceWithRunner(runner Runner, log *logger.Logger) *Service {
	return &Service{
		runner: runner,
		logger: log,
	}
}

// Read returns the lines of the current user's crontab.
//
// A missing crontab ("no crontab for user") and a missing crontab binary
// both yield an empty sequence, so a first install starts from nothing. Any
// other failure is fatal and reported as ErrCrontabRead.
func (s *Service) Read(ctx context.Context) ([]string, error) {
	stdout, stderr, err := s.runner.Run(ctx, "", "crontab", "-l")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || strings.Contains(stderr, "no crontab") {
			s.logger.DebugCtx(ctx, "no existing crontab, starting from empty",
				logger.Field{Key: "stderr", Value: strings.TrimSpace(stderr)})
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v: %s", ErrCrontabRead, err, strings.TrimSpace(stderr))
	}

	return splitLines(stdout), nil
}

// Contains reports whether any crontab line contains marker as a substring.
//
// This is deliberately loose: it matches the job path regardless of
// schedule or arguments, so a hand-edited schedule is never rewritten and
// never duplicated.
func Contains(lines []string, marker string) bool {
	for _, line := range lines {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// Install appends the entry to the given lines and replaces the crontab.
func (s *Service) Install(ctx context.Context, lines []string, e Entry) error {
	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, lines...)
	updated = append(updated, e.Line())

	if err := s.write(ctx, updated); err != nil {
		return err
	}

	s.logger.InfoCtx(ctx, "crontab entry installed",
		logger.Field{Key: "schedule", Value: e.Schedule},
		logger.Field{Key: "command", Value: e.Command})
	return nil
}

// Ensure installs the entry unless a line containing marker already exists.
// It returns true when a new entry was written and false when the crontab
// already contained the job.
func (s *Service) Ensure(ctx context.Context, e Entry, marker string) (bool, error) {
	lines, err := s.Read(ctx)
	if err != nil {
		return false, err
	}

	if Contains(lines, marker) {
		s.logger.InfoCtx(ctx, "crontab entry already present, no changes made",
			logger.Field{Key: "marker", Value: marker})
		return false, nil
	}

	if err := s.Install(ctx, lines, e); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops every line containing marker and writes the crontab back.
// It returns the number of removed lines; when nothing matches the crontab
// is left untouched.
func (s *Service) Remove(ctx context.Context, marker string) (int, error) {
	lines, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}

	kept := lines[:0:0]
	for _, line := range lines {
		if !strings.Contains(line, marker) {
			kept = append(kept, line)
		}
	}

	removed := len(lines) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.write(ctx, kept); err != nil {
		return 0, err
	}

	s.logger.InfoCtx(ctx, "crontab entries removed",
		logger.Field{Key: "marker", Value: marker},
		logger.Field{Key: "removed", Value: removed})
	return removed, nil
}

// write atomically replaces the crontab with the given lines via `crontab -`.
func (s *Service) write(ctx context.Context, lines []string) error {
	payload := strings.Join(lines, "\n") + "\n"

	_, stderr, err := s.runner.Run(ctx, payload, "crontab", "-")
	if err != nil {
		return fmt.Errorf("%w: %v: %s", ErrCrontabWrite, err, strings.TrimSpace(stderr))
	}
	return nil
}

// splitLines splits crontab output into lines, dropping the trailing empty
// line left by the final newline.
func splitLines(output string) []string {
	if output == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
