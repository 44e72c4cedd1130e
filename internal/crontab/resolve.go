package crontab

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// JobPaths holds the resolved locations needed to build a crontab entry.
type JobPaths struct {
	Dir         string // directory the cron entry changes into
	Script      string // absolute path of the job script; empty when the binary schedules itself
	Interpreter string // absolute interpreter path; empty when the binary schedules itself
}

// Command returns the job invocation for the crontab line.
func (p JobPaths) Command() string {
	if p.Interpreter == "" {
		return p.Script
	}
	return p.Interpreter + " " + p.Script
}

// Resolver resolves the paths that go into the crontab entry. The function
// fields default to os.Executable and exec.LookPath and can be replaced in
// tests.
type Resolver struct {
	Executable func() (string, error)
	LookPath   func(string) (string, error)
}

// NewResolver creates a Resolver backed by the real process environment.
func NewResolver() *Resolver {
	return &Resolver{
		Executable: os.Executable,
		LookPath:   exec.LookPath,
	}
}

// ResolveSelf resolves the running binary so its own job subcommand can be
// scheduled.
func (r *Resolver) ResolveSelf() (JobPaths, error) {
	exe, err := r.Executable()
	if err != nil {
		return JobPaths{}, fmt.Errorf("%w: cannot locate own executable: %v", ErrPathResolution, err)
	}
	exe, err = filepath.Abs(exe)
	if err != nil {
		return JobPaths{}, fmt.Errorf("%w: %v", ErrPathResolution, err)
	}

	return JobPaths{
		Dir:    filepath.Dir(exe),
		Script: exe,
	}, nil
}

// ResolveScript resolves an external job script and the interpreter that
// runs it. A relative script name is taken to live alongside the running
// binary. The interpreter is looked up on PATH; an empty or failed lookup is
// a hard error so a broken entry is never installed.
func (r *Resolver) ResolveScript(script, interpreter string) (JobPaths, error) {
	if !filepath.IsAbs(script) {
		exe, err := r.Executable()
		if err != nil {
			return JobPaths{}, fmt.Errorf("%w: cannot locate own executable: %v", ErrPathResolution, err)
		}
		script = filepath.Join(filepath.Dir(exe), script)
	}

	interp, err := r.LookPath(interpreter)
	if err != nil || interp == "" {
		return JobPaths{}, fmt.Errorf("%w: interpreter %q not found in PATH", ErrPathResolution, interpreter)
	}

	return JobPaths{
		Dir:         filepath.Dir(script),
		Script:      script,
		Interpreter: interp,
	}, nil
}

// MarkExecutable sets the execute bits on the job script. Re-applying the
// mode to an already executable file is harmless.
func MarkExecutable(path string) error {
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("failed to mark %s executable: %w", path, err)
	}
	return nil
}
