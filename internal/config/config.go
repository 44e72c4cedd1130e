package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML configuration file, applies defaults and
// expands environment variables and ~ in paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	expandPaths(&cfg)

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns the default configuration when
// the file does not exist. Used by commands that must work without a config
// file (install, uninstall).
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if os.IsNotExist(rootCause(err)) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Default returns a configuration populated with defaults only.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	expandPaths(&cfg)
	return &cfg
}

// expandPaths expands ${VAR:default} references and ~ in all path fields.
func expandPaths(c *Config) {
	c.Workspace.Path = expandHome(expandEnv(c.Workspace.Path))
	c.Job.PapersDir = expandHome(expandEnv(c.Job.PapersDir))
	c.Job.SummariesDir = expandHome(expandEnv(c.Job.SummariesDir))
	if !isStdStream(c.Logging.Output) {
		c.Logging.Output = expandHome(expandEnv(c.Logging.Output))
	}
}

func isStdStream(output string) bool {
	switch strings.ToLower(output) {
	case "stdout", "stderr":
		return true
	}
	return false
}

// expandEnv expands an environment variable reference of the form
// ${VAR} or ${VAR:default}.
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	rest := s[end+1:]
	if parts := strings.SplitN(content, ":", 2); len(parts) == 2 {
		if val := os.Getenv(parts[0]); val != "" {
			return val + rest
		}
		return parts[1] + rest
	}

	return os.Getenv(content) + rest
}

// expandHome expands a leading ~ into the home directory.
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// rootCause walks the error chain to its innermost error.
func rootCause(err error) error {
	for {
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return err
		}
		unwrapped := u.Unwrap()
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
