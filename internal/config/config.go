// Package config loads the optional brewdoctor user configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCommandTimeout bounds external probes (brew, df, git) when the
// config does not override it.
const DefaultCommandTimeout = 15 * time.Second

// Config holds the user-tunable settings read from config.yaml.
type Config struct {
	// DisabledChecks are check names excluded from the run, e.g.
	// "check_for_stray_dylibs".
	DisabledChecks []string `yaml:"disabled_checks"`
	// AllowPatterns are extra whitelist globs for the stray-file checks.
	AllowPatterns []string `yaml:"allow_patterns"`
	// CommandTimeout is a Go duration string, e.g. "30s".
	CommandTimeout string `yaml:"command_timeout"`
}

// Dir returns the brewdoctor config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/brewdoctor if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "brewdoctor"), nil
}

// Load reads {dir}/config.yaml. A missing file returns an empty config
// without an error; a malformed file is an error, since silently ignoring
// it would re-enable checks the user meant to disable.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Timeout returns the configured external-command timeout, falling back
// to the default when unset or unparsable.
func (c *Config) Timeout() time.Duration {
	if c.CommandTimeout == "" {
		return DefaultCommandTimeout
	}
	d, err := time.ParseDuration(c.CommandTimeout)
	if err != nil || d <= 0 {
		return DefaultCommandTimeout
	}
	return d
}
