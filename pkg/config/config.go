package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file inside the config directory.
const FileName = "config.yaml"

//go:embed default_config.yaml
var defaultConfig []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Killing       KillingConfig   `yaml:"killing"`
	Logging       LoggingConfig   `yaml:"logging"`
	Notifications bool            `yaml:"notifications"`
	Processes     []ProcessConfig `yaml:"processes"`
}

type KillingConfig struct {
	MaxWaitTime     Duration `yaml:"max_wait_time"`
	RefreshWaitTime Duration `yaml:"refresh_wait_time"`
	KillWaitTime    Duration `yaml:"kill_wait_time"`
	KillGracefully  bool     `yaml:"kill_gracefully"`
}

type LoggingConfig struct {
	LogToFile   bool `yaml:"log_to_file"`
	AlwaysDebug bool `yaml:"always_debug"`
}

// ProcessConfig describes one watched process. Exactly one of Exact or
// Contains must be set; the remaining fields override the killing defaults.
type ProcessConfig struct {
	Exact          string    `yaml:"exact,omitempty"`
	Contains       string    `yaml:"contains,omitempty"`
	Limit          *int      `yaml:"limit,omitempty"`
	KillWaitTime   *Duration `yaml:"kill_wait_time,omitempty"`
	KillGracefully *bool     `yaml:"kill_gracefully,omitempty"`
}

// LoadOutcome tells the caller whether a usable config was read or a
// default one was just written for the user to fill in.
type LoadOutcome int

const (
	Loaded LoadOutcome = iota
	Created
)

// Resolve returns the override when it is set and the fallback otherwise.
// Every per-process override goes through it.
func Resolve[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}

// Dir returns the directory the config lives in along with a human readable
// explanation of where that is.
func Dir(debug bool) (string, string, error) {
	if debug {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("failed to get the current working directory: %w", err)
		}
		return wd, "the current folder", nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", "", fmt.Errorf("failed to get the path of the running executable: %w", err)
	}
	return filepath.Dir(exe), "the same folder as this executable", nil
}

// Load reads and validates the config in dir. When the file does not exist
// the default config is written there and Created is returned with a nil
// config.
func Load(fs afero.Fs, dir string) (*Config, LoadOutcome, error) {
	path := filepath.Join(dir, FileName)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, Loaded, fmt.Errorf("failed to check for the config file at %s: %w", path, err)
	}
	if !exists {
		if err := afero.WriteFile(fs, path, defaultConfig, 0644); err != nil {
			return nil, Created, fmt.Errorf("failed to write the default config to %s: %w", path, err)
		}
		return nil, Created, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, Loaded, fmt.Errorf("failed to read the config file at %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, Loaded, fmt.Errorf("failed to load the config file at %s: %w", path, err)
	}
	return cfg, Loaded, nil
}

// Parse decodes and validates a YAML config. Unknown keys are rejected so
// typos in process overrides do not silently fall back to the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to deserialize the config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Killing.RefreshWaitTime <= 0 {
		return fmt.Errorf("%w: killing.refresh_wait_time must be greater than zero", ErrInvalid)
	}

	for i, p := range c.Processes {
		if err := p.validate(); err != nil {
			return fmt.Errorf("%w: processes[%d]: %s", ErrInvalid, i, err)
		}
	}
	return nil
}

func (p ProcessConfig) validate() error {
	switch {
	case p.Exact == "" && p.Contains == "":
		return errors.New("one of exact or contains is required")
	case p.Exact != "" && p.Contains != "":
		return errors.New("exact and contains cannot both be set")
	}
	if p.Limit != nil && *p.Limit < 1 {
		return fmt.Errorf("limit must be at least 1, got %d", *p.Limit)
	}
	return nil
}

// Pattern returns the configured name pattern and whether it must match the
// process name exactly.
func (p ProcessConfig) Pattern() (string, bool) {
	if p.Exact != "" {
		return p.Exact, true
	}
	return p.Contains, false
}
