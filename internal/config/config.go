// Package config handles updater configuration files and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sealdice/sealupd/internal/archive"
	"github.com/sealdice/sealupd/internal/process"
	"github.com/sealdice/sealupd/internal/update"
)

// EnvConfig names the environment variable pointing at a config file.
const EnvConfig = "SEALUPD_CONFIG"

// Base names of the managed programs, before the platform suffix.
const (
	AppBaseName     = "sealdice-core"
	UpdaterBaseName = "sealupd"
)

// Config is the complete updater configuration. It is built once at startup
// and passed explicitly to every component.
type Config struct {
	ExecutableName string        `yaml:"executable_name" toml:"executable_name" json:"executable_name"`
	UpdaterName    string        `yaml:"updater_name" toml:"updater_name" json:"updater_name"`
	DestRoot       string        `yaml:"dest_root" toml:"dest_root" json:"dest_root"`
	QuarantineDir  string        `yaml:"quarantine_dir" toml:"quarantine_dir" json:"quarantine_dir"`
	WaitRetries    int           `yaml:"wait_retries" toml:"wait_retries" json:"wait_retries"`
	WaitInterval   time.Duration `yaml:"wait_interval" toml:"wait_interval" json:"wait_interval"`
	RelaunchDelay  time.Duration `yaml:"relaunch_delay" toml:"relaunch_delay" json:"relaunch_delay"`
	LogDir         string        `yaml:"log_dir" toml:"log_dir" json:"log_dir"`
}

// Default returns the configuration for the current platform.
func Default() *Config {
	return DefaultFor(update.Detect())
}

// DefaultFor returns the configuration for platform p.
func DefaultFor(p update.Platform) *Config {
	return &Config{
		ExecutableName: p.ExecutableName(AppBaseName),
		UpdaterName:    p.ExecutableName(UpdaterBaseName),
		DestRoot:       ".",
		QuarantineDir:  archive.DefaultQuarantineDir,
		WaitRetries:    process.DefaultRetries,
		WaitInterval:   process.DefaultInterval,
		RelaunchDelay:  update.DefaultDelay,
		LogDir:         ".",
	}
}

// ErrConfigNotFound is returned when an explicitly named config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

// fileNames are looked up in the working directory, in order.
var fileNames = []string{
	"sealupd.toml",
	"sealupd.yaml",
	"sealupd.yml",
	"sealupd.json",
}

// FindConfig returns the config file to use: explicitPath when given, then
// $SEALUPD_CONFIG, then the first of fileNames present in dir. It returns an
// empty path when no file applies, which means "use the defaults".
func FindConfig(explicitPath, dir string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicitPath)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	for _, name := range fileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", nil
}

// Load reads the config file at path on top of the platform defaults.
func Load(path string) (*Config, error) {
	//nolint:gosec // G304: the config path is the operator's input
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	cfg := Default()
	if err := parse(content, format, cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve finds and loads the config file, falling back to the defaults. It
// also returns the path that was loaded, if any.
func Resolve(explicitPath string) (*Config, string, error) {
	path, err := FindConfig(explicitPath, ".")
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

