package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the file format of a config file.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// detectFormat determines the file format based on extension or content.
func detectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}

	return sniffFormat(content)
}

// sniffFormat guesses the format from the first meaningful line.
func sniffFormat(content []byte) Format {
	trimmed := strings.TrimSpace(string(content))
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}

	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		eq := strings.Index(line, "=")
		colon := strings.Index(line, ":")
		switch {
		case strings.HasPrefix(line, "["):
			return FormatTOML
		case eq >= 0 && (colon < 0 || eq < colon):
			return FormatTOML
		case colon >= 0:
			return FormatYAML
		}
	}

	return FormatUnknown
}

// rawConfig is an intermediate representation for parsing. Every field is
// optional; durations are written as strings such as "1s" or "500ms".
type rawConfig struct {
	ExecutableName string `yaml:"executable_name" toml:"executable_name" json:"executable_name"`
	UpdaterName    string `yaml:"updater_name" toml:"updater_name" json:"updater_name"`
	DestRoot       string `yaml:"dest_root" toml:"dest_root" json:"dest_root"`
	QuarantineDir  string `yaml:"quarantine_dir" toml:"quarantine_dir" json:"quarantine_dir"`
	WaitRetries    *int   `yaml:"wait_retries" toml:"wait_retries" json:"wait_retries"`
	WaitInterval   string `yaml:"wait_interval" toml:"wait_interval" json:"wait_interval"`
	RelaunchDelay  string `yaml:"relaunch_delay" toml:"relaunch_delay" json:"relaunch_delay"`
	LogDir         string `yaml:"log_dir" toml:"log_dir" json:"log_dir"`
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns in content.
func expandEnvVars(content []byte) []byte {
	return envVarPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		parts := envVarPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := os.Getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 {
			value = string(parts[2])
		}
		return []byte(value)
	})
}

// parse decodes content in the given format and applies every field it sets
// onto cfg.
func parse(content []byte, format Format, cfg *Config) error {
	content = expandEnvVars(content)

	var raw rawConfig

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(content, &raw); err != nil {
			return fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &raw); err != nil {
			return fmt.Errorf("JSON parse error: %w", err)
		}
	default:
		return fmt.Errorf("unknown file format")
	}

	return raw.apply(cfg)
}

func (r *rawConfig) apply(cfg *Config) error {
	setString(&cfg.ExecutableName, r.ExecutableName)
	setString(&cfg.UpdaterName, r.UpdaterName)
	setString(&cfg.DestRoot, r.DestRoot)
	setString(&cfg.QuarantineDir, r.QuarantineDir)
	setString(&cfg.LogDir, r.LogDir)

	if r.WaitRetries != nil {
		cfg.WaitRetries = *r.WaitRetries
	}
	if err := setDuration(&cfg.WaitInterval, "wait_interval", r.WaitInterval); err != nil {
		return err
	}
	return setDuration(&cfg.RelaunchDelay, "relaunch_delay", r.RelaunchDelay)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, field, v string) error {
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return ValidationError{Field: field, Message: fmt.Sprintf("invalid duration %q", v)}
	}
	*dst = d
	return nil
}
