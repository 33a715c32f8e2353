package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sealdice/sealupd/internal/archive"
)

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for required fields and valid values.
// All problems are reported together.
func Validate(c *Config) error {
	var errs []error

	if err := validateFileName("executable_name", c.ExecutableName); err != nil {
		errs = append(errs, err)
	}
	if err := validateFileName("updater_name", c.UpdaterName); err != nil {
		errs = append(errs, err)
	}
	if c.ExecutableName != "" && c.ExecutableName == c.UpdaterName {
		errs = append(errs, ValidationError{
			Field:   "updater_name",
			Message: "must differ from executable_name",
		})
	}

	if c.DestRoot == "" {
		errs = append(errs, ValidationError{Field: "dest_root", Message: "dest_root is required"})
	}

	if _, err := archive.CleanEntryPath(c.QuarantineDir); err != nil || c.QuarantineDir == "." {
		errs = append(errs, ValidationError{
			Field:   "quarantine_dir",
			Message: fmt.Sprintf("must be a relative directory below dest_root, got %q", c.QuarantineDir),
		})
	}

	if c.WaitRetries < 1 {
		errs = append(errs, ValidationError{
			Field:   "wait_retries",
			Message: fmt.Sprintf("must be at least 1, got %d", c.WaitRetries),
		})
	}
	if c.WaitInterval <= 0 {
		errs = append(errs, ValidationError{
			Field:   "wait_interval",
			Message: fmt.Sprintf("must be positive, got %s", c.WaitInterval),
		})
	}
	if c.RelaunchDelay < 0 {
		errs = append(errs, ValidationError{
			Field:   "relaunch_delay",
			Message: fmt.Sprintf("must not be negative, got %s", c.RelaunchDelay),
		})
	}

	return errors.Join(errs...)
}

// validateFileName requires a bare file name without directory parts.
func validateFileName(field, name string) error {
	if name == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be a file name, got %q", name),
		}
	}
	return nil
}
