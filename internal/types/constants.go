// Package types provides type-safe constants shared by the updater packages.
//
// This package centralizes the enumerated values used throughout the codebase
// (handoff states, archive formats, entry kinds, report formats), replacing
// magic strings with typed constants that provide validation methods.
package types

import (
	"fmt"
	"strings"
)

// State is a step of the update handoff.
type State string

const (
	// StateIdle is the state before anything has happened.
	StateIdle State = "idle"
	// StateWaiting is entered while the caller process is still running.
	StateWaiting State = "waiting"
	// StateBackingUp is entered while the installed executable is renamed.
	StateBackingUp State = "backing-up"
	// StateExtracting is entered while the package is written to disk.
	StateExtracting State = "extracting"
	// StateRelaunching is entered while the new executable is started.
	StateRelaunching State = "relaunching"
	// StateDone is the successful terminal state.
	StateDone State = "done"
	// StateAborted is the failed terminal state.
	StateAborted State = "aborted"
)

// Validate checks if the State is a valid value.
func (s State) Validate() error {
	switch s {
	case StateIdle, StateWaiting, StateBackingUp, StateExtracting,
		StateRelaunching, StateDone, StateAborted:
		return nil
	case "":
		return fmt.Errorf("state is required")
	default:
		return fmt.Errorf("invalid state '%s'", s)
	}
}

// String returns the string representation of the State.
func (s State) String() string {
	return string(s)
}

// IsTerminal returns true for done and aborted.
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateAborted
}

// ExitCode maps a terminal state to a process exit code.
// Non-terminal states are treated as failures.
func (s State) ExitCode() int {
	if s == StateDone {
		return 0
	}
	return 1
}

// Format is the container format of an update package.
type Format string

const (
	// FormatUnknown means the format has not been determined.
	FormatUnknown Format = ""
	// FormatZip is a ZIP container.
	FormatZip Format = "zip"
	// FormatTarGz is a gzip-compressed tar stream.
	FormatTarGz Format = "tar.gz"
)

// Validate checks if the Format is a supported value.
func (f Format) Validate() error {
	switch f {
	case FormatZip, FormatTarGz:
		return nil
	case FormatUnknown:
		return fmt.Errorf("package format is required")
	default:
		return fmt.Errorf("invalid package format '%s' (must be zip or tar.gz)", f)
	}
}

// String returns the string representation of the Format.
func (f Format) String() string {
	if f == FormatUnknown {
		return "unknown"
	}
	return string(f)
}

// ParseFormat parses a string into a Format. "tgz" is accepted for tar.gz.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimPrefix(s, "."))
	if s == "tgz" {
		s = string(FormatTarGz)
	}
	f := Format(s)
	if err := f.Validate(); err != nil {
		return FormatUnknown, err
	}
	return f, nil
}

// EntryKind is the type tag of an archive entry.
type EntryKind string

const (
	// EntryFile is a regular file.
	EntryFile EntryKind = "file"
	// EntryDir is a directory.
	EntryDir EntryKind = "dir"
	// EntryOther is anything else the container can hold (links, devices).
	// Such entries are never materialized.
	EntryOther EntryKind = "other"
)

// Validate checks if the EntryKind is a valid value.
func (k EntryKind) Validate() error {
	switch k {
	case EntryFile, EntryDir, EntryOther:
		return nil
	case "":
		return fmt.Errorf("entry kind is required")
	default:
		return fmt.Errorf("invalid entry kind '%s' (must be file, dir, or other)", k)
	}
}

// String returns the string representation of the EntryKind.
func (k EntryKind) String() string {
	return string(k)
}

// IsFile returns true if the entry is a regular file.
func (k EntryKind) IsFile() bool {
	return k == EntryFile
}

// IsDir returns true if the entry is a directory.
func (k EntryKind) IsDir() bool {
	return k == EntryDir
}
