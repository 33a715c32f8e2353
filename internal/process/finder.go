// Package process observes the process that launched the updater.
package process

import (
	"errors"
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v4/process"
)

// Finder queries the operating system for a process.
type Finder interface {
	// Exists reports whether a process with pid is alive.
	Exists(pid int) (bool, error)
	// Name returns the executable name of pid.
	Name(pid int) (string, error)
}

// SystemFinder is a Finder backed by the host process table.
type SystemFinder struct{}

// NewSystemFinder returns a Finder for the host.
func NewSystemFinder() *SystemFinder {
	return &SystemFinder{}
}

// Exists reports whether pid is alive.
func (f *SystemFinder) Exists(pid int) (bool, error) {
	id, err := toPID(pid)
	if err != nil {
		return false, err
	}
	exists, err := process.PidExists(id)
	if err != nil {
		return false, fmt.Errorf("query process %d: %w", pid, err)
	}
	return exists, nil
}

// Name returns the executable name of pid.
func (f *SystemFinder) Name(pid int) (string, error) {
	id, err := toPID(pid)
	if err != nil {
		return "", err
	}
	p, err := process.NewProcess(id)
	if err != nil {
		return "", fmt.Errorf("open process %d: %w", pid, err)
	}
	name, err := p.Name()
	if err != nil {
		return "", fmt.Errorf("read name of process %d: %w", pid, err)
	}
	return name, nil
}

var errInvalidPID = errors.New("pid out of range")

func toPID(pid int) (int32, error) {
	if pid <= 0 || pid > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", errInvalidPID, pid)
	}
	return int32(pid), nil
}
