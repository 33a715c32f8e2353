//go:build windows

package update

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"golang.org/x/sys/windows"
)

// prepare only checks that target exists; Windows has no execute bit.
func prepare(target string) error {
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("stat %s: %w", target, err)
	}
	return nil
}

// command builds a child in its own process group without the updater's
// console.
func command(target string) *exec.Cmd {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	//nolint:gosec // G204: target is the configured application path
	cmd := exec.Command(abs)
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.DETACHED_PROCESS,
	}
	return cmd
}
