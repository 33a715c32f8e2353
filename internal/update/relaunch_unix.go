//go:build unix

package update

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// prepare marks target as executable for everyone.
func prepare(target string) error {
	//nolint:gosec // G302: the application must be executable by its owner's group too
	if err := os.Chmod(target, 0o755); err != nil {
		return fmt.Errorf("chmod %s: %w", target, err)
	}
	return nil
}

// command builds a child running in its own session so that it outlives
// the updater and its terminal.
func command(target string) *exec.Cmd {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	//nolint:gosec // G204: target is the configured application path
	cmd := exec.Command(abs)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return cmd
}
