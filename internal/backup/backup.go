// Package backup moves the installed executable out of the way before an
// update is extracted over it.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Backup describes a renamed executable.
type Backup struct {
	Source    string    `json:"source" yaml:"source"`
	Path      string    `json:"path" yaml:"path"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Manager handles backup operations below an installation root.
type Manager struct {
	root string
	goos string
}

// NewManager creates a backup manager for the installation at root.
func NewManager(root string) *Manager {
	return NewManagerForOS(root, runtime.GOOS)
}

// NewManagerForOS creates a backup manager that names backups the way goos
// expects (for testing).
func NewManagerForOS(root, goos string) *Manager {
	return &Manager{root: root, goos: goos}
}

// BackupName returns the backup file name for exe: "<exe>.old" on Windows,
// "<exe>_old" elsewhere.
func BackupName(exe, goos string) string {
	if goos == "windows" {
		return exe + ".old"
	}
	return exe + "_old"
}

// Path returns where the backup of exe is placed.
func (m *Manager) Path(exe string) string {
	return filepath.Join(m.root, BackupName(exe, m.goos))
}

// Create renames root/exe to its backup name, replacing an older backup.
// It returns nil and no error when exe is not installed.
func (m *Manager) Create(exe string) (*Backup, error) {
	src := filepath.Join(m.root, exe)

	info, err := os.Lstat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat executable: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("executable path is a directory: %s", src)
	}

	dst := m.Path(exe)
	if err := os.Rename(src, dst); err != nil {
		return nil, fmt.Errorf("failed to rename %s to %s: %w", src, dst, err)
	}

	return &Backup{
		Source:    src,
		Path:      dst,
		CreatedAt: time.Now(),
	}, nil
}
