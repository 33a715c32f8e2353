package archive

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultQuarantineDir receives an incoming copy of the updater itself, which
// cannot overwrite its own running image.
const DefaultQuarantineDir = "new-updater"

// CleanEntryPath validates a path declared inside an archive and returns it in
// slash-separated, cleaned form. Both '/' and '\' are treated as separators so
// that archives built on either platform are checked the same way.
//
// A path is rejected with ErrUnsafePath when it is empty, starts at a root or
// drive, or contains a ".." segment anywhere.
func CleanEntryPath(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty entry name", ErrUnsafePath)
	}
	if strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return "", fmt.Errorf("%w: %q is absolute", ErrUnsafePath, name)
	}
	if hasVolume(name) {
		return "", fmt.Errorf("%w: %q names a volume", ErrUnsafePath, name)
	}

	segments := strings.FieldsFunc(name, isSeparator)
	for _, seg := range segments {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q escapes the destination", ErrUnsafePath, name)
		}
	}

	cleaned := path.Join(segments...)
	if cleaned == "" {
		cleaned = "."
	}
	return cleaned, nil
}

// SafeJoin resolves an archive entry name to its destination under root.
// An entry whose cleaned path equals updaterName is placed under
// root/quarantineDir instead.
func SafeJoin(root, name, updaterName, quarantineDir string) (string, error) {
	cleaned, err := CleanEntryPath(name)
	if err != nil {
		return "", err
	}

	if updaterName != "" && sameName(cleaned, updaterName) {
		if quarantineDir == "" {
			quarantineDir = DefaultQuarantineDir
		}
		return filepath.Join(root, quarantineDir, filepath.FromSlash(cleaned)), nil
	}
	return filepath.Join(root, filepath.FromSlash(cleaned)), nil
}

// isDirShaped reports whether a declared name denotes a directory by its
// trailing separator alone.
func isDirShaped(name string) bool {
	return strings.HasSuffix(name, "/") || strings.HasSuffix(name, `\`)
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// hasVolume reports a leading drive letter such as "C:" regardless of the
// host platform.
func hasVolume(name string) bool {
	if filepath.VolumeName(name) != "" {
		return true
	}
	if len(name) < 2 || name[1] != ':' {
		return false
	}
	c := name[0]
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// sameName compares file names the way the host file system does.
func sameName(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
