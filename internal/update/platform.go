package update

import (
	"runtime"
	"strings"
)

// Detect returns the current platform (OS and architecture)
func Detect() Platform {
	return Platform{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
}

// IsWindows reports whether p is a Windows platform.
func (p Platform) IsWindows() bool {
	return p.OS == "windows"
}

// ExecutableName returns the on-disk name of the program base on p,
// e.g. "sealdice-core.exe" on Windows and "sealdice-core" elsewhere.
func (p Platform) ExecutableName(base string) string {
	if p.IsWindows() && !strings.HasSuffix(strings.ToLower(base), ".exe") {
		return base + ".exe"
	}
	return base
}
