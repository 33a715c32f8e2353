// Package update starts the freshly extracted application.
package update

// Platform describes the current system platform
type Platform struct {
	OS   string // Operating system (windows, linux, darwin, ...)
	Arch string // Architecture (amd64, arm64, ...)
}

// Launcher starts the updated application and detaches from it.
type Launcher interface {
	// Relaunch spawns the application unless skip is set, in which case it
	// does nothing and succeeds.
	Relaunch(skip bool) error
}
