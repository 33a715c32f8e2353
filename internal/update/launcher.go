package update

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultDelay leaves the console readable for a moment before the
// application takes over.
const DefaultDelay = 2 * time.Second

// ErrLaunch wraps every failure to start the application.
var ErrLaunch = errors.New("failed to launch application")

// LauncherOptions configures a ProcessLauncher.
type LauncherOptions struct {
	Dir        string        // Installation root, also the child's working directory
	Executable string        // File name of the application inside Dir
	Delay      time.Duration // Pause before spawning, zero for none
	Sleep      func(time.Duration)
	Start      func(*exec.Cmd) error // Defaults to (*exec.Cmd).Start
	Logger     *log.Logger
}

// ProcessLauncher spawns the application as a detached OS process.
type ProcessLauncher struct {
	dir    string
	exe    string
	delay  time.Duration
	sleep  func(time.Duration)
	start  func(*exec.Cmd) error
	logger *log.Logger
}

var _ Launcher = (*ProcessLauncher)(nil)

// NewLauncher creates a ProcessLauncher.
func NewLauncher(opts LauncherOptions) *ProcessLauncher {
	l := &ProcessLauncher{
		dir:    opts.Dir,
		exe:    opts.Executable,
		delay:  opts.Delay,
		sleep:  opts.Sleep,
		start:  opts.Start,
		logger: opts.Logger,
	}
	if l.dir == "" {
		l.dir = "."
	}
	if l.sleep == nil {
		l.sleep = time.Sleep
	}
	if l.start == nil {
		l.start = (*exec.Cmd).Start
	}
	if l.logger == nil {
		l.logger = log.New(io.Discard)
	}
	return l
}

// Target returns the path of the executable that Relaunch starts.
func (l *ProcessLauncher) Target() string {
	return filepath.Join(l.dir, l.exe)
}

// Relaunch makes the application executable and starts it detached from
// the updater. A spawn failure is returned once and never retried.
func (l *ProcessLauncher) Relaunch(skip bool) error {
	if skip {
		l.logger.Info("relaunch skipped")
		return nil
	}

	target := l.Target()
	if err := prepare(target); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	l.logger.Debug("prepared executable", "path", target)

	if l.delay > 0 {
		l.sleep(l.delay)
	}

	cmd := command(target)
	cmd.Dir = l.dir
	l.logger.Debug("launching", "path", cmd.Path, "args", cmd.Args, "dir", cmd.Dir)

	if err := l.start(cmd); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunch, err)
	}
	if cmd.Process != nil {
		l.logger.Info("application started", "pid", cmd.Process.Pid)
		_ = cmd.Process.Release()
	}
	return nil
}
