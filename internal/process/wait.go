package process

import (
	"errors"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ErrWaitTimeout is returned when the caller is still running after every
// retry has been spent.
var ErrWaitTimeout = errors.New("timed out waiting for the calling process to exit")

// Default polling parameters.
const (
	DefaultRetries  = 60
	DefaultInterval = time.Second
)

// WaiterOptions configures a Waiter.
type WaiterOptions struct {
	Finder   Finder
	SelfPID  int    // PID of the updater itself
	SelfName string // Executable name of the updater
	Retries  int
	Interval time.Duration
	Sleep    func(time.Duration) // Defaults to time.Sleep
	Logger   *log.Logger
}

// Waiter blocks until a given process has gone away.
type Waiter struct {
	finder   Finder
	selfPID  int
	selfName string
	retries  int
	interval time.Duration
	sleep    func(time.Duration)
	logger   *log.Logger
}

// NewWaiter creates a Waiter. Zero values fall back to the defaults.
func NewWaiter(opts WaiterOptions) *Waiter {
	w := &Waiter{
		finder:   opts.Finder,
		selfPID:  opts.SelfPID,
		selfName: opts.SelfName,
		retries:  opts.Retries,
		interval: opts.Interval,
		sleep:    opts.Sleep,
		logger:   opts.Logger,
	}
	if w.finder == nil {
		w.finder = NewSystemFinder()
	}
	if w.retries <= 0 {
		w.retries = DefaultRetries
	}
	if w.interval <= 0 {
		w.interval = DefaultInterval
	}
	if w.sleep == nil {
		w.sleep = time.Sleep
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	return w
}

// Wait polls pid once, then up to Retries more times with Interval between
// polls. It returns nil as soon as pid is released and ErrWaitTimeout after
// the last retry still finds it.
func (w *Waiter) Wait(pid int) error {
	for attempt := 0; ; attempt++ {
		if w.released(pid) {
			w.logger.Debug("caller released", "pid", pid, "attempts", attempt)
			return nil
		}
		if attempt >= w.retries {
			return ErrWaitTimeout
		}
		w.logger.Debug("caller still running", "pid", pid, "retry", attempt+1, "of", w.retries)
		w.sleep(w.interval)
	}
}

// released reports whether pid no longer blocks the update. A pid that has
// been recycled onto the updater itself, by number or by name, counts as
// released.
func (w *Waiter) released(pid int) bool {
	if pid == w.selfPID {
		return true
	}

	exists, err := w.finder.Exists(pid)
	if err != nil {
		w.logger.Warn("cannot query caller", "pid", pid, "err", err)
		return false
	}
	if !exists {
		return true
	}

	if w.selfName == "" {
		return false
	}
	name, err := w.finder.Name(pid)
	if err != nil {
		w.logger.Debug("cannot read caller name", "pid", pid, "err", err)
		return false
	}
	return sameName(name, w.selfName)
}

func sameName(a, b string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(a, b)
	}
	return a == b
}
