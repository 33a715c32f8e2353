// Package handoff drives one update run: wait for the caller to exit, back
// up the installed executable, extract the package and start the
// application again.
package handoff

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/sealdice/sealupd/internal/archive"
	"github.com/sealdice/sealupd/internal/backup"
	"github.com/sealdice/sealupd/internal/output"
	"github.com/sealdice/sealupd/internal/types"
	"github.com/sealdice/sealupd/internal/update"
)

// Waiter blocks until a process has exited.
type Waiter interface {
	Wait(pid int) error
}

// Backupper moves the installed executable aside.
type Backupper interface {
	Create(exe string) (*backup.Backup, error)
}

// Decompressor extracts an update package.
type Decompressor interface {
	Decompress(packagePath string, opts archive.Options) (*archive.Result, error)
}

// DecompressFunc adapts a function to Decompressor.
type DecompressFunc func(string, archive.Options) (*archive.Result, error)

// Decompress calls f.
func (f DecompressFunc) Decompress(packagePath string, opts archive.Options) (*archive.Result, error) {
	return f(packagePath, opts)
}

// ErrInvalidTransition indicates a bug in the stage sequencing.
var ErrInvalidTransition = errors.New("invalid state transition")

// transitions lists the states reachable from each state.
var transitions = map[types.State][]types.State{
	types.StateIdle:        {types.StateWaiting, types.StateBackingUp},
	types.StateWaiting:     {types.StateBackingUp, types.StateAborted},
	types.StateBackingUp:   {types.StateExtracting, types.StateAborted},
	types.StateExtracting:  {types.StateRelaunching, types.StateAborted},
	types.StateRelaunching: {types.StateDone},
}

// Request is the input of one run.
type Request struct {
	Package    string // Path of the update package
	PID        int    // Caller to wait for, 0 to skip waiting
	SkipLaunch bool
}

// Options wires a Controller.
type Options struct {
	Waiter       Waiter
	Backup       Backupper
	Decompressor Decompressor
	Launcher     update.Launcher
	Display      *output.Display
	Logger       *log.Logger

	ExecutableName string // Application file name inside DestRoot
	UpdaterName    string
	DestRoot       string
	QuarantineDir  string
}

// Controller runs the update state machine.
type Controller struct {
	opts    Options
	state   types.State
	history []types.State
}

// NewController creates a Controller in the idle state.
func NewController(opts Options) *Controller {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Display == nil {
		opts.Display = output.NewDisplay(output.DisplayOptions{Out: io.Discard, Logger: opts.Logger})
	}
	if opts.Decompressor == nil {
		opts.Decompressor = DecompressFunc(archive.Decompress)
	}
	return &Controller{
		opts:    opts,
		state:   types.StateIdle,
		history: []types.State{types.StateIdle},
	}
}

// State returns the current state.
func (c *Controller) State() types.State {
	return c.state
}

// History returns every state the controller has been in, in order.
func (c *Controller) History() []types.State {
	return append([]types.State(nil), c.history...)
}

// Run executes the whole update and always returns a report. The report's
// state is either done or aborted.
func (c *Controller) Run(req Request) *Report {
	report := &Report{Package: req.Package}

	if err := c.run(req, report); err != nil {
		c.enter(types.StateAborted)
		report.Error = err.Error()
	}
	report.State = c.state
	c.opts.Logger.Info("run finished", "state", c.state, "exit_code", report.ExitCode())
	return report
}

func (c *Controller) run(req Request, report *Report) error {
	d := c.opts.Display

	if req.PID != 0 {
		c.enter(types.StateWaiting)
		d.Printf("Waiting for process %d to exit ...", req.PID)
		if err := c.opts.Waiter.Wait(req.PID); err != nil {
			d.Error("Waiting for SealDice to exit failed", err)
			return fmt.Errorf("wait for pid %d: %w", req.PID, err)
		}
	} else {
		c.opts.Logger.Debug("no caller pid, not waiting")
	}

	c.enter(types.StateBackingUp)
	bak, err := c.opts.Backup.Create(c.opts.ExecutableName)
	if err != nil {
		d.Error("Backup failed", err)
		return fmt.Errorf("backup: %w", err)
	}
	if bak == nil {
		d.Println("No installed executable found, no backup needed.")
	} else {
		report.BackedUp = true
		report.BackupPath = bak.Path
		d.Printf("Backed up %s to %s", bak.Source, bak.Path)
	}

	c.enter(types.StateExtracting)
	d.Printf("Extracting %s ...", req.Package)
	res, err := c.opts.Decompressor.Decompress(req.Package, archive.Options{
		DestRoot:      c.opts.DestRoot,
		UpdaterName:   c.opts.UpdaterName,
		QuarantineDir: c.opts.QuarantineDir,
		Logger:        c.opts.Logger,
		Progress: func(p archive.Progress) {
			d.Printf("[%d/%d] %s", p.Index, p.Total, p.Dest)
		},
	})
	if res != nil {
		report.Format = res.Format
		report.Entries = res.Written
		report.Skipped = res.Skipped
	}
	if err != nil {
		d.Error("Extraction failed", err)
		return fmt.Errorf("extract: %w", err)
	}
	d.Success(fmt.Sprintf("Extracted %d entries (%s).", res.Written, res.Format))
	if res.Skipped > 0 {
		d.Warn(fmt.Sprintf("Skipped %d unsupported entries, see the update log.", res.Skipped))
	}

	c.enter(types.StateRelaunching)
	if req.SkipLaunch {
		d.Warn("SealDice will not be launched due to --skip-launch")
	} else {
		d.Success("Update completed, launching SealDice in a few seconds.")
		d.Warn("If SealDice is not run, check any console output and the update log, and refer the situation to the developers.")
	}
	if err := c.opts.Launcher.Relaunch(req.SkipLaunch); err != nil {
		d.Error("Launching failed", err)
		report.RelaunchError = err.Error()
	} else if !req.SkipLaunch {
		report.Relaunched = true
	}

	c.enter(types.StateDone)
	return nil
}

// enter moves to next. Sequencing is fixed by run, so a rejected transition
// is logged rather than returned.
func (c *Controller) enter(next types.State) {
	if err := next.Validate(); err != nil {
		c.opts.Logger.Error("rejected state transition", "from", c.state, "to", next, "err", err)
		return
	}
	if !allowed(c.state, next) {
		c.opts.Logger.Error("rejected state transition", "from", c.state, "to", next,
			"err", ErrInvalidTransition)
		return
	}
	c.opts.Logger.Debug("state transition", "from", c.state, "to", next)
	c.state = next
	c.history = append(c.history, next)
}

func allowed(from, to types.State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
