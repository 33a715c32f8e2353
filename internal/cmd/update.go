package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sealdice/sealupd/internal/backup"
	"github.com/sealdice/sealupd/internal/config"
	"github.com/sealdice/sealupd/internal/handoff"
	"github.com/sealdice/sealupd/internal/interactive"
	"github.com/sealdice/sealupd/internal/logging"
	"github.com/sealdice/sealupd/internal/output"
	"github.com/sealdice/sealupd/internal/process"
	"github.com/sealdice/sealupd/internal/update"
)

// runUpdate performs one update run and returns the exit code. With a
// machine-readable report format the progress lines go to stderr so that
// stdout carries only the report.
func runUpdate(stdin io.Reader, stdout, stderr io.Writer, info buildInfo, opts updateFlags) int {
	prompter := interactive.NewPrompterWithIO(stdin, stdout, interactive.IsTerminal(), update.Detect().OS)
	finish := func(code int) int {
		prompter.PauseOnFailure(code)
		return code
	}

	format, err := output.ParseFormat(opts.outputFormat)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return finish(1)
	}
	console := stdout
	if format != output.FormatText {
		console = stderr
	}
	_, _ = fmt.Fprintf(console, "sealupd v%s --- Updater for SealDice.\n", info.Version)

	cfg, cfgPath, err := config.Resolve(opts.configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return finish(1)
	}
	if opts.destChanged {
		cfg.DestRoot = opts.destRoot
	}

	runLog, err := logging.New(logging.Options{Dir: cfg.LogDir, Disabled: opts.disableLog})
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: %v; continuing without a log file\n", err)
		runLog = &logging.Log{Logger: logging.Discard()}
	}
	defer func() { _ = runLog.Close() }()

	logger := runLog.Logger
	display := output.NewDisplay(output.DisplayOptions{Out: console, Logger: logger, Verbose: opts.verbose})

	logger.Info("sealupd started", "version", info.Version, "commit", info.Commit, "built", info.Date)
	logger.Debug("arguments", "args", os.Args, "config", cfgPath, "package", opts.packagePath,
		"pid", opts.callerPID, "skip_launch", opts.skipLaunch, "dest", cfg.DestRoot)
	if runLog.Path != "" {
		display.Debug(fmt.Sprintf("Writing update log to %s", runLog.Path))
	}

	controller := handoff.NewController(handoff.Options{
		Waiter: process.NewWaiter(process.WaiterOptions{
			Finder:   process.NewSystemFinder(),
			SelfPID:  os.Getpid(),
			SelfName: cfg.UpdaterName,
			Retries:  cfg.WaitRetries,
			Interval: cfg.WaitInterval,
			Logger:   logger,
		}),
		Backup: backup.NewManager(cfg.DestRoot),
		Launcher: update.NewLauncher(update.LauncherOptions{
			Dir:        cfg.DestRoot,
			Executable: cfg.ExecutableName,
			Delay:      cfg.RelaunchDelay,
			Logger:     logger,
		}),
		Display:        display,
		Logger:         logger,
		ExecutableName: cfg.ExecutableName,
		UpdaterName:    cfg.UpdaterName,
		DestRoot:       cfg.DestRoot,
		QuarantineDir:  cfg.QuarantineDir,
	})

	report := controller.Run(handoff.Request{
		Package:    opts.packagePath,
		PID:        opts.callerPID,
		SkipLaunch: opts.skipLaunch,
	})

	if err := output.NewWriter(stdout, format).Write(report); err != nil {
		logger.Error("failed to write report", "err", err)
	}

	return finish(report.ExitCode())
}

