package output

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Display prints user-facing status lines and mirrors each of them into the
// run log.
type Display struct {
	out     io.Writer
	logger  *log.Logger
	verbose bool

	errorStyle   lipgloss.Style
	warnStyle    lipgloss.Style
	successStyle lipgloss.Style
	debugStyle   lipgloss.Style
}

// DisplayOptions configures NewDisplay.
type DisplayOptions struct {
	Out     io.Writer // Defaults to os.Stdout
	Logger  *log.Logger
	Verbose bool // Also print debug lines
	GOOS    string
	Getenv  func(string) string
}

// NewDisplay creates a Display. Colors are dropped on legacy Windows
// consoles, which do not interpret ANSI sequences.
func NewDisplay(opts DisplayOptions) *Display {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	r := lipgloss.NewRenderer(opts.Out)
	if !SupportsANSI(opts.GOOS, opts.Getenv) {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Display{
		out:          opts.Out,
		logger:       opts.Logger,
		verbose:      opts.Verbose,
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		warnStyle:    r.NewStyle().Foreground(lipgloss.Color("3")),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		debugStyle:   r.NewStyle().Faint(true),
	}
}

// SupportsANSI reports whether the console understands color sequences.
// Outside Windows it always does; on Windows only Windows Terminal, which
// sets WT_SESSION, is trusted.
func SupportsANSI(goos string, getenv func(string) string) bool {
	if goos != "windows" {
		return true
	}
	return getenv("WT_SESSION") != ""
}

// Println prints an unstyled line.
func (d *Display) Println(msg string) {
	d.logger.Helper()
	d.logger.Info(msg)
	d.print(msg)
}

// Printf prints an unstyled formatted line.
func (d *Display) Printf(format string, args ...any) {
	d.logger.Helper()
	msg := fmt.Sprintf(format, args...)
	d.logger.Info(msg)
	d.print(msg)
}

// Debug prints msg only in verbose mode but always logs it.
func (d *Display) Debug(msg string, keyvals ...any) {
	d.logger.Helper()
	d.logger.Debug(msg, keyvals...)
	if d.verbose {
		d.print(d.debugStyle.Render(msg))
	}
}

// Success prints msg in green.
func (d *Display) Success(msg string) {
	d.logger.Helper()
	d.logger.Info(msg)
	d.print(d.successStyle.Render(msg))
}

// Warn prints msg in yellow.
func (d *Display) Warn(msg string) {
	d.logger.Helper()
	d.logger.Warn(msg)
	d.print(d.warnStyle.Render(msg))
}

// Error prints "msg: err" in red.
func (d *Display) Error(msg string, err error) {
	d.logger.Helper()
	d.logger.Error(msg, "err", err)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	d.print(d.errorStyle.Render(msg))
}

func (d *Display) print(line string) {
	_, _ = fmt.Fprintln(d.out, line)
}
