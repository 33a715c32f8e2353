// Package logging sets up the updater's run log.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// TimeFormat is used for every log line.
const TimeFormat = "2006-01-02 15:04:05.000"

// Options configures New.
type Options struct {
	Dir      string           // Directory receiving the log file, defaults to "."
	Disabled bool             // Discard everything
	Now      func() time.Time // Clock used for the file name
}

// Log is a logger bound to the file it writes to.
type Log struct {
	*log.Logger
	Path string // Empty when logging is disabled

	file *os.File
}

// FileName returns the log file name for a run started at t.
func FileName(t time.Time) string {
	return fmt.Sprintf("updater_%s.txt", t.Format("2006-01-02_150405"))
}

// New opens the run log. The file is created in opts.Dir and named after the
// start time; it receives debug lines with their call site.
func New(opts Options) (*Log, error) {
	if opts.Disabled {
		return &Log{Logger: Discard()}, nil
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(opts.Dir, FileName(opts.Now()))
	//nolint:gosec // G304: path is built from the configured log directory
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return &Log{Logger: NewLogger(f), Path: path, file: f}, nil
}

// NewLogger returns a debug-level logger writing plain text lines to w.
func NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.DebugLevel,
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		ReportCaller:    true,
		Formatter:       log.TextFormatter,
	})
}

// Discard returns a logger that drops every line.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// Close flushes and closes the log file.
func (l *Log) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
