package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/sealdice/sealupd/internal/types"
)

// Progress is an advisory observation emitted before each entry is written.
type Progress struct {
	Index int    // 1-based position of the entry
	Total int    // Declared entry count
	Entry string // Name as declared in the archive
	Dest  string // Destination path on disk
}

// ProgressFunc receives extraction progress. It never affects control flow.
type ProgressFunc func(Progress)

// Result summarizes a finished extraction.
type Result struct {
	Format  types.Format `json:"format" yaml:"format"`
	Total   int          `json:"total" yaml:"total"`
	Written int          `json:"written" yaml:"written"`
	Skipped int          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// Extractor writes the entries of a Source below a destination root.
type Extractor struct {
	root          string
	updaterName   string
	quarantineDir string
	logger        *log.Logger
	progress      ProgressFunc
}

// NewExtractor creates an extractor from opts.
func NewExtractor(opts Options) *Extractor {
	opts = opts.withDefaults()
	return &Extractor{
		root:          opts.DestRoot,
		updaterName:   opts.UpdaterName,
		quarantineDir: opts.QuarantineDir,
		logger:        opts.Logger,
		progress:      opts.Progress,
	}
}

// Extract consumes src entry by entry. The first entry that fails path
// validation or cannot be written stops the extraction; entries written
// before it stay on disk.
func (x *Extractor) Extract(src Source) (*Result, error) {
	res := &Result{
		Format: src.Format(),
		Total:  src.Len(),
	}

	for index := 0; ; index++ {
		entry, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, &EntryError{Index: index, Err: err}
		}

		dest, err := SafeJoin(x.root, entry.Name, x.updaterName, x.quarantineDir)
		if err != nil {
			return res, &EntryError{Index: index, Name: entry.Name, Err: err}
		}

		if err := entry.Kind.Validate(); err != nil {
			return res, &EntryError{Index: index, Name: entry.Name, Err: err}
		}
		if !entry.Kind.IsFile() && !entry.Kind.IsDir() {
			x.logger.Warn("skipping unsupported entry", "entry", entry.Name, "kind", entry.Kind)
			res.Skipped++
			continue
		}

		x.report(Progress{Index: index + 1, Total: res.Total, Entry: entry.Name, Dest: dest})

		switch {
		case entry.Kind.IsDir() || isDirShaped(entry.Name):
			err = writeDir(dest)
		case isExistingDir(dest):
			x.logger.Warn("destination is a directory, file contents not written",
				"entry", entry.Name, "dest", dest)
		default:
			err = writeFile(entry, dest)
		}
		if err != nil {
			return res, &EntryError{Index: index, Name: entry.Name, Err: err}
		}
		res.Written++
	}

	x.logger.Debug("extraction finished",
		"format", res.Format, "total", res.Total, "written", res.Written, "skipped", res.Skipped)
	return res, nil
}

func (x *Extractor) report(p Progress) {
	x.logger.Debug("extracting entry", "index", p.Index, "total", p.Total, "dest", p.Dest)
	if x.progress != nil {
		x.progress(p)
	}
}

func writeDir(dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

// An existing directory where a file entry lands is kept, and the entry
// counts as written.
func isExistingDir(dest string) bool {
	info, err := os.Stat(dest)
	return err == nil && info.IsDir()
}

// writeFile creates the parents of dest, then dest itself truncated and
// holding the entry bytes verbatim.
func writeFile(entry *Entry, dest string) (err error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	perm := entry.Mode.Perm()
	if perm == 0 {
		perm = 0o644
	}

	//nolint:gosec // G304: dest has been validated by SafeJoin
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close file: %w", closeErr)
		}
	}()

	//nolint:gosec // G110: package size is bounded by the host that downloaded it
	if _, err := io.Copy(out, entry); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
