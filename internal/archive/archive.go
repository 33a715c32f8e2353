// Package archive extracts update packages.
//
// A package is either a ZIP container or a gzip-compressed tarball. The file
// extension is only a hint: Open tries ZIP first and falls back to the
// tarball reader only when the bytes carry no ZIP central directory at all.
// Every other failure is final.
//
// Entry paths are validated before anything is written so that a crafted
// archive cannot place files outside the destination root ("zip-slip").
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"

	"github.com/sealdice/sealupd/internal/types"
)

var (
	// ErrOpenPackage indicates the package file could not be opened or read.
	ErrOpenPackage = errors.New("cannot open package")
	// ErrUnknownFormat indicates the package is neither a ZIP nor a gzip tarball.
	ErrUnknownFormat = errors.New("package is neither a zip archive nor a gzip tarball")
	// ErrUnsafePath indicates an entry path that would escape the destination root.
	ErrUnsafePath = errors.New("unsafe entry path")
)

// EntryError reports the entry at which extraction stopped.
type EntryError struct {
	Index int    // 0-based position in the archive
	Name  string // Declared name, empty if the header itself was unreadable
	Err   error
}

func (e *EntryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("entry #%d: %v", e.Index+1, e.Err)
	}
	return fmt.Sprintf("entry %q: %v", e.Name, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Options configures Decompress and NewExtractor.
type Options struct {
	DestRoot      string       // Extraction root, defaults to "."
	UpdaterName   string       // File name of the running updater
	QuarantineDir string       // Where an incoming updater is placed, relative to DestRoot
	Logger        *log.Logger  // Defaults to a discarding logger
	Progress      ProgressFunc // Optional per-entry observer
}

func (o Options) withDefaults() Options {
	if o.DestRoot == "" {
		o.DestRoot = "."
	}
	if o.QuarantineDir == "" {
		o.QuarantineDir = DefaultQuarantineDir
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Decompress extracts the package at packagePath below opts.DestRoot and
// returns the extraction summary.
func Decompress(packagePath string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	//nolint:gosec // G304: the package path is the operator's input
	f, err := os.Open(packagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenPackage, err)
	}
	defer func() { _ = f.Close() }() // read-only handle

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenPackage, err)
	}

	src, err := Open(f, info.Size())
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	hint := FormatFromExtension(packagePath)
	if hint != types.FormatUnknown && hint != src.Format() {
		opts.Logger.Warn("package extension does not match its content",
			"package", packagePath, "extension", hint, "detected", src.Format())
	}
	opts.Logger.Info("opened package", "package", packagePath, "format", src.Format(), "entries", src.Len())

	return NewExtractor(opts).Extract(src)
}

// Open sniffs the container format of r and returns a Source for it.
func Open(r File, size int64) (Source, error) {
	zs, err := openZip(r, size)
	if err == nil {
		return zs, nil
	}
	if !errors.Is(err, zip.ErrFormat) {
		return nil, fmt.Errorf("decompress zip: %w", err)
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewind: %w", ErrOpenPackage, err)
	}

	ts, err := openTarGz(r)
	if err != nil {
		if errors.Is(err, errNotGzip) {
			return nil, fmt.Errorf("%w: %w", ErrUnknownFormat, err)
		}
		return nil, fmt.Errorf("decompress tar: %w", err)
	}
	return ts, nil
}

// FormatFromExtension guesses the format from a file name. The result is a
// hint for diagnostics and never selects the reader.
func FormatFromExtension(name string) types.Format {
	lower := strings.ToLower(filepath.Base(name))
	for _, ext := range []string{".tar.gz", ".tgz", ".zip"} {
		if !strings.HasSuffix(lower, ext) {
			continue
		}
		if f, err := types.ParseFormat(ext); err == nil {
			return f
		}
	}
	return types.FormatUnknown
}
