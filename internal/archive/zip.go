package archive

import (
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/klauspost/compress/zip"

	"github.com/sealdice/sealupd/internal/types"
)

// zipSource walks the central directory of a ZIP container.
type zipSource struct {
	files   []*zip.File
	next    int
	current io.ReadCloser
}

// openZip reads the central directory of r. It returns zip.ErrFormat when r
// is not structurally a ZIP container.
//
// A reader returned together with an error has a readable directory whose
// names the library deems insecure. Names are validated per entry during
// extraction instead, so such a reader is used as is.
func openZip(r io.ReaderAt, size int64) (*zipSource, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil && zr == nil {
		return nil, err
	}
	return &zipSource{files: zr.File}, nil
}

func (s *zipSource) Format() types.Format {
	return types.FormatZip
}

func (s *zipSource) Len() int {
	return len(s.files)
}

func (s *zipSource) Next() (*Entry, error) {
	if err := s.closeCurrent(); err != nil {
		return nil, err
	}
	if s.next >= len(s.files) {
		return nil, io.EOF
	}

	zf := s.files[s.next]
	s.next++

	mode := zf.Mode()
	entry := &Entry{
		Name: zf.Name,
		Mode: mode.Perm(),
	}

	switch {
	case mode.IsDir() || strings.HasSuffix(zf.Name, "/"):
		entry.Kind = types.EntryDir
		return entry, nil
	case mode&(fs.ModeSymlink|fs.ModeDevice|fs.ModeNamedPipe|fs.ModeSocket) != 0:
		entry.Kind = types.EntryOther
		return entry, nil
	}

	rc, err := zf.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %q: %w", zf.Name, err)
	}
	s.current = rc
	entry.Kind = types.EntryFile
	entry.r = rc
	return entry, nil
}

func (s *zipSource) Close() error {
	return s.closeCurrent()
}

func (s *zipSource) closeCurrent() error {
	if s.current == nil {
		return nil
	}
	err := s.current.Close()
	s.current = nil
	return err
}
