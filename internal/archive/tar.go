package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/sealdice/sealupd/internal/types"
)

// errNotGzip marks a stream whose gzip header cannot be read.
var errNotGzip = errors.New("not a gzip stream")

// tarSource walks a gzip-compressed tar stream. The entry count of a tar
// stream is only known after reading it to the end, so openTarGz makes one
// counting pass and rewinds before handing out entries.
type tarSource struct {
	gz    *gzip.Reader
	tr    *tar.Reader
	total int
}

// openTarGz counts the entries of the gzip tarball in rs, rewinds rs and
// returns a source positioned at the first entry.
func openTarGz(rs io.ReadSeeker) (*tarSource, error) {
	total, err := countTarEntries(rs)
	if err != nil {
		return nil, err
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind package: %w", err)
	}

	gz, err := gzip.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errNotGzip, err)
	}
	return &tarSource{
		gz:    gz,
		tr:    tar.NewReader(gz),
		total: total,
	}, nil
}

// countTarEntries exhausts the tar stream in r and returns how many headers
// it holds.
func countTarEntries(r io.Reader) (int, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errNotGzip, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	count := 0
	for {
		_, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("read tar header: %w", err)
		}
		count++
	}
}

func (s *tarSource) Format() types.Format {
	return types.FormatTarGz
}

func (s *tarSource) Len() int {
	return s.total
}

func (s *tarSource) Next() (*Entry, error) {
	hdr, err := s.tr.Next()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read tar header: %w", err)
	}

	entry := &Entry{
		Name: hdr.Name,
		Mode: hdr.FileInfo().Mode().Perm(),
	}

	switch hdr.Typeflag {
	case tar.TypeDir:
		entry.Kind = types.EntryDir
	case tar.TypeReg, tar.TypeRegA: //nolint:staticcheck // TypeRegA still appears in old tarballs
		if strings.HasSuffix(hdr.Name, "/") {
			entry.Kind = types.EntryDir
		} else {
			entry.Kind = types.EntryFile
			entry.r = s.tr
		}
	default:
		entry.Kind = types.EntryOther
	}

	return entry, nil
}

func (s *tarSource) Close() error {
	return s.gz.Close()
}
