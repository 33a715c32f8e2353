package archive

import (
	"io"
	"io/fs"

	"github.com/sealdice/sealupd/internal/types"
)

// File is what a package handle must provide: random access for ZIP's
// central directory and seeking for the tar count-then-rewind pass.
// *os.File and *bytes.Reader both satisfy it.
type File interface {
	io.ReaderAt
	io.ReadSeeker
}

// Entry is one item of an opened archive. Its content is streamed and must be
// consumed before the next call to Source.Next.
type Entry struct {
	Name string          // Path as declared in the archive
	Kind types.EntryKind // file, dir or other
	Mode fs.FileMode     // Declared permission bits, may be zero

	r io.Reader
}

// Read reads the entry content.
func (e *Entry) Read(p []byte) (int, error) {
	if e.r == nil {
		return 0, io.EOF
	}
	return e.r.Read(p)
}

// Source is a lazy, single-pass sequence of archive entries.
type Source interface {
	// Format reports the container format.
	Format() types.Format
	// Len returns the number of declared entries.
	Len() int
	// Next returns the next entry, or io.EOF when the archive is exhausted.
	Next() (*Entry, error)
	// Close releases readers held by the source. It does not close the
	// underlying package file.
	Close() error
}
