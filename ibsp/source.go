package ibsp

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Source is the seekable byte source the loader consumes :
// random-access reads plus a known total size, used to bounds-check every
// lump directory entry before reading it.
type Source interface {
	io.ReaderAt
	Size() int64
}

// fileSource adapts an *os.File to Source by stat-ing it once up front.
type fileSource struct {
	f    *os.File
	size int64
}

// OpenFile opens path and wraps it as a Source. The caller is responsible
// for closing the returned Source's underlying file only if Load itself
// does not — Load closes any Source that also implements io.Closer.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", path)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "stat %q", path)
	}
	return &fileSource{f: f, size: info.Size()}, nil
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) { return s.f.ReadAt(p, off) }
func (s *fileSource) Size() int64                             { return s.size }
func (s *fileSource) Close() error                            { return s.f.Close() }
