package recio

import (
	"fmt"
	"io"

	"github.com/schemarize/recio/internal/sourceio"
)

// Source identifies where a reader's raw input comes from. It is a closed
// union with exactly three variants (Path, Reader, Bytes) resolved once
// when the reader is constructed. Which variant was supplied decides handle
// ownership: a Path is opened and closed by the stream, while a Reader is the
// caller's to close.
type Source interface {
	// open resolves the source for sequential reading.
	open() (*sourceio.Handle, error)
	// openAt resolves the source for random access, buffering sequential
	// inputs fully into memory when needed.
	openAt() (*sourceio.At, error)
}

// Path refers to a file on disk. A ".gz" or ".bz2" suffix selects gzip or
// bzip2 decompression; anything else is read as-is. The suffix is inspected
// once at open time and fixed for the lifetime of the read.
func Path(p string) Source { return pathSource{path: p} }

// Reader wraps an already-open stream. The stream never closes it; sequential
// formats read it as-is, while formats that need random access drain it into
// memory first.
func Reader(r io.Reader) Source { return readerSource{r: r} }

// Bytes wraps an in-memory buffer.
func Bytes(b []byte) Source { return bytesSource{b: b} }

type pathSource struct{ path string }

func (s pathSource) open() (*sourceio.Handle, error) {
	h, err := sourceio.OpenPath(s.path)
	if err != nil {
		return nil, sourceIssue(fmt.Sprintf("opening %s: %v", s.path, err), err)
	}
	return h, nil
}

func (s pathSource) openAt() (*sourceio.At, error) {
	at, err := sourceio.OpenPathAt(s.path)
	if err != nil {
		return nil, sourceIssue(fmt.Sprintf("opening %s: %v", s.path, err), err)
	}
	return at, nil
}

type readerSource struct{ r io.Reader }

func (s readerSource) open() (*sourceio.Handle, error) {
	if s.r == nil {
		return nil, sourceIssue("nil reader source", nil)
	}
	return sourceio.Wrap(s.r), nil
}

func (s readerSource) openAt() (*sourceio.At, error) {
	if s.r == nil {
		return nil, sourceIssue("nil reader source", nil)
	}
	at, err := sourceio.BufferAt(s.r)
	if err != nil {
		return nil, sourceIssue(fmt.Sprintf("buffering reader source: %v", err), err)
	}
	return at, nil
}

type bytesSource struct{ b []byte }

func (s bytesSource) open() (*sourceio.Handle, error) { return sourceio.WrapBytes(s.b), nil }

func (s bytesSource) openAt() (*sourceio.At, error) { return sourceio.BytesAt(s.b), nil }
