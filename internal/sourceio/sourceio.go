// Package sourceio opens raw byte sources for the format readers: filesystem
// paths with suffix-selected decompression, externally supplied io.Readers,
// and in-memory byte slices. It tracks which layers the stream owns so Close
// releases exactly those and nothing the caller still holds.
package sourceio

import (
	"bytes"
	"compress/bzip2"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Compression suffixes recognized on paths. The mapping is a wire contract
// with callers and must not grow silently.
const (
	SuffixGzip  = ".gz"
	SuffixBzip2 = ".bz2"
)

// Handle is an open sequential source plus the closers the stream owns,
// innermost first. A Handle over an externally supplied reader owns nothing.
type Handle struct {
	R       io.Reader
	closers []io.Closer
	closed  bool
}

// Close releases the owned layers. Idempotent.
func (h *Handle) Close() error {
	if h == nil || h.closed {
		return nil
	}
	h.closed = true
	var first error
	for _, c := range h.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// OpenPath opens path for sequential reading, layering the decompressor its
// suffix names. The returned handle owns every layer it opened.
func OpenPath(path string) (*Handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(path, SuffixGzip):
		zr, zerr := gzip.NewReader(f)
		if zerr != nil {
			f.Close()
			return nil, zerr
		}
		return &Handle{R: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(path, SuffixBzip2):
		// compress/bzip2 is decode-only and returns a plain io.Reader; only
		// the file needs closing.
		return &Handle{R: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	default:
		return &Handle{R: f, closers: []io.Closer{f}}, nil
	}
}

// Wrap adapts an externally supplied reader. The caller keeps ownership;
// Close on the handle is a no-op.
func Wrap(r io.Reader) *Handle { return &Handle{R: r} }

// WrapBytes adapts an in-memory buffer. Nothing to own.
func WrapBytes(b []byte) *Handle { return &Handle{R: bytes.NewReader(b)} }

// At is an open random-access source for formats that must read footer
// metadata before streaming rows.
type At struct {
	R      io.ReaderAt
	Size   int64
	closer io.Closer
}

// Close releases the underlying file when the stream owns one. Idempotent.
func (a *At) Close() error {
	if a == nil || a.closer == nil {
		return nil
	}
	c := a.closer
	a.closer = nil
	return c.Close()
}

// OpenPathAt opens path for random access. No decompression layer applies:
// the only random-access consumer (Parquet) compresses internally.
func OpenPathAt(path string) (*At, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, serr := f.Stat()
	if serr != nil {
		f.Close()
		return nil, serr
	}
	return &At{R: f, Size: st.Size(), closer: f}, nil
}

// BufferAt drains a sequential reader fully into memory so the consumer can
// seek within it. The caller keeps ownership of r itself.
func BufferAt(r io.Reader) (*At, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return BytesAt(b), nil
}

// BytesAt wraps an in-memory buffer for random access.
func BytesAt(b []byte) *At {
	return &At{R: bytes.NewReader(b), Size: int64(len(b))}
}
