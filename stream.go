package recio

import (
	"io"
	"iter"
)

// Stream is the forward-only pull contract every reader returns. A Stream is
// finite, not restartable, and advances only when the caller asks for the
// next record, so the caller controls pacing.
type Stream interface {
	// Next returns the next record in source order, or io.EOF after the last
	// one. Any other error is Issues; once Next has failed the stream is dead
	// and keeps returning the same failure. Owned handles are released before
	// the failure (or io.EOF) is surfaced.
	Next() (Record, error)

	// Close releases any handle the stream owns. Idempotent, and legal at any
	// point; abandoning a stream early must still go through Close.
	Close() error
}

// Collect drains s to exhaustion and closes it. Records yielded before a
// failure are returned alongside the error.
func Collect(s Stream) ([]Record, error) {
	defer s.Close()
	var out []Record
	for {
		rec, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

// All adapts s to a range-over-func sequence. The stream is closed when the
// loop finishes, breaks early, or hits an error; a non-EOF failure is yielded
// once as the final pair.
func All(s Stream) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		defer s.Close()
		for {
			rec, err := s.Next()
			if err == io.EOF {
				return
			}
			if !yield(rec, err) || err != nil {
				return
			}
		}
	}
}
