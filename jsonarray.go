package recio

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/schemarize/recio/internal/sourceio"
)

// ReadJSONArray streams the elements of one top-level JSON array, decoding
// incrementally so the array is never materialized whole. Any failure,
// malformed container or malformed element, is a fatal decode_error carrying
// the element index and byte offset; there is no partial-success state.
func ReadJSONArray(src Source) (Stream, error) {
	h, err := src.open()
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(h.R)
	dec.UseNumber()
	return &jsonArrayStream{h: h, dec: dec}, nil
}

type jsonArrayStream struct {
	h       *sourceio.Handle
	dec     *json.Decoder
	started bool
	idx     int
	err     error
}

func (s *jsonArrayStream) Next() (Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !s.started {
		tok, terr := s.dec.Token()
		if terr != nil {
			return nil, s.fail(fmt.Sprintf("reading array start: %v", terr), terr)
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return nil, s.fail(fmt.Sprintf("top-level value is %v, expected an array", tok), nil)
		}
		s.started = true
	}
	if s.dec.More() {
		var rec Record
		if derr := s.dec.Decode(&rec); derr != nil {
			return nil, s.fail(fmt.Sprintf("element %d: %v", s.idx, derr), derr)
		}
		s.idx++
		return rec, nil
	}
	// Consume the closing bracket so trailing garbage still surfaces.
	if _, terr := s.dec.Token(); terr != nil {
		return nil, s.fail(fmt.Sprintf("reading array end: %v", terr), terr)
	}
	s.err = io.EOF
	_ = s.h.Close()
	return nil, io.EOF
}

func (s *jsonArrayStream) Close() error { return s.h.Close() }

func (s *jsonArrayStream) fail(msg string, cause error) error {
	_ = s.h.Close()
	s.err = decodeIssue(CodeDecodeError, 0, s.dec.InputOffset(), msg, cause)
	return s.err
}
