package recio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/schemarize/recio/internal/sourceio"
)

// maxLineBytes caps a single JSONL line; the scanner buffer grows on demand
// up to this limit.
const maxLineBytes = 64 << 20

// ReadJSONL streams one record per non-blank line of a JSON Lines source.
// Blank lines are skipped. Lines that are not valid UTF-8 are skipped as
// well, tolerating stray separators some transports inject. A line that is
// text but not valid JSON is a fatal decode_error carrying its 1-based line
// number.
func ReadJSONL(src Source) (Stream, error) {
	h, err := src.open()
	if err != nil {
		return nil, err
	}
	sc := bufio.NewScanner(h.R)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &jsonlStream{h: h, sc: sc}, nil
}

type jsonlStream struct {
	h    *sourceio.Handle
	sc   *bufio.Scanner
	line int
	err  error
}

func (s *jsonlStream) Next() (Record, error) {
	if s.err != nil {
		return nil, s.err
	}
	for s.sc.Scan() {
		s.line++
		raw := s.sc.Bytes()
		if !utf8.Valid(raw) {
			continue
		}
		text := bytes.TrimSpace(raw)
		if len(text) == 0 {
			continue
		}
		rec, derr := decodeRecord(text)
		if derr != nil {
			return nil, s.fail(decodeIssue(CodeDecodeError, s.line, -1,
				fmt.Sprintf("line %d: %v", s.line, derr), derr))
		}
		return rec, nil
	}
	if serr := s.sc.Err(); serr != nil {
		return nil, s.fail(sourceIssue(fmt.Sprintf("reading line %d: %v", s.line+1, serr), serr))
	}
	s.err = io.EOF
	_ = s.h.Close()
	return nil, io.EOF
}

func (s *jsonlStream) Close() error { return s.h.Close() }

func (s *jsonlStream) fail(iss Issues) error {
	_ = s.h.Close()
	s.err = iss
	return s.err
}

// decodeRecord parses one self-contained JSON value into a Record, keeping
// numbers as json.Number.
func decodeRecord(text []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after value")
	}
	return rec, nil
}
