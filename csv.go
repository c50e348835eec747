package recio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/schemarize/recio/internal/sourceio"
)

// ReadCSV streams one record per data row of a delimited-text source, keyed
// by the header row. Every field value is a string; numeric coercion is the
// caller's business.
//
// Ragged-row policy: any data row whose field count differs from the header,
// shorter or longer, is a fatal malformed_row carrying its 1-based line
// number. An empty source (not even a header) yields zero records.
func ReadCSV(src Source, opts ...CSVOpt) (Stream, error) {
	opt := lastOpt(opts)
	h, err := src.open()
	if err != nil {
		return nil, err
	}
	r := h.R
	if opt.Encoding != "" {
		enc, eerr := ianaindex.IANA.Encoding(opt.Encoding)
		if eerr != nil || enc == nil {
			_ = h.Close()
			return nil, sourceIssue(fmt.Sprintf("unknown text encoding %q", opt.Encoding), eerr)
		}
		r = transform.NewReader(r, enc.NewDecoder())
	}
	cr := csv.NewReader(r)
	if opt.Delimiter != 0 {
		cr.Comma = opt.Delimiter
	}
	s := &csvStream{h: h, cr: cr, chunk: opt.ChunkSize}

	header, herr := cr.Read()
	if herr == io.EOF {
		s.err = io.EOF
		_ = h.Close()
		return s, nil
	}
	if herr != nil {
		_ = h.Close()
		return nil, csvIssues(herr)
	}
	// Reading the header fixed FieldsPerRecord, so encoding/csv now enforces
	// the header width on every data row.
	s.header = header
	return s, nil
}

type csvStream struct {
	h      *sourceio.Handle
	cr     *csv.Reader
	header []string
	chunk  int
	buf    []Record
	bi     int
	err    error
}

func (s *csvStream) Next() (Record, error) {
	if s.bi < len(s.buf) {
		rec := s.buf[s.bi]
		s.buf[s.bi] = nil
		s.bi++
		return rec, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.chunk > 0 {
		return s.nextBatched()
	}
	row, rerr := s.cr.Read()
	if rerr != nil {
		return nil, s.finish(rerr)
	}
	return s.rowToRecord(row), nil
}

// nextBatched decodes the next block of up to chunk rows in one go, then
// serves it record by record. Observable output matches streaming mode.
func (s *csvStream) nextBatched() (Record, error) {
	batch := make([]Record, 0, s.chunk)
	for len(batch) < s.chunk {
		row, rerr := s.cr.Read()
		if rerr != nil {
			if len(batch) > 0 && rerr == io.EOF {
				break
			}
			if len(batch) > 0 {
				// Serve the decoded prefix first; the failure surfaces where
				// the bad row would have been produced.
				s.stash(rerr)
				break
			}
			return nil, s.finish(rerr)
		}
		batch = append(batch, s.rowToRecord(row))
	}
	if len(batch) == 0 {
		return nil, s.finish(io.EOF)
	}
	s.buf = batch
	s.bi = 1
	return batch[0], nil
}

func (s *csvStream) Close() error { return s.h.Close() }

func (s *csvStream) rowToRecord(row []string) Record {
	rec := make(Record, len(s.header))
	for i, name := range s.header {
		rec[name] = row[i]
	}
	return rec
}

// finish closes the handle and records the terminal state for rerr, which is
// io.EOF on clean exhaustion.
func (s *csvStream) finish(rerr error) error {
	_ = s.h.Close()
	if rerr == io.EOF {
		s.err = io.EOF
	} else {
		s.err = csvIssues(rerr)
	}
	return s.err
}

// stash records a deferred terminal state while buffered records drain.
func (s *csvStream) stash(rerr error) {
	_ = s.h.Close()
	s.err = csvIssues(rerr)
}

// csvIssues maps an encoding/csv failure onto the error model: lexer and
// field-count failures are malformed rows with a line position, anything
// else is an I/O failure.
func csvIssues(err error) Issues {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return decodeIssue(CodeMalformedRow, perr.Line, -1,
			fmt.Sprintf("line %d: %v", perr.Line, perr.Err), err)
	}
	return sourceIssue(fmt.Sprintf("reading csv: %v", err), err)
}
