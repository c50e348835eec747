package recio

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
)

// ReadTable streams an in-memory tabular object: a row-major []Record or
// []map[string]any, or a columnar arrow.Record or arrow.Table. Columnar
// inputs are flattened to row-major in order, chunk by chunk, exactly like
// the Parquet batch path. No I/O happens and the caller keeps ownership of
// the table (including Arrow reference counts); the table must stay live
// until the stream is done.
//
// Anything else is a caller-contract violation: an unsupported_source issue
// naming the concrete type.
func ReadTable(v any, opts ...TableOpt) (Stream, error) {
	opt := lastOpt(opts)
	switch t := v.(type) {
	case []Record:
		return &rowTableStream{rows: t}, nil
	case []map[string]any:
		rows := make([]Record, len(t))
		for i, m := range t {
			rows[i] = Record(m)
		}
		return &rowTableStream{rows: rows}, nil
	case arrow.Record:
		return &arrowRecordStream{rec: t}, nil
	case arrow.Table:
		return &arrowTableStream{rdr: array.NewTableReader(t, int64(opt.BatchRows))}, nil
	default:
		return nil, Issues{Issue{
			Code:    CodeUnsupportedSource,
			Message: fmt.Sprintf("unsupported table type %T", v),
			Offset:  -1,
		}}
	}
}

type rowTableStream struct {
	rows []Record
	i    int
}

func (s *rowTableStream) Next() (Record, error) {
	if s.i >= len(s.rows) {
		return nil, io.EOF
	}
	rec := s.rows[s.i].clone()
	s.i++
	return rec, nil
}

func (s *rowTableStream) Close() error { return nil }

type arrowRecordStream struct {
	rec arrow.Record
	row int
}

func (s *arrowRecordStream) Next() (Record, error) {
	if int64(s.row) >= s.rec.NumRows() {
		return nil, io.EOF
	}
	rec := arrowRow(s.rec, s.row)
	s.row++
	return rec, nil
}

func (s *arrowRecordStream) Close() error { return nil }

type arrowTableStream struct {
	rdr  *array.TableReader
	cur  arrow.Record
	row  int
	done bool
}

func (s *arrowTableStream) Next() (Record, error) {
	if s.done {
		return nil, io.EOF
	}
	for s.cur == nil || int64(s.row) >= s.cur.NumRows() {
		if !s.rdr.Next() {
			s.done = true
			s.rdr.Release()
			s.cur = nil
			return nil, io.EOF
		}
		s.cur = s.rdr.Record()
		s.row = 0
	}
	rec := arrowRow(s.cur, s.row)
	s.row++
	return rec, nil
}

func (s *arrowTableStream) Close() error {
	if !s.done {
		s.done = true
		s.rdr.Release()
		s.cur = nil
	}
	return nil
}

// arrowRow converts one row of a columnar record batch to a Record using the
// arrays' native marshal accessors.
func arrowRow(rec arrow.Record, i int) Record {
	out := make(Record, rec.NumCols())
	for c := 0; c < int(rec.NumCols()); c++ {
		col := rec.Column(c)
		name := rec.ColumnName(c)
		if col.IsNull(i) {
			out[name] = nil
			continue
		}
		out[name] = col.GetOneForMarshal(i)
	}
	return out
}
