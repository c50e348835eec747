package recio

import (
	"fmt"
	"io"

	"github.com/segmentio/parquet-go"

	"github.com/schemarize/recio/internal/sourceio"
)

// defaultParquetBatch is the per-read row buffer used when the caller leaves
// BatchSize unset.
const defaultParquetBatch = 1024

// ReadParquet streams the rows of a Parquet container in file order, row
// group by row group, converting each batch to row-major records. A Reader
// source is buffered fully into memory first, since the format needs the
// footer before any row data. A source that is not a Parquet file fails here,
// at open time, as an I/O-runtime error: the failure is structural, not
// row-level.
func ReadParquet(src Source, opts ...ParquetOpt) (Stream, error) {
	opt := lastOpt(opts)
	at, err := src.openAt()
	if err != nil {
		return nil, err
	}
	pf, perr := parquet.OpenFile(at.R, at.Size)
	if perr != nil {
		_ = at.Close()
		return nil, sourceIssue(fmt.Sprintf("opening parquet: %v", perr), perr)
	}
	batch := opt.BatchSize
	if batch <= 0 {
		batch = defaultParquetBatch
	}
	return &parquetStream{
		at:     at,
		cols:   pf.Schema().Columns(),
		groups: pf.RowGroups(),
		buf:    make([]parquet.Row, batch),
	}, nil
}

type parquetStream struct {
	at     *sourceio.At
	cols   [][]string
	groups []parquet.RowGroup
	gi     int
	rows   parquet.Rows
	buf    []parquet.Row
	recs   []Record
	ri     int
	err    error
}

func (s *parquetStream) Next() (Record, error) {
	for {
		if s.ri < len(s.recs) {
			rec := s.recs[s.ri]
			s.recs[s.ri] = nil
			s.ri++
			return rec, nil
		}
		if s.err != nil {
			return nil, s.err
		}
		if s.rows == nil {
			if s.gi >= len(s.groups) {
				s.err = io.EOF
				_ = s.at.Close()
				return nil, io.EOF
			}
			s.rows = s.groups[s.gi].Rows()
			s.gi++
		}
		n, rerr := s.rows.ReadRows(s.buf)
		if n > 0 {
			recs := make([]Record, n)
			for i, row := range s.buf[:n] {
				recs[i] = s.rowToRecord(row)
			}
			s.recs, s.ri = recs, 0
		}
		if rerr == io.EOF {
			_ = s.rows.Close()
			s.rows = nil
			continue
		}
		if rerr != nil {
			_ = s.rows.Close()
			s.rows = nil
			_ = s.at.Close()
			s.err = sourceIssue(fmt.Sprintf("reading parquet rows: %v", rerr), rerr)
			if s.ri < len(s.recs) {
				continue // drain the decoded prefix first
			}
			return nil, s.err
		}
	}
}

func (s *parquetStream) Close() error {
	if s.rows != nil {
		_ = s.rows.Close()
		s.rows = nil
	}
	return s.at.Close()
}

// rowToRecord places each leaf value at its column path, materializing nested
// groups as nested maps. Repeated leaves collapse to their last value.
func (s *parquetStream) rowToRecord(row parquet.Row) Record {
	rec := make(Record, len(s.cols))
	for _, v := range row {
		path := s.cols[v.Column()]
		m := rec
		for _, seg := range path[:len(path)-1] {
			child, ok := m[seg].(Record)
			if !ok {
				child = Record{}
				m[seg] = child
			}
			m = child
		}
		m[path[len(path)-1]] = parquetValue(v)
	}
	return rec
}

// parquetValue maps a physical parquet value onto the Record scalar set.
// Byte arrays come back as strings; logical types beyond UTF8 keep their
// physical representation.
func parquetValue(v parquet.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Kind() {
	case parquet.Boolean:
		return v.Boolean()
	case parquet.Int32:
		return int64(v.Int32())
	case parquet.Int64:
		return v.Int64()
	case parquet.Float:
		return float64(v.Float())
	case parquet.Double:
		return v.Double()
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
