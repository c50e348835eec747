package recio_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"

	recio "github.com/schemarize/recio"
)

func TestReadTable_RowMajor(t *testing.T) {
	rows := []recio.Record{
		{"id": int64(1), "name": "ada"},
		{"id": int64(2), "name": "lin"},
	}
	got := mustCollect(t)(recio.ReadTable(rows))
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("want %v, got %v", rows, got)
	}
}

func TestReadTable_RowsAreCopies(t *testing.T) {
	rows := []recio.Record{{"id": int64(1)}}
	st, err := recio.ReadTable(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, err := st.Next()
	if err != nil {
		t.Fatal(err)
	}
	rec["id"] = int64(99)
	if rows[0]["id"] != int64(1) {
		t.Fatalf("yielded record aliases the source row")
	}
}

func TestReadTable_PlainMaps(t *testing.T) {
	rows := []map[string]any{{"k": "v"}}
	got := mustCollect(t)(recio.ReadTable(rows))
	if len(got) != 1 || got[0]["k"] != "v" {
		t.Fatalf("unexpected records: %v", got)
	}
}

func buildArrowRecord(t *testing.T) arrow.Record {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
	}, nil)
	b := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer b.Release()
	b.Field(0).(*array.Int64Builder).AppendValues([]int64{1, 2, 3}, nil)
	nb := b.Field(1).(*array.StringBuilder)
	nb.Append("ada")
	nb.AppendNull()
	nb.Append("gra")
	return b.NewRecord()
}

func arrowWant() []recio.Record {
	return []recio.Record{
		{"id": int64(1), "name": "ada"},
		{"id": int64(2), "name": nil},
		{"id": int64(3), "name": "gra"},
	}
}

func TestReadTable_ArrowRecord(t *testing.T) {
	rec := buildArrowRecord(t)
	defer rec.Release()
	got := mustCollect(t)(recio.ReadTable(rec))
	if !reflect.DeepEqual(got, arrowWant()) {
		t.Fatalf("want %v, got %v", arrowWant(), got)
	}
}

func TestReadTable_ArrowTable(t *testing.T) {
	rec := buildArrowRecord(t)
	defer rec.Release()
	tbl := array.NewTableFromRecords(rec.Schema(), []arrow.Record{rec})
	defer tbl.Release()

	for _, batch := range []int{0, 1, 2} {
		got := mustCollect(t)(recio.ReadTable(tbl, recio.TableOpt{BatchRows: batch}))
		if !reflect.DeepEqual(got, arrowWant()) {
			t.Fatalf("batch %d: want %v, got %v", batch, arrowWant(), got)
		}
	}
}

func TestReadTable_UnsupportedType(t *testing.T) {
	_, err := recio.ReadTable("not a table")
	if !recio.IsSourceError(err) {
		t.Fatalf("want runtime error, got %v", err)
	}
	iss, _ := recio.AsIssues(err)
	if iss[0].Code != recio.CodeUnsupportedSource || !strings.Contains(iss[0].Message, "string") {
		t.Fatalf("issue should name the received type: %+v", iss[0])
	}
}

func TestReadTable_Nil(t *testing.T) {
	_, err := recio.ReadTable(nil)
	if !recio.IsSourceError(err) {
		t.Fatalf("want runtime error, got %v", err)
	}
}
