package recio_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/segmentio/parquet-go"

	recio "github.com/schemarize/recio"
)

type parquetRow struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Score  float64 `parquet:"score"`
	Active bool    `parquet:"active"`
}

func writeParquetFixture(t *testing.T, rows []parquetRow) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.parquet")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := parquet.NewGenericWriter[parquetRow](f)
	if _, err := w.Write(rows); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func parquetWant(rows []parquetRow) []recio.Record {
	out := make([]recio.Record, len(rows))
	for i, r := range rows {
		out[i] = recio.Record{"id": r.ID, "name": r.Name, "score": r.Score, "active": r.Active}
	}
	return out
}

func TestReadParquet_RoundTrip(t *testing.T) {
	rows := []parquetRow{
		{ID: 1, Name: "ada", Score: 0.5, Active: true},
		{ID: 2, Name: "lin", Score: 1.25, Active: false},
		{ID: 3, Name: "gra", Score: -2, Active: true},
	}
	path := writeParquetFixture(t, rows)
	got := mustCollect(t)(recio.ReadParquet(recio.Path(path)))
	if !reflect.DeepEqual(got, parquetWant(rows)) {
		t.Fatalf("want %v, got %v", parquetWant(rows), got)
	}
}

func TestReadParquet_BatchSizeDoesNotChangeContent(t *testing.T) {
	rows := []parquetRow{
		{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 3, Name: "c"},
		{ID: 4, Name: "d"}, {ID: 5, Name: "e"},
	}
	path := writeParquetFixture(t, rows)
	want := mustCollect(t)(recio.ReadParquet(recio.Path(path)))
	for _, batch := range []int{1, 2, 3, 1000} {
		got := mustCollect(t)(recio.ReadParquet(recio.Path(path), recio.ParquetOpt{BatchSize: batch}))
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("batch %d changed the sequence", batch)
		}
	}
}

func TestReadParquet_BytesAndReaderSources(t *testing.T) {
	rows := []parquetRow{{ID: 7, Name: "x", Score: 3, Active: true}}
	path := writeParquetFixture(t, rows)
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	fromBytes := mustCollect(t)(recio.ReadParquet(recio.Bytes(raw)))

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	fromReader := mustCollect(t)(recio.ReadParquet(recio.Reader(f)))

	want := parquetWant(rows)
	if !reflect.DeepEqual(fromBytes, want) || !reflect.DeepEqual(fromReader, want) {
		t.Fatalf("want %v, got bytes=%v reader=%v", want, fromBytes, fromReader)
	}
}

func TestReadParquet_NotAParquetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.parquet")
	if err := os.WriteFile(path, []byte("plain text, definitely not parquet"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := recio.ReadParquet(recio.Path(path))
	if !recio.IsSourceError(err) {
		t.Fatalf("want source error at open time, got %v", err)
	}
}

func TestReadParquet_MissingPath(t *testing.T) {
	_, err := recio.ReadParquet(recio.Path(filepath.Join(t.TempDir(), "nope.parquet")))
	if !recio.IsSourceError(err) {
		t.Fatalf("want source error, got %v", err)
	}
}
