package recio

// CSVOpt bundles CSV reading options. Readers take options variadically and
// use the last one given.
type CSVOpt struct {
	Delimiter rune   // Field separator; ',' when zero.
	Encoding  string // IANA character-set name; UTF-8 when empty.
	// ChunkSize switches the reader into batched mode: rows are decoded in
	// blocks of ChunkSize and flattened in order, bounding peak memory on
	// very wide inputs. 0 streams one row at a time. Either way the observed
	// record content and order are identical.
	ChunkSize int
}

// ParquetOpt bundles Parquet reading options.
type ParquetOpt struct {
	BatchSize int // Rows materialized per batch; 0 applies the engine default.
}

// TableOpt bundles in-memory table reading options.
type TableOpt struct {
	// BatchRows bounds the chunk size used when flattening a columnar table;
	// 0 keeps the table's own chunking.
	BatchRows int
}

func lastOpt[T any](opts []T) T {
	var opt T
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}
