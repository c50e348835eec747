package recio

// Package recio provides:
//
// - Uniform streaming of Records from JSONL, JSON arrays, CSV, Parquet, YAML
//   document streams, and in-memory tabular objects behind one pull contract
// - Transparent decompression selected by path suffix (.gz, .bz2)
// - Batch-oriented sources (Parquet row groups, chunked CSV, Arrow tables)
//   flattened to the same one-record-at-a-time Stream
// - A stable error model via Issues (code, line/offset, underlying cause)
//   split into format-decode and I/O-runtime kinds
//
// Design policy:
// - Keep only public APIs in the root package; put source plumbing under internal/.
// - Readers never retry and never skip malformed records; a failure is fatal to
//   its stream and carries the best-known position.
// - Owned handles are released on every exit path: exhaustion, error, early Close.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  st, err := recio.ReadJSONL(recio.Path("events.jsonl.gz"))
//  recs, err := recio.Collect(st)
//
//  st, err := recio.ReadCSV(recio.Reader(conn), recio.CSVOpt{Delimiter: ';'})
//  for rec, err := range recio.All(st) { ... }
