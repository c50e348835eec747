// Command reccat streams any supported tabular source to stdout as JSON
// Lines: one record per line, in source order.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	recio "github.com/schemarize/recio"
)

func main() {
	var (
		format    = flag.String("format", "", "input format: jsonl, json, csv, parquet, yaml (default: from file suffix)")
		delimiter = flag.String("delimiter", ",", "csv field delimiter")
		encoding  = flag.String("encoding", "", "csv text encoding (IANA name, default utf-8)")
		chunk     = flag.Int("chunk", 0, "csv chunk size (0 streams row by row)")
		batch     = flag.Int("batch", 0, "parquet batch size (0 uses the engine default)")
	)
	flag.Parse()
	if flag.NArg() != 1 {
		usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	f := *format
	if f == "" {
		f = detectFormat(path)
	}
	st, err := openStream(f, path, *delimiter, *encoding, *chunk, *batch)
	if err != nil {
		fatalf("%s: %v", path, err)
	}

	enc := json.NewEncoder(os.Stdout)
	for rec, err := range recio.All(st) {
		if err != nil {
			fatalf("%s: %v", path, err)
		}
		if err := enc.Encode(rec); err != nil {
			fatalf("writing output: %v", err)
		}
	}
}

func openStream(format, path, delimiter, encoding string, chunk, batch int) (recio.Stream, error) {
	src := recio.Path(path)
	switch format {
	case "jsonl":
		return recio.ReadJSONL(src)
	case "json":
		return recio.ReadJSONArray(src)
	case "csv":
		opt := recio.CSVOpt{Encoding: encoding, ChunkSize: chunk}
		if delimiter != "" {
			opt.Delimiter = []rune(delimiter)[0]
		}
		return recio.ReadCSV(src, opt)
	case "parquet":
		return recio.ReadParquet(src, recio.ParquetOpt{BatchSize: batch})
	case "yaml":
		return recio.ReadYAML(src)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// detectFormat infers the format from the file suffix, looking through the
// compression suffixes the readers understand.
func detectFormat(path string) string {
	name := strings.TrimSuffix(strings.TrimSuffix(path, ".gz"), ".bz2")
	switch filepath.Ext(name) {
	case ".jsonl", ".ndjson":
		return "jsonl"
	case ".json":
		return "json"
	case ".csv":
		return "csv"
	case ".parquet":
		return "parquet"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "jsonl"
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "reccat streams a tabular file to stdout as JSON Lines.\n\nUsage:\n  reccat [-format jsonl|json|csv|parquet|yaml] [-delimiter c] [-encoding name] [-chunk n] [-batch n] FILE")
	flag.PrintDefaults()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "reccat: "+format+"\n", args...)
	os.Exit(1)
}
