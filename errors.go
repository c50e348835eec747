package recio

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention).
//
// The codes form two kinds. Decode codes mean the source opened fine but its
// bytes do not conform to the format grammar at some position. Source codes
// mean the source could not be opened or read at all, or the caller handed a
// reader a value outside its contract.
const (
	// Format-decode kind.
	CodeDecodeError  = "decode_error"
	CodeMalformedRow = "malformed_row"
	// I/O-runtime kind.
	CodeSourceError       = "source_error"
	CodeUnsupportedSource = "unsupported_source"
)

// Issue represents a single reader failure.
type Issue struct {
	Code    string // One of the codes listed above.
	Message string
	Line    int   // 1-based line number in the input when known, 0 otherwise.
	Offset  int64 // Byte offset in the input source (-1 when unknown).
	Cause   error // Optional: underlying error.
}

// Issues is a collection of reader errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. decode_error: line 3: invalid character 'n'
		fmt.Fprintf(b, "%s: %s", it.Code, it.Message)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// IsDecodeError reports whether err carries at least one format-decode issue.
func IsDecodeError(err error) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == CodeDecodeError || it.Code == CodeMalformedRow {
			return true
		}
	}
	return false
}

// IsSourceError reports whether err carries at least one I/O-runtime issue.
func IsSourceError(err error) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == CodeSourceError || it.Code == CodeUnsupportedSource {
			return true
		}
	}
	return false
}
