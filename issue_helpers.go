package recio

// sourceIssue wraps an open/read failure as a single I/O-runtime issue.
func sourceIssue(msg string, cause error) Issues {
	return Issues{Issue{Code: CodeSourceError, Message: msg, Offset: -1, Cause: cause}}
}

// decodeIssue wraps a parse failure as a single format-decode issue at the
// given position. Pass line 0 or offset -1 when unknown.
func decodeIssue(code string, line int, offset int64, msg string, cause error) Issues {
	return Issues{Issue{Code: code, Message: msg, Line: line, Offset: offset, Cause: cause}}
}
