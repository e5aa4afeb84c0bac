package datfile

import "fmt"

// FormatError reports a container whose framing does not match the expected
// layout. It is always fatal for the file being processed.
type FormatError struct {
	Offset int // byte offset in the file, -1 when unknown
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Offset >= 0 {
		msg = fmt.Sprintf("offset %d: %s", e.Offset, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("dat format: %s: %v", msg, e.Err)
	}
	return "dat format: " + msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func formatErrorf(offset int, format string, args ...any) *FormatError {
	return &FormatError{Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
