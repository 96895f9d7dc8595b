package joke

import (
	"errors"
	"fmt"
)

// Sentinel errors for joke operations.
var (
	// ErrInvalidArgument indicates a missing or malformed input (empty term,
	// page below 1, a record that cannot be encoded).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNetwork indicates a transport failure or a non-2xx API response.
	ErrNetwork = errors.New("network error")

	// ErrProtocol indicates an API response body that could not be decoded.
	ErrProtocol = errors.New("protocol error")

	// ErrNotFound indicates an empty result: no jokes matched the term, or
	// the record store holds nothing.
	ErrNotFound = errors.New("not found")

	// ErrIndexOutOfRange indicates the API metadata disagrees with the page
	// contents it returned.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrCorruptRecord indicates a persisted line that cannot be decoded.
	ErrCorruptRecord = errors.New("corrupt record")
)

// ProtocolError is returned when a response body is not valid JSON.
// Body keeps the raw bytes for diagnostics.
type ProtocolError struct {
	Body []byte
	Err  error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: decoding response (%d bytes): %v", len(e.Body), e.Err)
}

// Unwrap exposes both ErrProtocol and the underlying decode error.
func (e *ProtocolError) Unwrap() []error {
	return []error{ErrProtocol, e.Err}
}

// Snippet returns the first n bytes of Body, for log lines.
func (e *ProtocolError) Snippet(n int) string {
	if len(e.Body) <= n {
		return string(e.Body)
	}
	return string(e.Body[:n]) + "..."
}

// CorruptRecordError identifies the persisted line that failed to decode.
type CorruptRecordError struct {
	// Line is the 1-based line number in the store file. Zero when the
	// line was decoded outside of a file.
	Line   int
	Reason string
}

func (e *CorruptRecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("corrupt record at line %d: %s", e.Line, e.Reason)
	}
	return "corrupt record: " + e.Reason
}

// Is reports ErrCorruptRecord as a match.
func (e *CorruptRecordError) Is(target error) bool {
	return target == ErrCorruptRecord
}
