// File: internal/parsers/tabstate/errors.go
package tabstate

import (
	"errors"
	"fmt"
	"io"
)

// ErrInvalidFormat indicates a structural violation of the tab state
// grammar: a bad signature, an unrecognized file state, or a field that
// cannot be decoded. Fatal; no partial record is returned.
var ErrInvalidFormat = errors.New("invalid tab state format")

// ErrTruncatedStream indicates the stream ended in the middle of a
// mandatory field. Fatal everywhere except at the top of a multi-block loop
// iteration, where clean end-of-stream is the expected termination.
var ErrTruncatedStream = errors.New("truncated tab state stream")

// wrapRead classifies a low-level read failure for the given field.
func wrapRead(field string, err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrTruncatedStream, field)
	}
	return fmt.Errorf("%w: %s: %v", ErrInvalidFormat, field, err)
}
