package resumedoc

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument matches every document-level parse failure.
var ErrMalformedDocument = errors.New("malformed document")

// MalformedDocumentError is the single terminal error of a parse. Msg carries
// the message of the underlying failure.
type MalformedDocumentError struct {
	Format string
	Msg    string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed %s document: %s", e.Format, e.Msg)
}

func (e *MalformedDocumentError) Unwrap() error { return e.Err }

func (e *MalformedDocumentError) Is(target error) bool { return target == ErrMalformedDocument }

func malformed(format string, err error) *MalformedDocumentError {
	return &MalformedDocumentError{Format: format, Msg: err.Error(), Err: err}
}
