package pivot

import (
	"errors"
	"fmt"
)

// Kind discriminates the error taxonomy of the engine.
type Kind string

const (
	// KindRead means the source could not be opened or its header/schema
	// could not be parsed.
	KindRead Kind = "ReadError"

	// KindUnsupportedFormat means the source file extension is not
	// recognized.
	KindUnsupportedFormat Kind = "UnsupportedFormat"

	// KindProcessing covers everything else: unknown columns, type
	// mismatches in filters, invalid filter values, aggregation and
	// reshape failures.
	KindProcessing Kind = "ProcessingError"
)

// Error is the discriminated error type returned across the engine
// boundary. Callers can branch on Kind with KindOf instead of matching
// message text.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or the empty string if err does not carry
// an engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// newErr builds an *Error with a formatted message and an optional cause.
func newErr(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Err:     cause,
	}
}

// processingErrf builds a ProcessingError without a cause.
func processingErrf(format string, args ...interface{}) *Error {
	return newErr(KindProcessing, nil, format, args...)
}
